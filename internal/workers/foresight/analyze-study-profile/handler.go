// internal/workers/foresight/analyze-study-profile/handler.go
package analyzestudyprofile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	apperrors "foresight-workers/internal/common/errors"
	"foresight-workers/internal/common/logger"
	"foresight-workers/internal/common/metrics"
	"foresight-workers/internal/common/observability"
	"foresight-workers/internal/common/validation"
	"foresight-workers/internal/models"
	"foresight-workers/internal/recommendation/orchestrator"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "analyze-study-profile"
)

var schema = validation.MustCompileSchema(profileSchema)

// Analyzer runs the recommendation pipeline. *orchestrator.Orchestrator
// implements it.
type Analyzer interface {
	Analyze(ctx context.Context, profile *models.StudyProfile, catalog *models.Catalog) (*models.StudyProfileResult, error)
}

type Handler struct {
	config       *Config
	engine       Analyzer
	catalog      *models.Catalog
	errorHandler *apperrors.ErrorHandler
	obs          *observability.Observability
	logger       logger.Logger
}

// NewHandler builds the worker. obs may be nil.
func NewHandler(config *Config, engine Analyzer, catalog *models.Catalog, obs *observability.Observability, log logger.Logger) *Handler {
	if config == nil {
		config = LoadConfig()
	}
	defaults := LoadConfig()
	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = defaults.MaxBodyBytes
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		engine:       engine,
		catalog:      catalog,
		errorHandler: apperrors.NewErrorHandler(log),
		obs:          obs,
		logger:       log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.fail(ctx, client, job, start,
			apperrors.NewProfileValidationFailedError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.fail(ctx, client, job, start, err)
		return
	}

	h.completeJob(client, job, output)
	h.record(ctx, start, "completed")
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, start time.Time, err error) {
	code := apperrors.ErrCodeInternal
	if stdErr, ok := apperrors.AsStandardError(err); ok {
		code = stdErr.Code
	}
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(code)).Inc()
	h.record(ctx, start, "failed")
	// The job timeout may already have fired; the throw must still reach the broker.
	h.errorHandler.HandleJobError(context.WithoutCancel(ctx), client, job, err)
}

func (h *Handler) record(ctx context.Context, start time.Time, status string) {
	elapsed := time.Since(start)
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(elapsed.Seconds())
	h.obs.RecordJobProcessed(ctx, status)
	h.obs.RecordJobDuration(ctx, elapsed, status)
}

// Execute validates the profile and runs one analysis.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	profile, err := decodeProfile(input.Profile)
	if err != nil {
		return nil, err
	}

	result, err := h.engine.Analyze(ctx, profile, h.catalog)
	if err != nil {
		if errors.Is(err, orchestrator.ErrEmptyCatalog) {
			return nil, err
		}
		return nil, apperrors.NewInternalError(err)
	}

	return &Output{Result: result}, nil
}

func decodeProfile(raw json.RawMessage) (*models.StudyProfile, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, apperrors.NewProfileValidationFailedError("profile is required")
	}

	vr, err := schema.ValidateJSON(string(raw))
	if err != nil {
		return nil, apperrors.NewProfileValidationFailedError(err.Error())
	}
	if !vr.Valid {
		return nil, apperrors.NewProfileValidationFailedError(vr.Error())
	}

	var profile models.StudyProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, apperrors.NewProfileValidationFailedError(err.Error())
	}
	return &profile, nil
}

// ServeHTTP exposes Execute as POST /api/v1/analyses. The body is the bare
// profile, the response the bare result.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Code: "METHOD_NOT_ALLOWED", Message: "use POST"})
		return
	}

	var raw json.RawMessage
	body := http.MaxBytesReader(w, r.Body, h.config.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		stdErr := apperrors.NewProfileValidationFailedError(fmt.Sprintf("decode body: %v", err))
		writeJSON(w, http.StatusBadRequest, toResponse(stdErr))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.Timeout)
	defer cancel()

	output, err := h.Execute(ctx, &Input{Profile: raw})
	if err != nil {
		stdErr, ok := apperrors.AsStandardError(err)
		if !ok {
			stdErr = apperrors.NewInternalError(err)
		}
		h.logger.Warn("analysis request failed", map[string]interface{}{
			"errorCode": string(stdErr.Code),
			"details":   stdErr.Details,
		})
		writeJSON(w, statusFor(stdErr.Code), toResponse(stdErr))
		return
	}

	writeJSON(w, http.StatusOK, output.Result)
}

func statusFor(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeProfileValidationFailed:
		return http.StatusBadRequest
	case apperrors.ErrCodeCatalogEmpty:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func toResponse(e *apperrors.StandardError) ErrorResponse {
	return ErrorResponse{Code: string(e.Code), Message: e.Message, Details: e.Details}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
