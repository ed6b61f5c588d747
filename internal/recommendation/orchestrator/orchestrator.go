// internal/recommendation/orchestrator/orchestrator.go
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "foresight-workers/internal/common/errors"
	"foresight-workers/internal/common/logger"
	"foresight-workers/internal/common/metrics"
	"foresight-workers/internal/common/observability"
	"foresight-workers/internal/models"
	"foresight-workers/internal/recommendation/dedup"
	"foresight-workers/internal/recommendation/heuristic"
	"foresight-workers/internal/recommendation/llm"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ErrEmptyCatalog is the only error Analyze returns.
var ErrEmptyCatalog = errors.New("CATALOG_EMPTY")

// Recommender is the AI path. *llm.Client implements it.
type Recommender interface {
	Recommend(ctx context.Context, profile *models.StudyProfile, catalog *models.Catalog) (*llm.Result, error)
}

type Config struct {
	LLMTimeout          time.Duration
	SimilarityThreshold float64
	TopN                int
	CategoryOrder       map[string]int
}

func DefaultConfig() *Config {
	return &Config{
		LLMTimeout:          30 * time.Second,
		SimilarityThreshold: dedup.DefaultThreshold,
		TopN:                heuristic.DefaultTopN,
		CategoryOrder:       heuristic.DefaultCategoryOrder,
	}
}

// Orchestrator runs one analysis: AI path first, heuristic fallback on any
// AI failure. It keeps no per-call state and is safe for concurrent use.
type Orchestrator struct {
	config *Config
	ai     Recommender
	scorer *heuristic.Scorer
	dedup  *dedup.Deduplicator
	obs    *observability.Observability
	logger logger.Logger
	now    func() time.Time
	newID  func() string
}

// New wires the engine. A nil ai disables the AI path.
func New(config *Config, ai Recommender, obs *observability.Observability, log logger.Logger) *Orchestrator {
	if config == nil {
		config = DefaultConfig()
	}
	cfg := *config
	if cfg.LLMTimeout <= 0 {
		cfg.LLMTimeout = 30 * time.Second
	}
	return &Orchestrator{
		config: &cfg,
		ai:     ai,
		scorer: heuristic.NewScorer(
			heuristic.WithTopN(cfg.TopN),
			heuristic.WithCategoryOrder(cfg.CategoryOrder),
		),
		dedup:  dedup.New(cfg.SimilarityThreshold),
		obs:    obs,
		logger: log.WithFields(map[string]interface{}{"component": "orchestrator"}),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Analyze recommends techniques for profile. Only an empty catalog is an
// error; every AI failure is absorbed into a heuristic result.
func (o *Orchestrator) Analyze(ctx context.Context, profile *models.StudyProfile, catalog *models.Catalog) (*models.StudyProfileResult, error) {
	if catalog.Len() == 0 {
		return nil, fmt.Errorf("%w: %w", ErrEmptyCatalog, apperrors.NewCatalogEmptyError())
	}

	start := o.now()
	ctx, span := o.obs.StartSpan(ctx, "analyze",
		attribute.Int("catalog.size", catalog.Len()),
		attribute.String("profile.complexity", string(profile.ObjectiveComplexity)),
	)
	defer span.End()

	result := &models.StudyProfileResult{
		AnalysisID:                o.newID(),
		Profile:                   *profile,
		TotalTechniquesConsidered: catalog.Len(),
		CreatedAt:                 start.UTC(),
	}

	if err := o.runAI(ctx, profile, catalog, result); err != nil {
		code := llm.Code(err)
		if o.ai == nil {
			code = apperrors.ErrCodeLLMDisabled
		} else {
			metrics.LLMFailures.WithLabelValues(string(code)).Inc()
			llmErr := apperrors.NewLLMError(code, err)
			o.logger.Warn("AI path failed, using heuristic fallback", map[string]interface{}{
				"errorCode":     string(llmErr.Code),
				"errorCategory": apperrors.GetErrorCategory(llmErr.Code),
				"details":       llmErr.Details,
			})
			err = llmErr
		}
		span.RecordError(err)
		o.runHeuristic(ctx, profile, catalog, result)
		result.FallbackReason = string(code)
	}

	heuristic.SortBySequence(result.RecommendedTechniques)
	if result.AnalysisDescription == "" {
		result.AnalysisDescription = describe(profile, result.RecommendedTechniques, catalog)
	}
	if result.EstimatedDuration == "" {
		result.EstimatedDuration = estimateDuration(profile)
	}

	path := result.Path()
	span.SetAttributes(
		attribute.String("path", path),
		attribute.Int("recommendations", len(result.RecommendedTechniques)),
	)
	span.SetStatus(codes.Ok, "")
	metrics.AnalysesTotal.WithLabelValues(path).Inc()
	metrics.AnalysisDuration.WithLabelValues(path).Observe(o.now().Sub(start).Seconds())

	o.logger.Info("analysis completed", map[string]interface{}{
		"analysisId":      result.AnalysisID,
		"path":            path,
		"recommendations": len(result.RecommendedTechniques),
		"filtered":        result.FilteredSimilarTechniques,
	})

	return result, nil
}

var errAIDisabled = errors.New("AI path disabled")

func (o *Orchestrator) runAI(ctx context.Context, profile *models.StudyProfile, catalog *models.Catalog, result *models.StudyProfileResult) error {
	if o.ai == nil {
		return errAIDisabled
	}

	ctx, span := o.obs.StartSpan(ctx, "llm.recommend")
	defer span.End()

	aiCtx, cancel := context.WithTimeout(ctx, o.config.LLMTimeout)
	defer cancel()

	res, err := o.ai.Recommend(aiCtx, profile, catalog)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	kept, removed := o.dedup.Filter(res.Recommendations, catalog)
	if len(kept) == 0 {
		kept, removed = res.Recommendations, 0
	}
	if removed > 0 {
		metrics.SimilarTechniquesFiltered.Add(float64(removed))
	}
	span.SetAttributes(attribute.Int("dedup.removed", removed))

	result.RecommendedTechniques = kept
	result.FilteredSimilarTechniques = removed
	result.AnalysisDescription = res.AnalysisDescription
	result.EstimatedDuration = res.EstimatedDuration
	result.AIQuery = res.Prompt
	result.UsedFallback = false
	return nil
}

func (o *Orchestrator) runHeuristic(ctx context.Context, profile *models.StudyProfile, catalog *models.Catalog, result *models.StudyProfileResult) {
	_, span := o.obs.StartSpan(ctx, "heuristic.score")
	defer span.End()

	result.RecommendedTechniques = o.scorer.Recommend(profile, catalog)
	result.FilteredSimilarTechniques = 0
	result.AnalysisDescription = ""
	result.EstimatedDuration = ""
	result.AIQuery = ""
	result.UsedFallback = true
}
