package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"foresight-workers/internal/common/camunda/camundatest"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) Error(msg string, _ map[string]interface{}) {
	l.messages = append(l.messages, msg)
}

func testJob() entities.Job {
	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:                42,
		Type:               "analyze-study-profile",
		ProcessInstanceKey: 7,
		Retries:            3,
	}}
}

func TestHandleJobError_ThrowsForEveryCode(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantCode      string
		wantRetryable bool
	}{
		{"invalid profile", NewProfileValidationFailedError("title: required"), "PROFILE_VALIDATION_FAILED", false},
		{"empty catalog", fmt.Errorf("%w: %w", errors.New("CATALOG_EMPTY"), NewCatalogEmptyError()), "CATALOG_EMPTY", false},
		{"retryable code", NewQueryExecutionFailedError("select techniques", errors.New("timeout")), "QUERY_EXECUTION_FAILED", true},
		{"plain error", errors.New("boom"), "INTERNAL_ERROR", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := camundatest.NewJobClient()
			log := &recordingLogger{}

			NewErrorHandler(log).HandleJobError(context.Background(), client, testJob(), tt.err)

			assert.Empty(t, client.Completed())
			assert.Empty(t, client.Failed())
			thrown := client.Thrown()
			require.Len(t, thrown, 1)
			assert.Equal(t, int64(42), thrown[0].JobKey)
			assert.Equal(t, tt.wantCode, thrown[0].ErrorCode)
			assert.NotEmpty(t, thrown[0].ErrorMessage)

			var vars map[string]interface{}
			require.NoError(t, json.Unmarshal([]byte(thrown[0].Variables), &vars))
			assert.Equal(t, tt.wantCode, vars["errorCode"])
			assert.Equal(t, tt.wantRetryable, vars["retryable"])

			assert.Equal(t, []string{"job failed"}, log.messages)
		})
	}
}

func TestHandleJobError_LogsSendFailure(t *testing.T) {
	client := camundatest.NewJobClient()
	client.SendErr = errors.New("gateway unavailable")
	log := &recordingLogger{}

	NewErrorHandler(log).HandleJobError(context.Background(), client, testJob(), NewCatalogEmptyError())

	assert.Len(t, client.Thrown(), 1)
	assert.Equal(t, []string{"job failed", "failed to throw BPMN error"}, log.messages)
}

func TestErrorHandler_NormalizeError(t *testing.T) {
	h := NewErrorHandler(nil)

	stdErr := h.normalizeError(NewProfileValidationFailedError("x"))
	assert.Equal(t, ErrCodeProfileValidationFailed, stdErr.Code)

	stdErr = h.normalizeError(errors.New("boom"))
	assert.Equal(t, ErrCodeInternal, stdErr.Code)
	assert.Equal(t, "boom", stdErr.Details)
}
