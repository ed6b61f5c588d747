package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToBPMNError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StandardError
		wantCode string
	}{
		{"catalog empty", NewCatalogEmptyError(), "CATALOG_EMPTY"},
		{"profile invalid", NewProfileValidationFailedError("title: required"), "PROFILE_VALIDATION_FAILED"},
		{"catalog load", NewCatalogLoadFailedError("postgres", errors.New("dial tcp")), "CATALOG_LOAD_FAILED"},
		{"database", NewDatabaseConnectionFailedError(errors.New("refused")), "DATABASE_CONNECTION_FAILED"},
		{"cache", NewCacheUnavailableError(errors.New("i/o timeout")), "CACHE_UNAVAILABLE"},
		{"unmapped code keeps its name", NewLLMError(ErrCodeLLMParseFailed, errors.New("bad json")), "LLM_PARSE_FAILED"},
		{"internal", NewInternalError(errors.New("boom")), "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bpmnErr := ConvertToBPMNError(tt.err)
			assert.Equal(t, tt.wantCode, bpmnErr.Code)
			assert.Equal(t, tt.err.Retryable, bpmnErr.Retryable)

			vars := bpmnErr.ToErrorVariables()
			assert.Equal(t, tt.wantCode, vars["errorCode"])
			assert.Equal(t, string(tt.err.Code), vars["originalErrorCode"])
		})
	}
}

func TestAsStandardError_ThroughWrapping(t *testing.T) {
	sentinel := errors.New("CATALOG_EMPTY")
	wrapped := fmt.Errorf("%w: %w", sentinel, NewCatalogEmptyError())

	stdErr, ok := AsStandardError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrCodeCatalogEmpty, stdErr.Code)
	assert.True(t, errors.Is(wrapped, sentinel))

	_, ok = AsStandardError(errors.New("plain"))
	assert.False(t, ok)
}

func TestStandardError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewCatalogLoadFailedError("postgres", cause)

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "connection refused", err.Details)
	assert.Contains(t, err.Error(), "CATALOG_LOAD_FAILED")
}

func TestErrorCategories(t *testing.T) {
	assert.Equal(t, "CONFIGURATION", GetErrorCategory(ErrCodeCatalogEmpty))
	assert.Equal(t, "AI", GetErrorCategory(ErrCodeLLMTransportFailed))
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeQueryExecutionFailed))
	assert.Equal(t, "CACHE", GetErrorCategory(ErrCodeCacheUnavailable))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeProfileValidationFailed))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))
}

