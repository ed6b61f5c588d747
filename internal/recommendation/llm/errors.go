// internal/recommendation/llm/errors.go
package llm

import (
	"context"
	"errors"

	apperrors "foresight-workers/internal/common/errors"
)

// Failure taxonomy of the AI path. Every error returned by Client wraps
// exactly one of these.
var (
	ErrTransport     = errors.New("LLM_TRANSPORT_FAILED")
	ErrParse         = errors.New("LLM_PARSE_FAILED")
	ErrSchema        = errors.New("LLM_SCHEMA_INVALID")
	ErrEmptyValidSet = errors.New("LLM_EMPTY_VALID_SET")
)

// Code maps an AI path error to its error code. Context expiry counts as a
// transport failure.
func Code(err error) apperrors.ErrorCode {
	switch {
	case errors.Is(err, ErrTransport),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return apperrors.ErrCodeLLMTransportFailed
	case errors.Is(err, ErrParse):
		return apperrors.ErrCodeLLMParseFailed
	case errors.Is(err, ErrSchema):
		return apperrors.ErrCodeLLMSchemaInvalid
	case errors.Is(err, ErrEmptyValidSet):
		return apperrors.ErrCodeLLMEmptyValidSet
	default:
		return apperrors.ErrCodeInternal
	}
}
