// internal/common/errors/errors.go

// Package errors provides standardized error codes for BPMN workflow
// integration. The recommendation engine itself never fails; these codes
// cover the plumbing around it.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidRecommendationInput ErrorCode = "INVALID_RECOMMENDATION_INPUT"
	ErrCodeProfileLookupFailed        ErrorCode = "PROFILE_LOOKUP_FAILED"
	ErrCodePostingsUnavailable        ErrorCode = "POSTINGS_UNAVAILABLE"
	ErrCodeRecommendationFailed       ErrorCode = "RECOMMENDATION_FAILED"
	ErrCodeExplanationFailed          ErrorCode = "EXPLANATION_FAILED"
	ErrCodeParseError                 ErrorCode = "PARSE_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// New creates a StandardError with the current timestamp.
func New(code ErrorCode, message string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Retryable: retryable,
		Timestamp: time.Now(),
	}
}

// Newf is New with a formatted message.
func Newf(code ErrorCode, retryable bool, format string, args ...interface{}) *StandardError {
	return New(code, fmt.Sprintf(format, args...), retryable)
}

// CodeOf extracts the error code from an error chain, defaulting to
// RECOMMENDATION_FAILED for unclassified errors.
func CodeOf(err error) ErrorCode {
	var se *StandardError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return ErrCodeRecommendationFailed
}
