// Package errors provides standardized error handling for the intake engine.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidField       ErrorCode = "INVALID_FIELD"
	ErrCodeSubmissionFailed   ErrorCode = "SUBMISSION_FAILED"
	ErrCodeSubmissionTimeout  ErrorCode = "SUBMISSION_TIMEOUT"
	ErrCodeSubmissionInFlight ErrorCode = "SUBMISSION_IN_FLIGHT"

	ErrCodeSessionCreateFailed   ErrorCode = "SESSION_CREATE_FAILED"
	ErrCodeSessionCompleteFailed ErrorCode = "SESSION_COMPLETE_FAILED"

	ErrCodeStorageReadFailed  ErrorCode = "STORAGE_READ_FAILED"
	ErrCodeStorageWriteFailed ErrorCode = "STORAGE_WRITE_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationFailedError creates a non-retryable validation error. The
// per-field messages stay on the wizard; Details carries a flat summary for
// logs.
func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Form validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidFieldError creates a non-retryable error for an unknown field
// name or a value of the wrong type.
func NewInvalidFieldError(field, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidField,
		Message:   fmt.Sprintf("Invalid update for field '%s'", field),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSubmissionFailedError creates a retryable scoring-service error. The
// user may retry manually; the engine never retries on its own.
func NewSubmissionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSubmissionFailed,
		Message:   "Erro ao processar análise. Tente novamente.",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSubmissionTimeoutError creates a retryable submission timeout error.
func NewSubmissionTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeSubmissionTimeout,
		Message:   "Erro ao processar análise. Tente novamente.",
		Details:   "scoring service call exceeded timeout",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSubmissionInFlightError is returned when a submission is attempted
// while another one is outstanding.
func NewSubmissionInFlightError() *StandardError {
	return &StandardError{
		Code:      ErrCodeSubmissionInFlight,
		Message:   "A submission is already in progress",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionCreateFailedError creates a retryable session-correlation error.
// Never surfaced to the end user.
func NewSessionCreateFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionCreateFailed,
		Message:   "Failed to create abandonment-tracking session",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionCompleteFailedError creates a retryable session-completion error.
// Never surfaced to the end user; the stored token is left in place.
func NewSessionCompleteFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionCompleteFailed,
		Message:   "Failed to link session to finished analysis",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStorageReadFailedError creates a retryable durable-storage read error.
func NewStorageReadFailedError(key string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStorageReadFailed,
		Message:   "Durable storage read failed",
		Details:   fmt.Sprintf("key: %s, error: %s", key, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStorageWriteFailedError creates a retryable durable-storage write error.
func NewStorageWriteFailedError(key string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStorageWriteFailed,
		Message:   "Durable storage write failed",
		Details:   fmt.Sprintf("key: %s, error: %s", key, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// IsCode reports whether err is a StandardError with the given code.
func IsCode(err error, code ErrorCode) bool {
	stdErr, ok := err.(*StandardError)
	return ok && stdErr.Code == code
}

// UserMessage returns the message safe to show to the end user. Only
// submission failures are ever user-visible; everything else collapses to a
// generic message.
func UserMessage(err error) string {
	if stdErr, ok := err.(*StandardError); ok {
		switch stdErr.Code {
		case ErrCodeSubmissionFailed, ErrCodeSubmissionTimeout:
			return stdErr.Message
		}
	}
	return "Erro ao processar análise. Tente novamente."
}
