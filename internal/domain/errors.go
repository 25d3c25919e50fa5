package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeInvalidOperation = "INVALID_OPERATION"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// Validation errors
var (
	ErrMissingURL      = NewDomainError(ErrCodeValidation, "url is required")
	ErrInvalidSeedURL  = NewDomainError(ErrCodeValidation, "url must be an absolute http(s) URL")
	ErrEmptyMessage    = NewDomainError(ErrCodeValidation, "message is required")
	ErrEmptyEmbedInput = NewDomainError(ErrCodeValidation, "embedding input must not be empty")
)

// Not found errors
var (
	ErrSessionNotFound = NewDomainError(ErrCodeNotFound, "session not found")
)

// Operation errors
var (
	ErrSessionNotReady = NewDomainError(ErrCodeInvalidOperation, "knowledge base is still being prepared, try again shortly")
)

// Internal errors
var (
	ErrChunkVectorMismatch = NewDomainError(ErrCodeInternalError, "document chunk and vector counts differ")
	ErrEmbeddingFailed     = NewDomainError(ErrCodeInternalError, "embedding service request failed")
)
