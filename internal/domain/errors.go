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
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

var (
	ErrEmptyQuery       = NewDomainError(ErrCodeValidation, "query cannot be empty")
	ErrEmptyChunkID     = NewDomainError(ErrCodeValidation, "chunk id cannot be empty")
	ErrEmptyChunkBody   = NewDomainError(ErrCodeValidation, "chunk content cannot be empty")
	ErrChunkNotFound    = NewDomainError(ErrCodeNotFound, "schema chunk not found")
	ErrEmbeddingFailed  = NewDomainError(ErrCodeInternalError, "embedding generation failed")
	ErrPipelineNotReady = NewDomainError(ErrCodeInternalError, "query pipeline not initialized")
)
