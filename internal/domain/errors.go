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
		Err:     nil,
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
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeUnavailable   = "UNAVAILABLE"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// Validation errors
var (
	ErrInvalidDocumentSource = NewDomainError(ErrCodeValidation, "doc_type must be 'policy' or 'regulation'")
	ErrNotPDF                = NewDomainError(ErrCodeValidation, "only PDF files are allowed")
	ErrEmptyFile             = NewDomainError(ErrCodeValidation, "uploaded file is empty")
	ErrNoExtractableText     = NewDomainError(ErrCodeValidation, "PDF contains no extractable text")
	ErrInvalidPDF            = NewDomainError(ErrCodeValidation, "invalid PDF file")
	ErrEmptyQuestion         = NewDomainError(ErrCodeValidation, "question is required")
)

// Not found errors
var (
	ErrDocumentNotFound = NewDomainError(ErrCodeNotFound, "document not found")
	ErrIndexNotFound    = NewDomainError(ErrCodeNotFound, "vector index not found")
)

// Already exists errors
var (
	ErrDocumentPathExists = NewDomainError(ErrCodeAlreadyExists, "document file path already recorded")
)
