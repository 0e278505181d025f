package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a field-scoped validation error
func NewValidationError(field, message string) *DomainError {
	return &DomainError{
		Code:    "VALIDATION_ERROR",
		Message: message,
		Field:   field,
	}
}

// NewMissingParentError reports an absent mandatory upstream document reference
func NewMissingParentError(field, parent string) *DomainError {
	return &DomainError{
		Code:    "MISSING_PARENT_REFERENCE",
		Message: fmt.Sprintf("%s is required: a %s cannot be created without its parent document", field, parent),
		Field:   field,
	}
}

// NewConflictingParentError reports a secondary reference that contradicts the
// one implied by the primary parent document
func NewConflictingParentError(field, message string) *DomainError {
	return &DomainError{
		Code:    "CONFLICTING_PARENT_REFERENCE",
		Message: message,
		Field:   field,
	}
}

// Common domain errors
var (
	ErrNotFound      = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput  = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState  = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)
