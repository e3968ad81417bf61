package apperrors

import (
	"errors"
	"strings"
)

// Common errors
var (
	// Resource errors
	ErrNotFound             = errors.New("resource not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrTeamNotFound         = errors.New("team not found")

	// Conflict errors
	ErrRollNoExists    = errors.New("roll number already registered")
	ErrIdentifierTaken = errors.New("identifier already assigned")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrMembersNotFound  = errors.New("member identifiers not found")
	ErrEmptyMembership  = errors.New("team must have at least one member")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with an underlying sentinel
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewValidationError creates a validation error with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewMembersNotFoundError creates an error naming the member identifiers
// that did not resolve to a registrant.
func NewMembersNotFoundError(missing []string) error {
	return &CustomError{
		Err:     ErrMembersNotFound,
		Message: "unknown member identifiers: " + strings.Join(missing, ", "),
		Details: map[string]interface{}{"missing": missing},
	}
}

// MissingIdentifiers extracts the unresolved identifiers from a
// members-not-found error, or nil if the error carries none.
func MissingIdentifiers(err error) []string {
	var ce *CustomError
	if !errors.As(err, &ce) || ce.Details == nil {
		return nil
	}
	missing, _ := ce.Details["missing"].([]string)
	return missing
}
