package errors

import (
	stderrors "errors"
	"fmt"
)

// SeroostError is the structured error type for seroost.
// It carries enough context for logging, CLI hints and JSON output.
type SeroostError struct {
	// Code is the unique error code (e.g., "ERR_209_INDEX_NOT_FOUND").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, IO, Validation, Internal).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *SeroostError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *SeroostError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() against the sentinels below.
func (e *SeroostError) Is(target error) bool {
	if t, ok := target.(*SeroostError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *SeroostError) WithDetail(key, value string) *SeroostError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
// Returns the error for method chaining.
func (e *SeroostError) WithSuggestion(suggestion string) *SeroostError {
	e.Suggestion = suggestion
	return e
}

// New creates a new SeroostError with the given code and message.
// Category and severity are derived from the code.
func New(code string, message string, cause error) *SeroostError {
	return &SeroostError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// Wrap creates a SeroostError from an existing error.
// The error's message becomes the SeroostError message.
func Wrap(code string, err error) *SeroostError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// Sentinels for errors.Is checks. Only the code is compared.
var (
	ErrIndexNotFound    = &SeroostError{Code: ErrCodeIndexNotFound}
	ErrCorruptIndex     = &SeroostError{Code: ErrCodeCorruptIndex}
	ErrQueryEmpty       = &SeroostError{Code: ErrCodeQueryEmpty}
	ErrConfigNotFound   = &SeroostError{Code: ErrCodeConfigNotFound}
	ErrConfigInvalid    = &SeroostError{Code: ErrCodeConfigInvalid}
	ErrFileTooLarge     = &SeroostError{Code: ErrCodeFileTooLarge}
	ErrUnsupportedFile  = &SeroostError{Code: ErrCodeUnsupportedFile}
	ErrExtractionFailed = &SeroostError{Code: ErrCodeExtractionFailed}
	ErrIndexLocked      = &SeroostError{Code: ErrCodeIndexLocked}
	ErrDirUnreadable    = &SeroostError{Code: ErrCodeDirUnreadable}
	ErrInvalidPath      = &SeroostError{Code: ErrCodeInvalidPath}
)

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *SeroostError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// IOError creates an I/O-related error.
func IOError(message string, cause error) *SeroostError {
	return New(ErrCodeFileNotFound, message, cause)
}

// ValidationError creates a validation-related error.
func ValidationError(message string, cause error) *SeroostError {
	return New(ErrCodeInvalidInput, message, cause)
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *SeroostError {
	return New(ErrCodeInternal, message, cause)
}

// IsFatal checks if an error has fatal severity.
// Fatal errors should abort the current operation.
func IsFatal(err error) bool {
	var se *SeroostError
	if stderrors.As(err, &se) {
		return se.Severity == SeverityFatal
	}
	return false
}

// GetCode extracts the error code from the first SeroostError in the chain.
// Returns empty string if there is none.
func GetCode(err error) string {
	var se *SeroostError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return ""
}

// GetCategory extracts the category from the first SeroostError in the chain.
func GetCategory(err error) Category {
	var se *SeroostError
	if stderrors.As(err, &se) {
		return se.Category
	}
	return ""
}
