package errors

import (
	"errors"
	"fmt"
)

// ReadyError is the structured error type for readycheck.
// It carries enough context to render a failed requirement for the operator
// and to log it as structured attributes.
type ReadyError struct {
	// Code is the unique error code (e.g., "ERR_201_MISSING_FILE").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, IO, Import, Internal).
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
func (e *ReadyError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *ReadyError) Unwrap() error {
	return e.Cause
}

// Is matches another *ReadyError by code, so errors.Is(err, MissingFile("", nil))
// reports whether err is a missing-file failure.
func (e *ReadyError) Is(target error) bool {
	if t, ok := target.(*ReadyError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *ReadyError) WithDetail(key, value string) *ReadyError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
// Returns the error for method chaining.
func (e *ReadyError) WithSuggestion(suggestion string) *ReadyError {
	e.Suggestion = suggestion
	return e
}

// New creates a new ReadyError with the given code and message.
// Category and severity are derived from the code.
func New(code string, message string, cause error) *ReadyError {
	return &ReadyError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// Wrap creates a ReadyError from an existing error.
// The error's message becomes the ReadyError message.
func Wrap(code string, err error) *ReadyError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// MissingFile creates the error recorded when a required path does not exist.
func MissingFile(path string, cause error) *ReadyError {
	return New(ErrCodeMissingFile, "missing: "+path, cause).
		WithDetail("path", path)
}

// ImportFailure creates the error recorded when a module cannot be loaded.
// The message is whatever the loader raised; causes are not distinguished.
func ImportFailure(module string, cause error) *ReadyError {
	msg := "import failed"
	if cause != nil {
		msg = cause.Error()
	}
	return New(ErrCodeImportFailure, msg, cause).
		WithDetail("module", module)
}

// ManifestError creates a checklist construction error.
func ManifestError(message string, cause error) *ReadyError {
	return New(ErrCodeManifestInvalid, message, cause)
}

// NotReady creates the aggregate error returned when any requirement failed.
func NotReady(failed, total int) *ReadyError {
	return New(ErrCodeNotReady, fmt.Sprintf("%d of %d deployment checks failed", failed, total), nil).
		WithSuggestion("Fix every item marked as failed, then run readycheck again")
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *ReadyError {
	return New(ErrCodeInternal, message, cause)
}

// IsFatal checks if an error has fatal severity.
func IsFatal(err error) bool {
	var re *ReadyError
	if errors.As(err, &re) {
		return re.Severity == SeverityFatal
	}
	return false
}

// GetCode extracts the error code from a ReadyError anywhere in the chain.
// Returns empty string if there is none.
func GetCode(err error) string {
	var re *ReadyError
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}

// GetCategory extracts the category from a ReadyError.
// Returns empty string if not a ReadyError.
func GetCategory(err error) Category {
	var re *ReadyError
	if errors.As(err, &re) {
		return re.Category
	}
	return ""
}
