// Package errors provides structured error handling for readycheck.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Manifest (configuration) errors
//   - 2XX: Filesystem errors
//   - 5XX: Internal errors
//   - 6XX: Module import errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates a malformed checklist.
	CategoryConfig Category = "CONFIG"
	// CategoryIO indicates filesystem errors.
	CategoryIO Category = "IO"
	// CategoryImport indicates a module that could not be loaded.
	CategoryImport Category = "IMPORT"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates unrecoverable error, must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates operation failed but can continue.
	SeverityError Severity = "ERROR"
)

// Error codes organized by category.
const (
	// Manifest errors (100-199)
	ErrCodeManifestInvalid = "ERR_102_MANIFEST_INVALID"

	// Filesystem errors (200-299)
	ErrCodeMissingFile = "ERR_201_MISSING_FILE"

	// Internal errors (500-599)
	ErrCodeInternal = "ERR_501_INTERNAL"
	ErrCodeNotReady = "ERR_502_NOT_READY"

	// Import errors (600-699)
	ErrCodeImportFailure = "ERR_601_IMPORT_FAILURE"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	// "102" from "ERR_102_MANIFEST_INVALID"
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryIO
	case '6':
		return CategoryImport
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on error code.
// A broken manifest stops the run before any check is evaluated.
func severityFromCode(code string) Severity {
	if code == ErrCodeManifestInvalid {
		return SeverityFatal
	}
	return SeverityError
}
