// Package errors provides structured error handling for concord.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: IO errors (corpus files, index cache)
//   - 4XX: Request validation errors
//   - 5XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryIO indicates corpus and cache I/O errors.
	CategoryIO Category = "IO"
	// CategoryValidation indicates request validation errors.
	CategoryValidation Category = "VALIDATION"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates an unrecoverable error; the request must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates the operation failed but the caller can continue.
	SeverityError Severity = "ERROR"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigInvalid = "ERR_101_CONFIG_INVALID"

	// IO errors (200-299)
	ErrCodeCorpusNotFound  = "ERR_201_CORPUS_NOT_FOUND"
	ErrCodeCorpusMalformed = "ERR_202_CORPUS_MALFORMED"
	ErrCodeCacheIO         = "ERR_203_CACHE_IO"

	// Validation errors (400-499): ordinary request failures,
	// recoverable by the caller, never fatal.
	ErrCodeUnknownTranslation = "ERR_401_UNKNOWN_TRANSLATION"
	ErrCodeUnknownBook        = "ERR_402_UNKNOWN_BOOK"
	ErrCodeChapterOutOfRange  = "ERR_403_CHAPTER_OUT_OF_RANGE"
	ErrCodeVerseOutOfRange    = "ERR_404_VERSE_OUT_OF_RANGE"
	ErrCodeInvalidRange       = "ERR_405_INVALID_RANGE"
	ErrCodeEmptyQuery         = "ERR_406_EMPTY_QUERY"
	ErrCodeInvalidReference   = "ERR_407_INVALID_REFERENCE"

	// Internal errors (500-599)
	ErrCodeInternal         = "ERR_501_INTERNAL"
	ErrCodeIndexUnavailable = "ERR_502_INDEX_UNAVAILABLE"
)

// categoryFromCode extracts category from an error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryIO
	case '4':
		return CategoryValidation
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on an error code.
// IndexUnavailable is the only request-fatal condition; validation
// failures are always ordinary errors.
func severityFromCode(code string) Severity {
	if code == ErrCodeIndexUnavailable {
		return SeverityFatal
	}
	return SeverityError
}
