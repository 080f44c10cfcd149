// Package errors provides standardized error handling for the scoring tool.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Remote criteria source failures. Parse and column errors share the
	// source family: a malformed sheet is indistinguishable from an
	// unreachable one as far as callers are concerned.
	ErrCodeSourceUnavailable  ErrorCode = "SOURCE_UNAVAILABLE"
	ErrCodeSheetParseFailed   ErrorCode = "SHEET_PARSE_FAILED"
	ErrCodeSheetColumnMissing ErrorCode = "SHEET_COLUMN_MISSING"

	ErrCodeRegistryInvalid ErrorCode = "REGISTRY_INVALID"
	ErrCodeTypologyUnknown ErrorCode = "TYPOLOGY_UNKNOWN"

	ErrCodeCacheUnavailable ErrorCode = "CACHE_UNAVAILABLE"
	ErrCodeSessionNotFound  ErrorCode = "SESSION_NOT_FOUND"
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
// Error Constructors
// ==========================

// NewSourceUnavailableError creates a retryable remote-source error.
func NewSourceUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSourceUnavailable,
		Message:   "Criteria source unreachable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSheetParseFailedError creates a retryable sheet parse error. Retryable
// because a published sheet mid-edit can serve a truncated CSV.
func NewSheetParseFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSheetParseFailed,
		Message:   "Criteria sheet could not be parsed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSheetColumnMissingError creates a non-retryable column mapping error.
func NewSheetColumnMissingError(column string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSheetColumnMissing,
		Message:   "Criteria sheet is missing a required column",
		Details:   fmt.Sprintf("column: %s", column),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRegistryInvalidError creates a non-retryable registry validation error.
func NewRegistryInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRegistryInvalid,
		Message:   "Typology registry failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTypologyUnknownError creates a non-retryable unknown typology error.
func NewTypologyUnknownError(typology string) *StandardError {
	return &StandardError{
		Code:      ErrCodeTypologyUnknown,
		Message:   "Typology is not registered",
		Details:   fmt.Sprintf("typology: %s", typology),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheUnavailableError creates a retryable cache error.
func NewCacheUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   "Snapshot cache error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionNotFoundError creates a non-retryable session lookup error.
func NewSessionNotFoundError(sessionID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionNotFound,
		Message:   "Session not found or expired",
		Details:   fmt.Sprintf("sessionId: %s", sessionID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// Utility Functions
// ==========================

// IsSourceUnavailable reports whether err is any failure of the remote
// criteria source. Callers recover from these by degrading to an empty
// criteria set and surfacing a warning.
func IsSourceUnavailable(err error) bool {
	var stdErr *StandardError
	if !errors.As(err, &stdErr) {
		return false
	}
	switch stdErr.Code {
	case ErrCodeSourceUnavailable, ErrCodeSheetParseFailed, ErrCodeSheetColumnMissing:
		return true
	}
	return false
}

// IsRetryable reports whether err carries a retryable code.
func IsRetryable(err error) bool {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Retryable
	}
	return false
}

// CodeOf extracts the error code, or "" for foreign errors.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ""
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "SOURCE") || strings.Contains(codeStr, "SHEET"):
		return "SOURCE"
	case strings.Contains(codeStr, "REGISTRY") || strings.Contains(codeStr, "TYPOLOGY"):
		return "REGISTRY"
	case strings.Contains(codeStr, "CACHE"):
		return "CACHE"
	case strings.Contains(codeStr, "SESSION"):
		return "SESSION"
	default:
		return "OTHER"
	}
}
