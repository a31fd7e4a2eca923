// Package errors provides standardized error messaging for klang
package errors

import (
	stderrors "errors"
	"fmt"
	"runtime"
)

// ErrorCategory represents different categories of errors
type ErrorCategory string

const (
	CategoryMemory     ErrorCategory = "MEMORY"
	CategoryValidation ErrorCategory = "VALIDATION"
	CategoryIO         ErrorCategory = "IO"
	CategoryUsage      ErrorCategory = "USAGE"
)

// Sentinel errors matched through errors.Is against any StandardError of
// the same category.
var (
	ErrAllocation = stderrors.New("allocation failure")
	ErrDictionary = stderrors.New("invalid dictionary")
	ErrIO         = stderrors.New("i/o failure")
	ErrUsage      = stderrors.New("usage error")
)

// StandardError provides a consistent error format
type StandardError struct {
	Category ErrorCategory
	Code     string
	Message  string
	Context  map[string]interface{}
	Caller   string
	Cause    error
}

// Error implements the error interface
func (e *StandardError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Category, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *StandardError) Unwrap() error { return e.Cause }

// Is reports category sentinels as matching.
func (e *StandardError) Is(target error) bool {
	switch target {
	case ErrAllocation:
		return e.Category == CategoryMemory
	case ErrDictionary:
		return e.Category == CategoryValidation
	case ErrIO:
		return e.Category == CategoryIO
	case ErrUsage:
		return e.Category == CategoryUsage
	}
	return false
}

// NewStandardError creates a new standardized error
func NewStandardError(category ErrorCategory, code, message string, context map[string]interface{}) *StandardError {
	pc, _, _, ok := runtime.Caller(1)
	caller := "unknown"
	if ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			caller = fn.Name()
		}
	}

	return &StandardError{
		Category: category,
		Code:     code,
		Message:  message,
		Context:  context,
		Caller:   caller,
	}
}

// Common error constructors
func AllocationFailure(required, limit int) *StandardError {
	return NewStandardError(CategoryMemory, "OUTPUT_ALLOCATION_FAILED",
		fmt.Sprintf("Output buffer cannot grow to %d bytes (limit %d)", required, limit),
		map[string]interface{}{"required": required, "limit": limit})
}

func InvalidDictionary(source string, line int, reason string) *StandardError {
	return NewStandardError(CategoryValidation, "INVALID_DICTIONARY",
		fmt.Sprintf("%s:%d: %s", source, line, reason),
		map[string]interface{}{"source": source, "line": line})
}

func EmptyToken(index int, side string) *StandardError {
	return NewStandardError(CategoryValidation, "EMPTY_TOKEN",
		fmt.Sprintf("Keyword entry %d has an empty %s token", index, side),
		map[string]interface{}{"index": index, "side": side})
}

func IOFailure(op, path string, cause error) *StandardError {
	e := NewStandardError(CategoryIO, "IO_FAILURE",
		fmt.Sprintf("Could not %s '%s'", op, path),
		map[string]interface{}{"op": op, "path": path})
	e.Cause = cause
	return e
}

func Usage(format string, args ...interface{}) *StandardError {
	return NewStandardError(CategoryUsage, "BAD_ARGUMENTS", fmt.Sprintf(format, args...), nil)
}
