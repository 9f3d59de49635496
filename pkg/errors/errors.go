package errors

import (
	"fmt"
)

// ParseError represents a project or config decoding failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// HistoryError reports a history entry that cannot be resolved to a full
// snapshot, typically a diff whose base entry is missing.
type HistoryError struct {
	Index   int
	Base    int
	Message string
}

// NewHistoryError constructs a HistoryError for the entry at index.
func NewHistoryError(index, base int, message string) error {
	return &HistoryError{Index: index, Base: base, Message: message}
}

func (e *HistoryError) Error() string {
	if e == nil {
		return ""
	}
	if e.Base >= 0 {
		return fmt.Sprintf("history error: entry %d (base %d): %s", e.Index, e.Base, e.Message)
	}
	return fmt.Sprintf("history error: entry %d: %s", e.Index, e.Message)
}

// FormatError indicates an unsupported export format.
type FormatError struct {
	Format string
}

// NewFormatError constructs a FormatError.
func NewFormatError(format string) error {
	return &FormatError{Format: format}
}

func (e *FormatError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("unsupported format %q (want css, scss, less or sass)", e.Format)
}
