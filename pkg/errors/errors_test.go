package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewParseError("project.json", 12, underlying)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "project.json", parseErr.Path)
	require.Equal(t, 12, parseErr.Line)
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "project.json:12")
}

func TestParseErrorWithoutLine(t *testing.T) {
	t.Parallel()

	err := NewParseError("cssforge.yaml", 0, stdErrors.New("bad"))
	require.Equal(t, "parse error: cssforge.yaml: bad", err.Error())
}

func TestValidationErrorIncludesField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("history.capacity", "must be at least 2", nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "history.capacity", validationErr.Field)
	require.Contains(t, validationErr.Message, "at least 2")
}

func TestHistoryErrorIncludesBase(t *testing.T) {
	t.Parallel()

	err := NewHistoryError(4, 9, "base index out of range")

	var historyErr *HistoryError
	require.ErrorAs(t, err, &historyErr)
	require.Equal(t, 4, historyErr.Index)
	require.Equal(t, 9, historyErr.Base)
	require.Contains(t, err.Error(), "entry 4 (base 9)")
}

func TestFormatErrorNamesFormat(t *testing.T) {
	t.Parallel()

	err := NewFormatError("stylus")
	require.Contains(t, err.Error(), `"stylus"`)
}
