package clipboard

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryClipboard(t *testing.T) {
	t.Parallel()

	var cb Clipboard = &Memory{}
	text, err := cb.ReadText()
	require.NoError(t, err)
	require.Empty(t, text)

	require.NoError(t, cb.WriteText(`{"type":"div"}`))
	text, err = cb.ReadText()
	require.NoError(t, err)
	require.Equal(t, `{"type":"div"}`, text)
}

func TestDefaultReturnsUsableClipboard(t *testing.T) {
	t.Parallel()

	require.NotNil(t, Default())
}
