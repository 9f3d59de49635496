package canvas

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewElementDefaults(t *testing.T) {
	t.Parallel()

	s := NewStore()
	e := s.Add("div", 50, 50, 200, 100)

	require.Equal(t, []string{"width", "height", "background-color", "border", "position", "left", "top"}, e.Styles().Keys())
	require.Equal(t, "200px", e.Styles().Value("width"))
	require.Equal(t, "100px", e.Styles().Value("height"))
	require.Equal(t, "#e0e0e0", e.Styles().Value("background-color"))
	require.Equal(t, "1px solid #ccc", e.Styles().Value("border"))
	require.Equal(t, "absolute", e.Styles().Value("position"))
	require.Equal(t, "50px", e.Styles().Value("left"))
	require.Equal(t, "50px", e.Styles().Value("top"))
}

func TestSelectorUsesLowercasedType(t *testing.T) {
	t.Parallel()

	e := NewStore().Add("Button", 0, 0, 10, 10)
	require.Equal(t, ".button-element-3", e.Selector(3))
	require.True(t, e.MatchesType("BUTTON"))
	require.False(t, e.MatchesType("div"))
}

func TestMoveToKeepsLeftTopConsistent(t *testing.T) {
	t.Parallel()

	e := NewStore().Add("div", 0, 0, 10, 10)
	e.MoveTo(120.6, 33)

	require.Equal(t, Point{X: 120.6, Y: 33}, e.Position())
	v, _ := e.Style("left")
	require.Equal(t, "120px", v)
	v, _ = e.Style("top")
	require.Equal(t, "33px", v)
}

func TestSetStyleWidthResizes(t *testing.T) {
	t.Parallel()

	e := NewStore().Add("div", 0, 0, 200, 100)
	e.SetStyle("width", "320px")
	e.SetStyle("height", "45px")

	require.Equal(t, Size{Width: 320, Height: 45}, e.Size())
	v, _ := e.Style("width")
	require.Equal(t, "320px", v)
}

func TestSetStyleNonPixelWidthKeepsGeometry(t *testing.T) {
	t.Parallel()

	e := NewStore().Add("div", 0, 0, 200, 100)
	e.SetStyle("width", "50%")

	require.Equal(t, Size{Width: 200, Height: 100}, e.Size())
	v, _ := e.Style("width")
	require.Equal(t, "50%", v)
}

func TestSetStyleLeftDoesNotMove(t *testing.T) {
	t.Parallel()

	e := NewStore().Add("div", 10, 10, 200, 100)
	e.SetStyle("left", "400px")

	require.Equal(t, Point{X: 10, Y: 10}, e.Position())
}

func TestStylesReturnsCopy(t *testing.T) {
	t.Parallel()

	e := NewStore().Add("div", 0, 0, 1, 1)
	e.Styles().Set("color", "red")
	require.False(t, e.Styles().Has("color"))
}
