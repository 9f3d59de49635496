package cssgen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/cssforge/internal/canvas"
)

func TestGenerateSingleDefaultElement(t *testing.T) {
	t.Parallel()

	store := canvas.NewStore()
	store.Add("div", 50, 50, 200, 100)

	want := `.div-element-0 {
    width: 200px;
    height: 100px;
    background-color: #e0e0e0;
    border: 1px solid #ccc;
    position: absolute;
    left: 50px;
    top: 50px;
}

`
	require.Equal(t, want, Generate(store.Elements()))
}

func TestGenerateIndexesByStoreOrder(t *testing.T) {
	t.Parallel()

	store := canvas.NewStore()
	first := store.Add("div", 0, 0, 10, 10)
	store.Add("Button", 0, 0, 10, 10)
	store.Add("div", 0, 0, 10, 10)

	css := Generate(store.Elements())
	require.Contains(t, css, ".div-element-0 {")
	require.Contains(t, css, ".button-element-1 {")
	require.Contains(t, css, ".div-element-2 {")

	store.Remove(first)
	css = Generate(store.Elements())
	require.Contains(t, css, ".button-element-0 {")
	require.Contains(t, css, ".div-element-1 {")
	require.NotContains(t, css, "-element-2")
}

func TestGenerateUsesLivePosition(t *testing.T) {
	t.Parallel()

	store := canvas.NewStore()
	e := store.Add("div", 50, 50, 200, 100)
	e.SetStyle("left", "999px")

	css := Rule(e, 0)
	require.Contains(t, css, "    left: 50px;\n")
	require.NotContains(t, css, "999px")
}

func TestGenerateIsDeterministic(t *testing.T) {
	t.Parallel()

	store := canvas.NewStore()
	e := store.Add("p", 5, 6, 7, 8)
	e.SetStyle("color", "red")
	e.SetStyle("font-size", "14px")

	require.Equal(t, Generate(store.Elements()), Generate(store.Elements()))
}

func TestGenerateEmptyStore(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", Generate(nil))
}
