package cssparse

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseIndexedRule(t *testing.T) {
	t.Parallel()

	rules := Parse(".div-element-0 { background-color: #ff0000; }")

	require.Len(t, rules, 1)
	require.Equal(t, "div", rules[0].Type)
	require.True(t, rules[0].HasIndex)
	require.Equal(t, 0, rules[0].Index)
	require.Equal(t, []string{"background-color"}, rules[0].Properties.Keys())
	require.Equal(t, "#ff0000", rules[0].Properties.Value("background-color"))
}

func TestParseLegacyRuleWithoutIndex(t *testing.T) {
	t.Parallel()

	rules := Parse(".button-element {\n  color: white;\n}")

	require.Len(t, rules, 1)
	require.Equal(t, "button", rules[0].Type)
	require.False(t, rules[0].HasIndex)
}

func TestParseMultilineBodiesAndOrder(t *testing.T) {
	t.Parallel()

	css := `
.div-element-1 {
    width: 10px;
    height: 20px;
}

.p-element-0
{
    color: red;
}
`
	rules := Parse(css)

	require.Len(t, rules, 2)
	require.Equal(t, "div", rules[0].Type)
	require.Equal(t, 1, rules[0].Index)
	require.Equal(t, []string{"width", "height"}, rules[0].Properties.Keys())
	require.Equal(t, "p", rules[1].Type)
}

func TestParseStripsComments(t *testing.T) {
	t.Parallel()

	css := `.div-element-0 {
    /* color: blue; */
    width: 5px; /* trailing
    note */ height: 6px;
}`
	rules := Parse(css)

	require.Len(t, rules, 1)
	require.Equal(t, []string{"width", "height"}, rules[0].Properties.Keys())
	require.False(t, rules[0].Properties.Has("color"))
}

func TestParseSplitsOnFirstColon(t *testing.T) {
	t.Parallel()

	rules := Parse(`.img-element-0 { background: url(http://example.com/a.png); }`)

	require.Len(t, rules, 1)
	require.Equal(t, "url(http://example.com/a.png)", rules[0].Properties.Value("background"))
}

func TestParseDiscardsEmptyNamesAndValues(t *testing.T) {
	t.Parallel()

	rules := Parse(`.div-element-0 { : red; color: ; margin:0;; padding }`)

	require.Len(t, rules, 1)
	require.Equal(t, []string{"margin"}, rules[0].Properties.Keys())
	require.Equal(t, "0", rules[0].Properties.Value("margin"))
}

func TestParseRepeatedPropertyLastValueWins(t *testing.T) {
	t.Parallel()

	rules := Parse(`.div-element-0 { color: red; width: 1px; color: blue; }`)

	require.Equal(t, []string{"color", "width"}, rules[0].Properties.Keys())
	require.Equal(t, "blue", rules[0].Properties.Value("color"))
}

func TestParseToleratesMalformedText(t *testing.T) {
	t.Parallel()

	css := `garbage { } .div-element-0 { color: red;
.span-element-2 { color: blue; }
body { margin: 0; }
#id-element-3 { color: green; }`

	rules := Parse(css)

	// The unclosed div block swallows text up to the next closing brace,
	// so only one rule is recovered.
	require.Len(t, rules, 1)
	require.Equal(t, "div", rules[0].Type)
}

func TestParseIgnoresUnrelatedSelectorsAndEmptyBlocks(t *testing.T) {
	t.Parallel()

	rules := Parse(`body { margin: 0; } .div-element-0 {} .card { color: red; }`)
	require.Empty(t, rules)
	require.Empty(t, Parse(""))
}

func TestParseDuplicateBlocksForSameType(t *testing.T) {
	t.Parallel()

	rules := Parse(`.div-element { color: red; } .div-element { color: blue; }`)

	require.Len(t, rules, 2)
	require.Equal(t, "red", rules[0].Properties.Value("color"))
	require.Equal(t, "blue", rules[1].Properties.Value("color"))
}

func TestParseOversizedIndex(t *testing.T) {
	t.Parallel()

	rules := Parse(`.div-element-99999999999999999999999 { color: red; }`)

	require.Len(t, rules, 1)
	require.True(t, rules[0].HasIndex)
	require.Equal(t, -1, rules[0].Index)
}
