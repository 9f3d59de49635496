package diff

import (
	"strings"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/require"
)

func TestGenerateUnifiedDiffIdentical(t *testing.T) {
	t.Parallel()

	css := ".div-element {\n    color: red;\n}\n"
	require.Empty(t, GenerateUnifiedDiff(css, css, "before", "after"))
}

func TestGenerateUnifiedDiffSingleDeclaration(t *testing.T) {
	t.Parallel()

	before := ".div-element {\n    color: red;\n}\n"
	after := ".div-element {\n    color: blue;\n}\n"

	got := GenerateUnifiedDiff(before, after, "before.css", "after.css")

	want := "--- before.css\n" +
		"+++ after.css\n" +
		"@@ -1,3 +1,3 @@\n" +
		" .div-element {\n" +
		"-    color: red;\n" +
		"+    color: blue;\n" +
		" }\n"
	require.Equal(t, want, got)
}

func TestGenerateUnifiedDiffAddedRule(t *testing.T) {
	t.Parallel()

	before := "a {\n}\n"
	after := "a {\n}\nb {\n}\n"

	got := GenerateUnifiedDiff(before, after, "x", "y")
	require.Contains(t, got, "@@ -1,2 +1,4 @@")
	require.Contains(t, got, "+b {\n")
	require.NotContains(t, got, "\n-")
}

func TestStat(t *testing.T) {
	t.Parallel()

	added, removed := Stat("a\nb\nc\n", "a\nx\ny\nc\n")
	require.Equal(t, 2, added)
	require.Equal(t, 1, removed)
}

func TestLinesWithoutTrailingNewline(t *testing.T) {
	t.Parallel()

	lines := Lines("a", "b")
	require.Equal(t, []Line{
		{Op: diffmatchpatch.DiffDelete, Text: "a"},
		{Op: diffmatchpatch.DiffInsert, Text: "b"},
	}, lines)
}

func TestGenerateUnifiedDiffTruncates(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	for i := 0; i < maxDiffLines+10; i++ {
		b.WriteString("line\n")
	}

	got := GenerateUnifiedDiff("", b.String(), "empty", "big")
	require.True(t, strings.HasSuffix(got, truncateMessage+"\n"))
	require.Len(t, strings.Split(strings.TrimSuffix(got, "\n"), "\n"), maxDiffLines+1)
}
