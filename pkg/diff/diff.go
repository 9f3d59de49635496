package diff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	maxDiffLines    = 10000
	truncateMessage = "... (diff truncated, exceeds 10,000 lines) ..."
)

// Line is one line of a line-level diff.
type Line struct {
	Op   diffmatchpatch.Operation
	Text string
}

// Lines computes a line-level diff of before and after.
func Lines(before, after string) []Line {
	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var out []Line
	for _, d := range diffs {
		text := strings.TrimSuffix(d.Text, "\n")
		if text == "" && d.Text == "" {
			continue
		}
		for _, line := range strings.Split(text, "\n") {
			out = append(out, Line{Op: d.Type, Text: line})
		}
	}
	return out
}

// Stat counts inserted and deleted lines.
func Stat(before, after string) (added, removed int) {
	for _, l := range Lines(before, after) {
		switch l.Op {
		case diffmatchpatch.DiffInsert:
			added++
		case diffmatchpatch.DiffDelete:
			removed++
		}
	}
	return added, removed
}

// GenerateUnifiedDiff renders a single-hunk unified diff of before and
// after. It returns "" when the texts are identical and truncates output
// beyond 10,000 lines with a marker.
func GenerateUnifiedDiff(before, after, beforeLabel, afterLabel string) string {
	if before == after {
		return ""
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "--- %s\n", beforeLabel)
	fmt.Fprintf(&buf, "+++ %s\n", afterLabel)

	lines := Lines(before, after)
	var oldCount, newCount int
	for _, l := range lines {
		if l.Op != diffmatchpatch.DiffInsert {
			oldCount++
		}
		if l.Op != diffmatchpatch.DiffDelete {
			newCount++
		}
	}
	fmt.Fprintf(&buf, "@@ -1,%d +1,%d @@\n", oldCount, newCount)

	for _, l := range lines {
		switch l.Op {
		case diffmatchpatch.DiffEqual:
			buf.WriteString(" ")
		case diffmatchpatch.DiffDelete:
			buf.WriteString("-")
		case diffmatchpatch.DiffInsert:
			buf.WriteString("+")
		}
		buf.WriteString(l.Text)
		buf.WriteString("\n")
	}

	result := buf.String()
	split := strings.Split(result, "\n")
	if len(split) > maxDiffLines {
		return strings.Join(split[:maxDiffLines], "\n") + "\n" + truncateMessage + "\n"
	}
	return result
}
