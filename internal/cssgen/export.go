package cssgen

import (
	"strings"

	apperrors "github.com/alexisbeaulieu97/cssforge/pkg/errors"
)

// Format is an export target.
type Format string

const (
	FormatCSS  Format = "css"
	FormatSCSS Format = "scss"
	FormatLESS Format = "less"
	FormatSASS Format = "sass"
)

// Formats lists the supported export targets.
var Formats = []Format{FormatCSS, FormatSCSS, FormatLESS, FormatSASS}

// ParseFormat resolves a user supplied format name.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	switch f {
	case FormatCSS, FormatSCSS, FormatLESS, FormatSASS:
		return f, nil
	case "":
		return FormatCSS, nil
	}
	return "", apperrors.NewFormatError(name)
}

// Extension is the file extension including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// ContentType is the MIME type used when serving the format.
func (f Format) ContentType() string {
	if f == FormatCSS {
		return "text/css; charset=utf-8"
	}
	return "text/plain; charset=utf-8"
}

// Convert rewrites generated CSS into the target format.
func Convert(css string, f Format) (string, error) {
	switch f {
	case FormatCSS:
		return css, nil
	case FormatSCSS, FormatLESS:
		return reindent(css), nil
	case FormatSASS:
		return toSASS(css), nil
	}
	return "", apperrors.NewFormatError(string(f))
}

// reindent re-lays brace blocks with two-space nesting. It adds no real
// nesting: the generated rules are already flat.
func reindent(css string) string {
	lines := strings.Split(css, "\n")
	out := make([]string, 0, len(lines))
	depth := 0

	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		switch {
		case stripped == "":
			out = append(out, "")
		case strings.HasSuffix(stripped, "{"):
			selector := strings.TrimSpace(strings.TrimSuffix(stripped, "{"))
			out = append(out, pad(depth)+selector+" {")
			depth += 2
		case stripped == "}":
			depth = max(0, depth-2)
			out = append(out, pad(depth)+"}")
		default:
			out = append(out, pad(depth)+stripped)
		}
	}
	return strings.Join(out, "\n")
}

// toSASS produces the brace-less indented syntax with trailing semicolons
// removed. Blank lines are dropped.
func toSASS(css string) string {
	lines := strings.Split(css, "\n")
	out := make([]string, 0, len(lines))
	depth := 0

	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		switch {
		case stripped == "":
		case strings.HasSuffix(stripped, "{"):
			selector := strings.TrimSpace(strings.TrimSuffix(stripped, "{"))
			out = append(out, pad(depth)+selector)
			depth += 2
		case stripped == "}":
			depth = max(0, depth-2)
		default:
			name, value, ok := strings.Cut(stripped, ":")
			if !ok {
				continue
			}
			out = append(out, pad(depth)+strings.TrimSpace(name)+": "+strings.TrimRight(strings.TrimSpace(value), ";"))
		}
	}
	return strings.Join(out, "\n")
}

func pad(n int) string {
	return strings.Repeat(" ", n)
}
