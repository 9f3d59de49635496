// Package cssgen renders the element store as CSS text and converts that
// text to the SCSS, LESS and SASS export formats.
package cssgen

import (
	"strings"

	"github.com/alexisbeaulieu97/cssforge/internal/canvas"
	"github.com/alexisbeaulieu97/cssforge/internal/style"
)

const indent = "    "

// Generate emits one rule per element, in store order, selected by the
// element's indexed class. Declarations follow style insertion order;
// left/top come from the live position rather than the stored strings.
func Generate(elements []*canvas.Element) string {
	var b strings.Builder
	for i, e := range elements {
		writeRule(&b, e, i)
		b.WriteString("\n")
	}
	return b.String()
}

// Rule renders the single rule for e at index.
func Rule(e *canvas.Element, index int) string {
	var b strings.Builder
	writeRule(&b, e, index)
	return b.String()
}

func writeRule(b *strings.Builder, e *canvas.Element, index int) {
	pos := e.Position()
	b.WriteString(e.Selector(index))
	b.WriteString(" {\n")
	for name, value := range e.Styles().All() {
		switch name {
		case "left":
			value = style.FormatPixels(pos.X)
		case "top":
			value = style.FormatPixels(pos.Y)
		}
		b.WriteString(indent)
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString(";\n")
	}
	b.WriteString("}\n")
}
