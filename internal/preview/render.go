// Package preview renders the element store as a standalone HTML document.
package preview

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/alexisbeaulieu97/cssforge/internal/canvas"
	"github.com/alexisbeaulieu97/cssforge/internal/cssgen"
	"github.com/alexisbeaulieu97/cssforge/internal/style"
)

// DefaultBackground is the preview body color.
const DefaultBackground = "#000000"

// ImagePlaceholder is used as the src of image elements without text.
const ImagePlaceholder = "https://via.placeholder.com/200x100"

var (
	blockTypes = map[string]bool{
		"div": true, "section": true, "p": true, "card": true,
		"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	}
	forcedProps = map[string]bool{
		"position": true, "left": true, "top": true, "width": true, "height": true,
	}
	styleBlock = regexp.MustCompile(`(?s)<style>.*?</style>`)
)

// Renderer builds preview documents.
type Renderer struct {
	Background string
}

// NewRenderer returns a renderer painting the body with background, or
// DefaultBackground when empty.
func NewRenderer(background string) *Renderer {
	if background == "" {
		background = DefaultBackground
	}
	return &Renderer{Background: background}
}

// Render returns the preview for elements. When document is non-empty the
// generated CSS is spliced into it instead of rendering the element body.
func (r *Renderer) Render(elements []*canvas.Element, document string) string {
	if strings.TrimSpace(document) != "" {
		return Splice(document, cssgen.Generate(elements))
	}
	return r.Document(elements)
}

// Document wraps Body in the preview page.
func (r *Renderer) Document(elements []*canvas.Element) string {
	bg := r.Background
	if bg == "" {
		bg = DefaultBackground
	}
	return fmt.Sprintf(documentTemplate, bg, Body(elements))
}

// Splice places css into document: it replaces every <style> block,
// otherwise inserts a block before </head>, otherwise prepends a head.
func Splice(document, css string) string {
	block := "<style>\n" + css + "\n</style>"
	switch {
	case strings.Contains(document, "<style>"):
		return styleBlock.ReplaceAllLiteralString(document, block)
	case strings.Contains(document, "<head>"):
		return strings.ReplaceAll(document, "</head>", block+"\n</head>")
	default:
		return "<head>" + block + "</head>\n" + document
	}
}

// Body renders one tag per element in store order.
func Body(elements []*canvas.Element) string {
	var b strings.Builder
	for i, e := range elements {
		writeElement(&b, e, i)
	}
	return b.String()
}

// InlineStyle composes the style attribute for e: its declarations with
// the live position substituted, an absolute position forced, block
// display added for block-level types and the geometry properties marked
// !important.
func InlineStyle(e *canvas.Element) string {
	styles := e.Styles()
	pos := e.Position()
	styles.Set("left", style.FormatPixels(pos.X))
	styles.Set("top", style.FormatPixels(pos.Y))
	if p, ok := styles.Get("position"); !ok || p == "static" {
		styles.Set("position", "absolute")
	}
	if blockTypes[strings.ToLower(e.Type())] && !styles.Has("display") {
		styles.Set("display", "block")
	}

	decls := make([]string, 0, styles.Len())
	for name, value := range styles.All() {
		if forcedProps[name] {
			value += " !important"
		}
		decls = append(decls, name+": "+value)
	}
	return strings.Join(decls, "; ")
}

func writeElement(b *strings.Builder, e *canvas.Element, index int) {
	kind := strings.ToLower(e.Type())
	attr := html.EscapeString(InlineStyle(e))
	text := e.Text()
	content := func(placeholder string) string {
		if text == "" {
			return html.EscapeString(placeholder)
		}
		return html.EscapeString(text)
	}

	switch kind {
	case "button":
		fmt.Fprintf(b, "<button style=\"%s\">%s</button>\n", attr, content("Button"))
	case "input":
		inputType := e.Styles().Value("type")
		if inputType == "" {
			inputType = "text"
		}
		fmt.Fprintf(b, "<input type=\"%s\" style=\"%s\" placeholder=\"%s\">\n",
			html.EscapeString(inputType), attr, html.EscapeString(text))
	case "card":
		fmt.Fprintf(b, cardTemplate, attr, content("Card Content"))
	case "h1", "h2", "h3", "h4", "h5", "h6":
		fmt.Fprintf(b, "<%s style=\"%s\">%s</%s>\n", kind, attr, content(strings.ToUpper(kind)), kind)
	case "p":
		fmt.Fprintf(b, "<p style=\"%s\">%s</p>\n", attr, content("Paragraph text"))
	case "span":
		fmt.Fprintf(b, "<span style=\"%s\">%s</span>\n", attr, content("Span text"))
	case "img":
		fmt.Fprintf(b, "<img src=\"%s\" alt=\"Image\" style=\"%s\">\n", content(ImagePlaceholder), attr)
	case "a":
		fmt.Fprintf(b, "<a href=\"#\" style=\"%s\">%s</a>\n", attr, content("Link"))
	default:
		fmt.Fprintf(b, "<div style=\"%s\">%s</div>\n", attr, content(fmt.Sprintf("Element %d", index+1)))
	}
}

const cardTemplate = `<div style="%s">
    <div class="card-header">Card Header</div>
    <div class="card-body">%s</div>
    <div class="card-footer">Card Footer</div>
</div>
`

const documentTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        * {
            box-sizing: border-box;
        }
        body {
            margin: 0;
            padding: 20px;
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
            position: relative;
            min-height: 100vh;
            background-color: %s;
            color: #ffffff;
        }
        .card-header {
            padding: 10px 15px;
            background-color: #f8f9fa;
            border-bottom: 1px solid #dee2e6;
            font-weight: bold;
        }
        .card-body {
            padding: 15px;
        }
        .card-footer {
            padding: 10px 15px;
            background-color: #f8f9fa;
            border-top: 1px solid #dee2e6;
            font-size: 0.9em;
            color: #6c757d;
        }
    </style>
</head>
<body>
%s</body>
</html>
`
