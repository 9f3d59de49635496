// Package canvas holds the editable element model: positioned elements with
// their style maps, and the ordered store that gives each element its
// selector index.
package canvas

import (
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/cssforge/internal/style"
)

// Default geometry for elements created without explicit size.
const (
	DefaultX      = 50
	DefaultY      = 50
	DefaultWidth  = 200
	DefaultHeight = 100
)

// Point is a position in canvas pixel space.
type Point struct {
	X float64
	Y float64
}

// Size is an element's width and height in pixels.
type Size struct {
	Width  float64
	Height float64
}

// Element is one positioned visual node. Geometry and the left/top/width/
// height declarations are kept consistent by every geometry mutation.
type Element struct {
	id     uint64
	kind   string
	pos    Point
	size   Size
	styles *style.Map
	text   string
}

func newElement(id uint64, kind string, pos Point, size Size) *Element {
	e := &Element{id: id, kind: kind, pos: pos, size: size}
	e.styles = style.FromPairs(
		"width", style.FormatPixels(size.Width),
		"height", style.FormatPixels(size.Height),
		"background-color", "#e0e0e0",
		"border", "1px solid #ccc",
		"position", "absolute",
		"left", style.FormatPixels(pos.X),
		"top", style.FormatPixels(pos.Y),
	)
	return e
}

// ID is assigned at creation and never reused within a store.
func (e *Element) ID() uint64 { return e.id }

// Type is the element's tag name as given at creation.
func (e *Element) Type() string { return e.kind }

// Position returns the live canvas position.
func (e *Element) Position() Point { return e.pos }

// Size returns the live size.
func (e *Element) Size() Size { return e.size }

// Text returns the element's text content, possibly empty.
func (e *Element) Text() string { return e.text }

// Styles returns a copy of the element's declarations.
func (e *Element) Styles() *style.Map { return e.styles.Clone() }

// Style returns a single declaration.
func (e *Element) Style(name string) (string, bool) { return e.styles.Get(name) }

// ClassName is the generated class for the element at index in its store.
func (e *Element) ClassName(index int) string {
	return fmt.Sprintf("%s-element-%d", strings.ToLower(e.kind), index)
}

// Selector is ClassName prefixed with a dot.
func (e *Element) Selector(index int) string {
	return "." + e.ClassName(index)
}

// MatchesType compares a rule's type with the element's, ignoring case.
func (e *Element) MatchesType(kind string) bool {
	return strings.EqualFold(e.kind, kind)
}

// SetText replaces the text content.
func (e *Element) SetText(text string) { e.text = text }

// MoveTo sets the position and mirrors it into left/top.
func (e *Element) MoveTo(x, y float64) {
	e.pos = Point{X: x, Y: y}
	e.styles.Set("left", style.FormatPixels(x))
	e.styles.Set("top", style.FormatPixels(y))
}

// Resize sets the size and mirrors it into width/height.
func (e *Element) Resize(width, height float64) {
	e.size = Size{Width: width, Height: height}
	e.styles.Set("width", style.FormatPixels(width))
	e.styles.Set("height", style.FormatPixels(height))
}

// SetStyle stores a declaration. A px width or height also resizes the
// element; any other value is stored verbatim without touching geometry.
// left/top are stored as given: the live position is applied separately
// through MoveTo.
func (e *Element) SetStyle(name, value string) {
	e.styles.Set(name, value)

	if name != "width" && name != "height" {
		return
	}
	px, ok := style.Classify(value).Pixels()
	if !ok {
		return
	}
	if name == "width" {
		e.Resize(px, e.size.Height)
	} else {
		e.Resize(e.size.Width, px)
	}
}

// replaceStyles swaps in a full declaration set, as duplicate and paste do.
func (e *Element) replaceStyles(m *style.Map) {
	if m == nil {
		m = style.NewMap()
	}
	e.styles = m.Clone()
}
