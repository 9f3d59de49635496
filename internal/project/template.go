package project

import (
	"slices"

	"github.com/gosimple/slug"

	"github.com/alexisbeaulieu97/cssforge/internal/canvas"
	"github.com/alexisbeaulieu97/cssforge/internal/style"
)

// Template is a named, reusable copy of one element's type, styles,
// geometry and text.
type Template struct {
	Name        string     `json:"name"`
	ElementType string     `json:"element_type"`
	Styles      *style.Map `json:"styles"`
	Width       float64    `json:"width"`
	Height      float64    `json:"height"`
	Text        string     `json:"text"`
}

// FromElement captures e as a template called name.
func FromElement(name string, e *canvas.Element) Template {
	size := e.Size()
	return Template{
		Name:        name,
		ElementType: e.Type(),
		Styles:      e.Styles(),
		Width:       size.Width,
		Height:      size.Height,
		Text:        e.Text(),
	}
}

// Key is the slug used to look the template up by name.
func (t Template) Key() string {
	return slug.Make(t.Name)
}

// Apply appends a new element built from t at the default position.
func (t Template) Apply(store *canvas.Store) *canvas.Element {
	kind := t.ElementType
	if kind == "" {
		kind = "div"
	}
	width, height := t.Width, t.Height
	if width <= 0 {
		width = canvas.DefaultWidth
	}
	if height <= 0 {
		height = canvas.DefaultHeight
	}

	e := store.Add(kind, canvas.DefaultX, canvas.DefaultY, width, height)
	for name, value := range t.Styles.All() {
		e.SetStyle(name, value)
	}
	e.SetText(t.Text)
	return e
}

var presets = map[string]Template{
	"button": {
		Name:        "Button",
		ElementType: "button",
		Styles: style.FromPairs(
			"background-color", "#007bff",
			"color", "#ffffff",
			"padding", "10px 20px",
			"border", "none",
			"border-radius", "4px",
			"font-size", "16px",
			"font-weight", "bold",
			"cursor", "pointer",
			"width", "120px",
			"height", "40px",
		),
		Width:  120,
		Height: 40,
		Text:   "Button",
	},
	"card": {
		Name:        "Card",
		ElementType: "div",
		Styles: style.FromPairs(
			"background-color", "#ffffff",
			"border", "1px solid #e0e0e0",
			"border-radius", "8px",
			"padding", "20px",
			"box-shadow", "0 2px 4px rgba(0,0,0,0.1)",
			"width", "300px",
			"height", "200px",
		),
		Width:  300,
		Height: 200,
		Text:   "Card Content",
	},
	"form": {
		Name:        "Form",
		ElementType: "form",
		Styles: style.FromPairs(
			"background-color", "#f8f9fa",
			"border", "1px solid #dee2e6",
			"border-radius", "4px",
			"padding", "20px",
			"width", "400px",
			"height", "300px",
		),
		Width:  400,
		Height: 300,
		Text:   "Form",
	},
}

// Preset returns a built-in template by key (button, card or form).
func Preset(key string) (Template, bool) {
	t, ok := presets[slug.Make(key)]
	if !ok {
		return Template{}, false
	}
	t.Styles = t.Styles.Clone()
	return t, true
}

// PresetKeys lists the built-in template keys in sorted order.
func PresetKeys() []string {
	keys := make([]string, 0, len(presets))
	for k := range presets {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
