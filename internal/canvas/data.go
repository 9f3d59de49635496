package canvas

import (
	"encoding/json"
	"slices"

	"github.com/alexisbeaulieu97/cssforge/internal/style"
)

// ElementData is the serializable form of an Element used by history
// snapshots, the project file and the clipboard:
//
//	{"type": "div", "styles": {...}, "pos": [x, y], "rect": [x, y, w, h], "text": ""}
type ElementData struct {
	Type   string     `json:"type"`
	Styles *style.Map `json:"styles"`
	Pos    [2]float64 `json:"pos"`
	Rect   [4]float64 `json:"rect"`
	Text   string     `json:"text"`
}

// Position returns the position encoded in the record.
func (d ElementData) Position() Point { return Point{X: d.Pos[0], Y: d.Pos[1]} }

// Size returns the size encoded in the record.
func (d ElementData) Size() Size { return Size{Width: d.Rect[2], Height: d.Rect[3]} }

// Equal compares two records field by field.
func (d ElementData) Equal(other ElementData) bool {
	return d.Type == other.Type &&
		d.Pos == other.Pos &&
		d.Rect == other.Rect &&
		d.Text == other.Text &&
		d.Styles.Equal(other.Styles)
}

// Clone returns a record with an independent style map.
func (d ElementData) Clone() ElementData {
	d.Styles = d.Styles.Clone()
	return d
}

// UnmarshalJSON accepts partial records. A missing pos falls back to the
// rect origin, then to the default position; a missing rect takes its size
// from the width/height declarations. The rect origin is always rewritten
// to pos, matching what Element.Data produces after a rebuild.
func (d *ElementData) UnmarshalJSON(data []byte) error {
	var aux struct {
		Type   *string     `json:"type"`
		Styles *style.Map  `json:"styles"`
		Pos    *[2]float64 `json:"pos"`
		Rect   *[4]float64 `json:"rect"`
		Text   string      `json:"text"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	out := ElementData{Type: "div", Styles: aux.Styles, Text: aux.Text}
	if aux.Type != nil && *aux.Type != "" {
		out.Type = *aux.Type
	}
	if out.Styles == nil {
		out.Styles = style.NewMap()
	}

	switch {
	case aux.Pos != nil:
		out.Pos = *aux.Pos
	case aux.Rect != nil:
		out.Pos = [2]float64{aux.Rect[0], aux.Rect[1]}
	default:
		out.Pos = [2]float64{DefaultX, DefaultY}
	}

	if aux.Rect != nil {
		out.Rect = *aux.Rect
	} else {
		out.Rect[2] = style.ParsePixels(out.Styles.Value("width"), DefaultWidth)
		out.Rect[3] = style.ParsePixels(out.Styles.Value("height"), DefaultHeight)
	}
	out.Rect[0], out.Rect[1] = out.Pos[0], out.Pos[1]

	*d = out
	return nil
}

// Snapshot is the full serializable state of a Store.
type Snapshot struct {
	Elements []ElementData `json:"elements"`
}

// Equal compares snapshots element by element.
func (s Snapshot) Equal(other Snapshot) bool {
	return slices.EqualFunc(s.Elements, other.Elements, ElementData.Equal)
}

// Clone returns a deep copy.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{Elements: make([]ElementData, len(s.Elements))}
	for i, d := range s.Elements {
		out.Elements[i] = d.Clone()
	}
	return out
}

// MarshalJSON always writes an elements array, never null.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	elements := s.Elements
	if elements == nil {
		elements = []ElementData{}
	}
	return json.Marshal(struct {
		Elements []ElementData `json:"elements"`
	}{Elements: elements})
}

// Data captures the element as a record.
func (e *Element) Data() ElementData {
	return ElementData{
		Type:   e.kind,
		Styles: e.styles.Clone(),
		Pos:    [2]float64{e.pos.X, e.pos.Y},
		Rect:   [4]float64{e.pos.X, e.pos.Y, e.size.Width, e.size.Height},
		Text:   e.text,
	}
}

// EncodeRecord renders the element as a clipboard record.
func EncodeRecord(e *Element) (string, error) {
	data, err := json.Marshal(e.Data())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeRecord parses clipboard text. It reports false for anything that
// is not a JSON object carrying a "type" key; such content is foreign and
// callers ignore it.
func DecodeRecord(text string) (ElementData, bool) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &probe); err != nil {
		return ElementData{}, false
	}
	if _, ok := probe["type"]; !ok {
		return ElementData{}, false
	}

	var d ElementData
	if err := json.Unmarshal([]byte(text), &d); err != nil {
		return ElementData{}, false
	}
	return d, true
}
