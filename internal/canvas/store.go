package canvas

import (
	"slices"
)

// Store is the ordered element sequence. Order is the index namespace for
// generated selectors: removing an element shifts the selector of every
// element after it.
type Store struct {
	elements []*Element
	nextID   uint64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

func (s *Store) allocID() uint64 {
	s.nextID++
	return s.nextID
}

// Add appends a new element of the given type and geometry.
func (s *Store) Add(kind string, x, y, width, height float64) *Element {
	e := newElement(s.allocID(), kind, Point{X: x, Y: y}, Size{Width: width, Height: height})
	s.elements = append(s.elements, e)
	return e
}

// AddData appends an element rebuilt from a record: geometry from pos and
// rect, declarations copied verbatim.
func (s *Store) AddData(d ElementData) *Element {
	kind := d.Type
	if kind == "" {
		kind = "div"
	}
	e := newElement(s.allocID(), kind, d.Position(), d.Size())
	e.replaceStyles(d.Styles)
	e.text = d.Text
	s.elements = append(s.elements, e)
	return e
}

// Len returns the number of elements.
func (s *Store) Len() int { return len(s.elements) }

// At returns the element at index, or nil when out of range.
func (s *Store) At(index int) *Element {
	if index < 0 || index >= len(s.elements) {
		return nil
	}
	return s.elements[index]
}

// Elements returns the elements in store order. The slice is a copy; the
// elements are shared.
func (s *Store) Elements() []*Element {
	return slices.Clone(s.elements)
}

// IndexOf returns the current index of e, or -1.
func (s *Store) IndexOf(e *Element) int {
	return slices.Index(s.elements, e)
}

// ByID finds an element by its stable id.
func (s *Store) ByID(id uint64) *Element {
	for _, e := range s.elements {
		if e.id == id {
			return e
		}
	}
	return nil
}

// Remove deletes e from the store and reports whether it was present.
func (s *Store) Remove(e *Element) bool {
	i := s.IndexOf(e)
	if i < 0 {
		return false
	}
	s.elements = slices.Delete(s.elements, i, i+1)
	return true
}

// Duplicate appends a copy of e offset by (dx, dy), carrying its
// declarations and text.
func (s *Store) Duplicate(e *Element, dx, dy float64) *Element {
	d := e.Data()
	d.Pos = [2]float64{e.pos.X + dx, e.pos.Y + dy}
	d.Rect[0], d.Rect[1] = d.Pos[0], d.Pos[1]
	dup := s.AddData(d)
	dup.MoveTo(d.Pos[0], d.Pos[1])
	return dup
}

// Clear removes every element. Ids keep increasing afterwards.
func (s *Store) Clear() {
	s.elements = nil
}

// Snapshot captures the store's serializable state.
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{Elements: make([]ElementData, len(s.elements))}
	for i, e := range s.elements {
		snap.Elements[i] = e.Data()
	}
	return snap
}

// Restore tears the store down and rebuilds it from snap. Rebuilt elements
// receive fresh ids.
func (s *Store) Restore(snap Snapshot) {
	s.Clear()
	for _, d := range snap.Elements {
		s.AddData(d)
	}
}
