// Package style holds an element's CSS declarations as an insertion-ordered
// property map, plus a typed view over individual declaration values.
package style

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"slices"
)

// Map is an ordered property -> value mapping. Keys are unique; setting an
// existing key replaces its value in place, so the original position is
// kept. The zero value is an empty map ready for use.
type Map struct {
	keys   []string
	values map[string]string
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{values: make(map[string]string)}
}

// FromPairs builds a Map from alternating property/value arguments.
func FromPairs(pairs ...string) *Map {
	m := NewMap()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i], pairs[i+1])
	}
	return m
}

// Set stores value under name, appending name if it is new.
func (m *Map) Set(name, value string) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, ok := m.values[name]; !ok {
		m.keys = append(m.keys, name)
	}
	m.values[name] = value
}

// Get returns the value for name and whether it is present.
func (m *Map) Get(name string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m.values[name]
	return v, ok
}

// Value returns the value for name or "" when absent.
func (m *Map) Value(name string) string {
	v, _ := m.Get(name)
	return v
}

// Has reports whether name is present.
func (m *Map) Has(name string) bool {
	_, ok := m.Get(name)
	return ok
}

// Delete removes name, preserving the order of the remaining keys.
func (m *Map) Delete(name string) {
	if m == nil {
		return
	}
	if _, ok := m.values[name]; !ok {
		return
	}
	delete(m.values, name)
	if i := slices.Index(m.keys, name); i >= 0 {
		m.keys = slices.Delete(m.keys, i, i+1)
	}
}

// Len returns the number of declarations.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the property names in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

// All iterates declarations in insertion order.
func (m *Map) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// Clone returns an independent copy.
func (m *Map) Clone() *Map {
	out := NewMap()
	if m == nil {
		return out
	}
	out.keys = slices.Clone(m.keys)
	for k, v := range m.values {
		out.values[k] = v
	}
	return out
}

// Equal reports whether both maps hold the same declarations in the same
// order. Order matters because it determines generated CSS line order.
func (m *Map) Equal(other *Map) bool {
	if m.Len() != other.Len() {
		return false
	}
	for i, k := range m.Keys() {
		if other.keys[i] != k || other.values[k] != m.values[k] {
			return false
		}
	}
	return true
}

// MarshalJSON writes the map as a JSON object in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object keeping the key order found in the
// document. Numeric and boolean values are kept as their literal text;
// null values are skipped.
func (m *Map) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*m = Map{values: make(map[string]string)}
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("style map: expected object, got %v", tok)
	}

	out := Map{values: make(map[string]string)}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("style map: unexpected key %v", keyTok)
		}

		valTok, err := dec.Token()
		if err != nil {
			return err
		}
		switch v := valTok.(type) {
		case string:
			out.Set(key, v)
		case json.Number:
			out.Set(key, v.String())
		case bool:
			out.Set(key, fmt.Sprint(v))
		case nil:
		default:
			return fmt.Errorf("style map: property %q must be a scalar", key)
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*m = out
	return nil
}
