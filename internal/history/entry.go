package history

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/alexisbeaulieu97/cssforge/internal/canvas"
)

// Kind tags a history entry.
type Kind string

const (
	KindFull Kind = "full"
	KindDiff Kind = "diff"
)

// Action is a single structural edit inside a diff entry.
type Action string

const (
	ActionAdd    Action = "add"
	ActionRemove Action = "remove"
	ActionModify Action = "modify"
)

// Change edits one index of a snapshot's element list.
type Change struct {
	Action  Action              `json:"action"`
	Index   int                 `json:"index"`
	Element *canvas.ElementData `json:"element,omitempty"`
}

// Entry is either a full snapshot or a list of changes against the entry
// at Base.
type Entry struct {
	Kind     Kind
	Snapshot canvas.Snapshot
	Changes  []Change
	Base     int
}

// Full builds a full entry owning a copy of snap.
func Full(snap canvas.Snapshot) Entry {
	return Entry{Kind: KindFull, Snapshot: snap.Clone(), Base: -1}
}

// DiffEntry builds a diff entry against base.
func DiffEntry(base int, changes []Change) Entry {
	return Entry{Kind: KindDiff, Changes: changes, Base: base}
}

type diffData struct {
	Changes []Change `json:"changes"`
}

type wireEntry struct {
	Type      Kind            `json:"type"`
	Data      json.RawMessage `json:"data"`
	BaseIndex *int            `json:"base_index,omitempty"`
}

// MarshalJSON writes {"type": "full", "data": snapshot} or
// {"type": "diff", "data": {"changes": [...]}, "base_index": n}.
func (e Entry) MarshalJSON() ([]byte, error) {
	var (
		w   = wireEntry{Type: e.Kind}
		err error
	)
	switch e.Kind {
	case KindFull:
		w.Data, err = json.Marshal(e.Snapshot)
	case KindDiff:
		changes := e.Changes
		if changes == nil {
			changes = []Change{}
		}
		w.Data, err = json.Marshal(diffData{Changes: changes})
		base := e.Base
		w.BaseIndex = &base
	default:
		return nil, fmt.Errorf("unknown history entry type %q", e.Kind)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// UnmarshalJSON accepts tagged entries and legacy files that stored the
// raw state object ({"elements": [...]}) directly; the latter load as full
// entries.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	rawType, tagged := probe["type"]
	if !tagged {
		var snap canvas.Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return err
		}
		*e = Entry{Kind: KindFull, Snapshot: snap, Base: -1}
		return nil
	}

	var kind Kind
	if err := json.Unmarshal(rawType, &kind); err != nil {
		return err
	}

	payload := probe["data"]
	if len(bytes.TrimSpace(payload)) == 0 || bytes.Equal(bytes.TrimSpace(payload), []byte("null")) {
		payload = []byte("{}")
	}

	switch kind {
	case KindFull:
		var snap canvas.Snapshot
		if err := json.Unmarshal(payload, &snap); err != nil {
			return err
		}
		*e = Entry{Kind: KindFull, Snapshot: snap, Base: -1}
	case KindDiff:
		var d diffData
		if err := json.Unmarshal(payload, &d); err != nil {
			return err
		}
		base := -1
		if raw, ok := probe["base_index"]; ok {
			if err := json.Unmarshal(raw, &base); err != nil {
				return err
			}
		}
		*e = Entry{Kind: KindDiff, Changes: d.Changes, Base: base}
	default:
		return fmt.Errorf("unknown history entry type %q", kind)
	}
	return nil
}

// Diff computes the index-wise edits turning old into next. Modifications
// and additions are listed in ascending index order; removals are listed
// from the highest index down so they can be applied in sequence.
func Diff(old, next canvas.Snapshot) []Change {
	var changes []Change
	shared := min(len(old.Elements), len(next.Elements))

	for i := range shared {
		if old.Elements[i].Equal(next.Elements[i]) {
			continue
		}
		el := next.Elements[i].Clone()
		changes = append(changes, Change{Action: ActionModify, Index: i, Element: &el})
	}
	for i := shared; i < len(next.Elements); i++ {
		el := next.Elements[i].Clone()
		changes = append(changes, Change{Action: ActionAdd, Index: i, Element: &el})
	}
	for i := len(old.Elements) - 1; i >= shared; i-- {
		changes = append(changes, Change{Action: ActionRemove, Index: i})
	}
	return changes
}

// Apply replays changes onto a copy of base. Out-of-range removals and
// modifications are skipped and out-of-range additions append, matching
// how older project files were written.
func Apply(base canvas.Snapshot, changes []Change) canvas.Snapshot {
	out := base.Clone()
	elements := out.Elements

	for _, c := range changes {
		switch c.Action {
		case ActionAdd:
			el := elementOf(c)
			idx := min(max(c.Index, 0), len(elements))
			elements = append(elements, canvas.ElementData{})
			copy(elements[idx+1:], elements[idx:])
			elements[idx] = el
		case ActionRemove:
			if c.Index >= 0 && c.Index < len(elements) {
				elements = append(elements[:c.Index], elements[c.Index+1:]...)
			}
		case ActionModify:
			if c.Index >= 0 && c.Index < len(elements) {
				elements[c.Index] = elementOf(c)
			}
		}
	}

	out.Elements = elements
	return out
}

func elementOf(c Change) canvas.ElementData {
	if c.Element == nil {
		var d canvas.ElementData
		_ = json.Unmarshal([]byte(`{}`), &d)
		return d
	}
	return c.Element.Clone()
}
