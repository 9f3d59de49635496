// Package history keeps the linear undo/redo log of canvas snapshots.
// Entries are stored either as full snapshots or as diffs against an
// earlier entry, whichever is smaller.
package history

import (
	"slices"

	"github.com/alexisbeaulieu97/cssforge/internal/canvas"
	"github.com/alexisbeaulieu97/cssforge/internal/logger"
	apperrors "github.com/alexisbeaulieu97/cssforge/pkg/errors"
)

// DefaultCapacity bounds the number of retained entries.
const DefaultCapacity = 100

// Manager owns the history entries and the current index.
type Manager struct {
	entries  []Entry
	index    int
	capacity int
	log      *logger.Logger
}

// NewManager creates an empty history. A capacity below 2 falls back to
// DefaultCapacity.
func NewManager(capacity int, log *logger.Logger) *Manager {
	if capacity < 2 {
		capacity = DefaultCapacity
	}
	return &Manager{index: -1, capacity: capacity, log: log.Component("history")}
}

// Capacity returns the retention bound.
func (m *Manager) Capacity() int { return m.capacity }

// Len returns the number of retained entries.
func (m *Manager) Len() int { return len(m.entries) }

// Index returns the current entry index, -1 when empty.
func (m *Manager) Index() int { return m.index }

// CanUndo reports whether an earlier entry exists.
func (m *Manager) CanUndo() bool { return m.index > 0 }

// CanRedo reports whether a later entry exists.
func (m *Manager) CanRedo() bool { return m.index >= 0 && m.index < len(m.entries)-1 }

// Entries returns a copy of the retained entries.
func (m *Manager) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	for i, e := range m.entries {
		out[i] = cloneEntry(e)
	}
	return out
}

// Reset drops every entry.
func (m *Manager) Reset() {
	m.entries = nil
	m.index = -1
}

// Load replaces the history with entries positioned at index. An index
// outside the retained range selects the last entry.
func (m *Manager) Load(entries []Entry, index int) {
	m.entries = make([]Entry, len(entries))
	for i, e := range entries {
		m.entries[i] = cloneEntry(e)
	}
	if index < 0 || index >= len(m.entries) {
		index = len(m.entries) - 1
	}
	m.index = index
	m.trim()
}

// Record appends snap as a new entry after discarding redo-able entries.
// It reports false when snap equals the current entry.
func (m *Manager) Record(snap canvas.Snapshot) bool {
	entry := Full(snap)

	if m.index >= 0 {
		last, err := m.Resolve(m.index)
		switch {
		case err != nil:
			m.log.Warn("current history entry unresolvable; storing full snapshot",
				"index", m.index, "error", err.Error())
		case last.Equal(snap):
			return false
		default:
			if changes := Diff(last, snap); len(changes) > 0 && len(changes) < len(snap.Elements) {
				entry = DiffEntry(m.index, changes)
			}
		}
	}

	m.entries = append(m.entries[:m.index+1], entry)
	m.index = len(m.entries) - 1
	m.trim()

	m.log.Debug("history recorded",
		"index", m.index,
		"kind", string(entry.Kind),
		"changes", len(entry.Changes),
		"elements", len(snap.Elements),
	)
	return true
}

// trim drops the oldest entries beyond capacity. Any retained diff whose
// base falls out of the window is resolved first and stored in full, and
// the remaining base indices are shifted to the new numbering.
func (m *Manager) trim() {
	drop := len(m.entries) - m.capacity
	if drop <= 0 {
		return
	}

	retained := m.entries[drop:]
	rebased := make([]Entry, len(retained))
	for i, e := range retained {
		if e.Kind == KindDiff && e.Base >= drop && e.Base < drop+i {
			e.Base -= drop
			rebased[i] = e
			continue
		}
		if e.Kind == KindFull {
			rebased[i] = e
			continue
		}
		snap, err := m.Resolve(drop + i)
		if err != nil {
			m.log.Warn("dropping base of unresolvable history entry",
				"index", drop+i, "error", err.Error())
			e.Base = -1
			rebased[i] = e
			continue
		}
		rebased[i] = Full(snap)
	}

	m.entries = rebased
	m.index = max(m.index-drop, 0)
	m.log.Debug("history trimmed", "dropped", drop, "retained", len(m.entries))
}

// Resolve reconstructs the full snapshot stored at index by replaying diff
// entries onto their nearest full base. A diff base must precede the entry
// that references it.
func (m *Manager) Resolve(index int) (canvas.Snapshot, error) {
	if index < 0 || index >= len(m.entries) {
		return canvas.Snapshot{}, apperrors.NewHistoryError(index, -1, "entry out of range")
	}

	var chain []int
	for cur := index; ; {
		e := m.entries[cur]
		if e.Kind == KindFull {
			snap := e.Snapshot.Clone()
			for _, i := range slices.Backward(chain) {
				snap = Apply(snap, m.entries[i].Changes)
			}
			return snap, nil
		}
		if e.Base < 0 || e.Base >= cur {
			return canvas.Snapshot{}, apperrors.NewHistoryError(cur, e.Base, "diff base is not a retained earlier entry")
		}
		chain = append(chain, cur)
		cur = e.Base
	}
}

// Current resolves the entry at the current index.
func (m *Manager) Current() (canvas.Snapshot, error) {
	return m.Resolve(m.index)
}

// Undo steps back one entry and returns its snapshot. ok is false when
// there is nothing to undo. When the earlier entry cannot be resolved the
// index is left unchanged and the error is returned.
func (m *Manager) Undo() (snap canvas.Snapshot, ok bool, err error) {
	if m.index <= 0 {
		return canvas.Snapshot{}, false, nil
	}
	return m.step(m.index - 1)
}

// Redo steps forward one entry and returns its snapshot.
func (m *Manager) Redo() (snap canvas.Snapshot, ok bool, err error) {
	if !m.CanRedo() {
		return canvas.Snapshot{}, false, nil
	}
	return m.step(m.index + 1)
}

func (m *Manager) step(target int) (canvas.Snapshot, bool, error) {
	snap, err := m.Resolve(target)
	if err != nil {
		m.log.Error(err, "history step failed", "from", m.index, "to", target)
		return canvas.Snapshot{}, false, err
	}
	m.index = target
	return snap, true, nil
}

func cloneEntry(e Entry) Entry {
	out := Entry{Kind: e.Kind, Base: e.Base, Snapshot: e.Snapshot.Clone()}
	if e.Changes != nil {
		out.Changes = make([]Change, len(e.Changes))
		for i, c := range e.Changes {
			if c.Element != nil {
				el := c.Element.Clone()
				c.Element = &el
			}
			out.Changes[i] = c
		}
	}
	return out
}
