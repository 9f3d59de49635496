package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles Bubbletea messages and updates model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil
	case tickMsg:
		m.session.Tick(time.Time(msg))
		if m.mode != ModeCSS {
			m.refreshCode()
		}
		return m, tick()
	case tea.KeyMsg:
		switch m.mode {
		case ModePrompt:
			return m.updatePrompt(msg)
		case ModeCSS:
			return m.updateCSS(msg)
		}
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	switch m.mode {
	case ModePrompt:
		m.input, cmd = m.input.Update(msg)
	case ModeCSS:
		m.editor, cmd = m.editor.Update(msg)
	default:
		m.code, cmd = m.code.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sess := m.session
	step := float64(max(sess.GridSize(), 1))

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		m.cycle(1)
	case key.Matches(msg, m.keys.Prev):
		m.cycle(-1)

	case key.Matches(msg, m.keys.Left):
		m.nudge(-step, 0)
	case key.Matches(msg, m.keys.Right):
		m.nudge(step, 0)
	case key.Matches(msg, m.keys.Up):
		m.nudge(0, -step)
	case key.Matches(msg, m.keys.Down):
		m.nudge(0, step)

	case key.Matches(msg, m.keys.Wider):
		m.grow(step, 0)
	case key.Matches(msg, m.keys.Narrower):
		m.grow(-step, 0)
	case key.Matches(msg, m.keys.Taller):
		m.grow(0, step)
	case key.Matches(msg, m.keys.Shorter):
		m.grow(0, -step)

	case key.Matches(msg, m.keys.Add):
		return m.openPrompt(promptAdd, "div")
	case key.Matches(msg, m.keys.Delete):
		if !sess.Delete() {
			m.setStatus("No element selected")
		}
	case key.Matches(msg, m.keys.Duplicate):
		if sess.Duplicate() == nil {
			m.setStatus("No element selected")
		}
	case key.Matches(msg, m.keys.Copy):
		if sess.Selected() == nil {
			m.setStatus("No element selected")
		} else if err := sess.Copy(); err != nil {
			m.setStatus("Copy failed: " + err.Error())
		}
	case key.Matches(msg, m.keys.Paste):
		ok, err := sess.Paste()
		switch {
		case err != nil:
			m.setStatus("Paste failed: " + err.Error())
		case !ok:
			m.setStatus("Clipboard does not hold an element")
		}

	case key.Matches(msg, m.keys.Style):
		if sess.Selected() == nil {
			m.setStatus("No element selected")
			break
		}
		return m.openPrompt(promptStyle, "")
	case key.Matches(msg, m.keys.Text):
		sel := sess.Selected()
		if sel == nil {
			m.setStatus("No element selected")
			break
		}
		return m.openPrompt(promptText, sel.Text())
	case key.Matches(msg, m.keys.EditCSS):
		m.mode = ModeCSS
		m.editor.SetValue(sess.CSS())
		return m, m.editor.Focus()

	case key.Matches(msg, m.keys.Undo):
		if _, err := sess.Undo(); err != nil {
			m.setStatus("Undo failed: " + err.Error())
		}
	case key.Matches(msg, m.keys.Redo):
		if _, err := sess.Redo(); err != nil {
			m.setStatus("Redo failed: " + err.Error())
		}
	case key.Matches(msg, m.keys.Snap):
		sess.SetSnapToGrid(!sess.SnapToGrid())

	case key.Matches(msg, m.keys.Template):
		if sess.Selected() == nil {
			m.setStatus("No element selected")
			break
		}
		return m.openPrompt(promptSaveTemplate, "")
	case key.Matches(msg, m.keys.Apply):
		return m.openPrompt(promptApplyTemplate, "")
	case key.Matches(msg, m.keys.CopyCSS):
		if err := sess.CopyCSS(); err != nil {
			m.setStatus("Copy failed: " + err.Error())
		}
	case key.Matches(msg, m.keys.Save):
		m.saveProject()

	default:
		return m, nil
	}

	m.refreshCode()
	return m, nil
}

func (m Model) openPrompt(kind promptKind, initial string) (tea.Model, tea.Cmd) {
	m.mode = ModePrompt
	m.prompt = kind
	m.input.Prompt = promptLabels[kind]
	m.input.SetValue(initial)
	m.input.CursorEnd()
	m.layout()
	return m, m.input.Focus()
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closePrompt()
		return m, nil
	case tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		m.closePrompt()
		m.submitPrompt(value)
		m.refreshCode()
		return m, nil
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) closePrompt() {
	m.mode = ModeNormal
	m.input.Blur()
	m.input.Reset()
}

func (m *Model) submitPrompt(value string) {
	sess := m.session
	switch m.prompt {
	case promptAdd:
		sess.AddElement(value)
	case promptStyle:
		name, val, ok := strings.Cut(value, ":")
		name, val = strings.TrimSpace(name), strings.TrimSpace(strings.TrimSuffix(val, ";"))
		if !ok || name == "" {
			m.setStatus("Expected property: value")
			return
		}
		sess.SetStyle(name, val)
	case promptText:
		sess.SetText(value)
	case promptSaveTemplate:
		if value == "" || !sess.SaveTemplate(value) {
			m.setStatus("Template not saved")
		}
	case promptApplyTemplate:
		if _, ok := sess.ApplyTemplate(value); ok {
			return
		}
		if _, ok := sess.ApplyPreset(value); !ok {
			m.setStatus(fmt.Sprintf("Unknown template: %s", value))
		}
	}
}

func (m Model) updateCSS(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeNormal
		m.editor.Blur()
		m.setStatus("CSS edit discarded")
		return m, nil
	case tea.KeyCtrlS:
		m.mode = ModeNormal
		m.editor.Blur()
		res, ran := m.session.EditCSS(m.editor.Value())
		if !ran {
			m.setStatus("CSS is being regenerated, try again")
		} else {
			m.setStatus(fmt.Sprintf("CSS applied: %d created, %d updated, %d moved", res.Created, res.Updated, res.Moved))
		}
		m.refreshCode()
		return m, nil
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m *Model) cycle(delta int) {
	n := m.session.Store().Len()
	if n == 0 {
		return
	}
	idx := m.session.SelectedIndex()
	switch {
	case idx < 0 && delta > 0:
		idx = 0
	case idx < 0:
		idx = n - 1
	default:
		idx = ((idx+delta)%n + n) % n
	}
	m.session.Select(idx)
}

func (m *Model) nudge(dx, dy float64) {
	sel := m.session.Selected()
	if sel == nil {
		m.setStatus("No element selected")
		return
	}
	pos := sel.Position()
	m.session.Move(pos.X+dx, pos.Y+dy, false)
}

func (m *Model) grow(dw, dh float64) {
	sel := m.session.Selected()
	if sel == nil {
		m.setStatus("No element selected")
		return
	}
	size := sel.Size()
	m.session.Resize(max(size.Width+dw, 1), max(size.Height+dh, 1))
}

func (m *Model) saveProject() {
	if m.save == nil {
		m.setStatus("Saving is not available")
		return
	}
	if err := m.save(m.session.Project()); err != nil {
		m.setStatus("Save failed: " + err.Error())
		return
	}
	m.setStatus("Project saved")
}

func (m *Model) setStatus(text string) {
	m.status.text = text
}
