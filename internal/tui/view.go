package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/alexisbeaulieu97/cssforge/internal/canvas"
	"github.com/alexisbeaulieu97/cssforge/internal/style"
)

// View renders the current state of the model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.header()}

	list := panelStyle.Width(m.listWidth()).Render(m.elementList())
	var code string
	if m.mode == ModeCSS {
		code = activePanelStyle.Render(m.editor.View())
	} else {
		code = panelStyle.Render(m.code.View())
	}
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, list, code))

	if m.mode == ModePrompt {
		sections = append(sections, m.input.View())
	}
	if text := m.status.text; text != "" {
		sections = append(sections, statusStyle.Render(text))
	}

	if m.mode == ModeCSS {
		sections = append(sections, mutedStyle.Render("ctrl+s apply • esc discard"))
	} else {
		sections = append(sections, m.help.View(m.keys))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) header() string {
	hist := m.session.History()
	parts := []string{
		titleStyle.Render(fmt.Sprintf("cssforge • %s", m.title)),
		mutedStyle.Render(fmt.Sprintf("history %d/%d", hist.Index()+1, hist.Len())),
	}
	if m.session.SnapToGrid() {
		parts = append(parts, snapStyle.Render(fmt.Sprintf("snap %dpx", m.session.GridSize())))
	}
	return strings.Join(parts, "  ")
}

func (m Model) elementList() string {
	elements := m.session.Store().Elements()
	lines := []string{sectionStyle.Render("Elements")}
	if len(elements) == 0 {
		lines = append(lines, mutedStyle.Render("No elements. Press a to add one."))
		return strings.Join(lines, "\n")
	}

	selected := m.session.SelectedIndex()
	width := uint(max(m.listWidth()-4, 8))
	for i, e := range elements {
		line := truncate.StringWithTail(ElementRow(i, e), width, "…")
		if i == selected {
			lines = append(lines, selectedItemStyle.Render("› "+line))
		} else {
			lines = append(lines, itemStyle.Render("  "+line))
		}
	}
	return strings.Join(lines, "\n")
}

// ElementRow is the one-line summary of an element shown in the list.
func ElementRow(index int, e *canvas.Element) string {
	pos, size := e.Position(), e.Size()
	row := fmt.Sprintf("%d %s %s,%s %s×%s",
		index, e.Type(),
		style.FormatPixels(pos.X), style.FormatPixels(pos.Y),
		style.FormatPixels(size.Width), style.FormatPixels(size.Height),
	)
	if text := e.Text(); text != "" {
		row += fmt.Sprintf(" %q", text)
	}
	return row
}
