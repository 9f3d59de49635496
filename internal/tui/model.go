package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/cssforge/internal/events"
	"github.com/alexisbeaulieu97/cssforge/internal/project"
	"github.com/alexisbeaulieu97/cssforge/internal/session"
)

// TickInterval is how often the session's debouncers are polled.
const TickInterval = 50 * time.Millisecond

// Mode is the current input mode of the editor.
type Mode int

const (
	ModeNormal Mode = iota
	ModePrompt
	ModeCSS
)

type promptKind int

const (
	promptAdd promptKind = iota
	promptStyle
	promptText
	promptSaveTemplate
	promptApplyTemplate
)

var promptLabels = map[promptKind]string{
	promptAdd:           "element type: ",
	promptStyle:         "property: value ",
	promptText:          "text: ",
	promptSaveTemplate:  "template name: ",
	promptApplyTemplate: "template or preset: ",
}

type tickMsg time.Time

// statusLine is shared between model copies so bus handlers can write it.
type statusLine struct {
	text string
}

// Options configures the editor.
type Options struct {
	// Save persists the project; nil disables the save key.
	Save func(*project.Project) error
	// Title is shown in the header.
	Title string
}

// Model is the Bubbletea model for the interactive editor.
type Model struct {
	session *session.Session
	save    func(*project.Project) error
	title   string

	keys keyMap
	help help.Model

	mode   Mode
	prompt promptKind
	input  textinput.Model
	editor textarea.Model
	code   viewport.Model

	status *statusLine
	sub    events.Subscription

	width    int
	height   int
	quitting bool
}

// NewModel builds an editor over sess.
func NewModel(sess *session.Session, opts Options) Model {
	input := textinput.New()
	input.CharLimit = 256

	editor := textarea.New()
	editor.CharLimit = 0
	editor.ShowLineNumbers = true

	title := opts.Title
	if title == "" {
		title = project.DefaultName
	}

	status := &statusLine{}
	sub := sess.Bus().Subscribe(events.Status, func(ev events.Event) error {
		if msg, ok := ev.Payload.(string); ok {
			status.text = msg
		}
		return nil
	})

	m := Model{
		session: sess,
		save:    opts.Save,
		title:   title,
		keys:    defaultKeyMap(),
		help:    help.New(),
		input:   input,
		editor:  editor,
		code:    viewport.New(60, 20),
		status:  status,
		sub:     sub,
	}
	m.refreshCode()
	return m
}

// Init starts polling the session's debouncers.
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Mode returns the current input mode.
func (m Model) Mode() Mode { return m.mode }

// Status returns the last status message published by the session.
func (m Model) Status() string { return m.status.text }

// Close detaches the model from the session's event bus.
func (m Model) Close() {
	if m.sub != nil {
		m.sub.Unsubscribe()
	}
}

func (m *Model) refreshCode() {
	m.code.SetContent(m.session.CSS())
}

func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	listWidth := m.listWidth()
	codeWidth := max(m.width-listWidth-4, 20)
	bodyHeight := max(m.height-6, 5)

	m.code.Width = codeWidth
	m.code.Height = bodyHeight
	m.editor.SetWidth(codeWidth)
	m.editor.SetHeight(bodyHeight)
	m.input.Width = max(m.width-len(promptLabels[m.prompt])-2, 10)
	m.help.Width = m.width
}

func (m Model) listWidth() int {
	if m.width == 0 {
		return 32
	}
	return min(max(m.width/3, 20), 40)
}
