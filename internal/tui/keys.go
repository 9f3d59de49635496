package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next      key.Binding
	Prev      key.Binding
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	Wider     key.Binding
	Narrower  key.Binding
	Taller    key.Binding
	Shorter   key.Binding
	Add       key.Binding
	Delete    key.Binding
	Duplicate key.Binding
	Copy      key.Binding
	Paste     key.Binding
	Style     key.Binding
	Text      key.Binding
	EditCSS   key.Binding
	Undo      key.Binding
	Redo      key.Binding
	Snap      key.Binding
	Template  key.Binding
	Apply     key.Binding
	CopyCSS   key.Binding
	Save      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:      key.NewBinding(key.WithKeys("tab", "j"), key.WithHelp("tab/j", "next")),
		Prev:      key.NewBinding(key.WithKeys("shift+tab", "k"), key.WithHelp("shift+tab/k", "prev")),
		Left:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "move left")),
		Right:     key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "move right")),
		Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "move up")),
		Down:      key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "move down")),
		Wider:     key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "wider")),
		Narrower:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "narrower")),
		Taller:    key.NewBinding(key.WithKeys("}"), key.WithHelp("}", "taller")),
		Shorter:   key.NewBinding(key.WithKeys("{"), key.WithHelp("{", "shorter")),
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Delete:    key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete")),
		Duplicate: key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "duplicate")),
		Copy:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
		Paste:     key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "paste")),
		Style:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "style")),
		Text:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "text")),
		EditCSS:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit css")),
		Undo:      key.NewBinding(key.WithKeys("u", "ctrl+z"), key.WithHelp("u", "undo")),
		Redo:      key.NewBinding(key.WithKeys("ctrl+r", "ctrl+y"), key.WithHelp("ctrl+r", "redo")),
		Snap:      key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "snap")),
		Template:  key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "save template")),
		Apply:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "apply template")),
		CopyCSS:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy css")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s", "w"), key.WithHelp("w", "save")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Next, k.Style, k.EditCSS, k.Undo, k.Redo, k.Save, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Left, k.Right, k.Up, k.Down},
		{k.Wider, k.Narrower, k.Taller, k.Shorter, k.Snap},
		{k.Add, k.Delete, k.Duplicate, k.Copy, k.Paste, k.Style, k.Text},
		{k.EditCSS, k.Undo, k.Redo, k.Template, k.Apply, k.CopyCSS, k.Save, k.Quit},
	}
}
