// Package clipboard abstracts the text clipboard used for element copy,
// paste and "copy CSS".
package clipboard

import (
	"errors"
	"sync"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no system clipboard utility is available.
var ErrUnsupported = errors.New("system clipboard unavailable")

// Clipboard reads and writes plain text.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(text string) error
}

// System uses the operating system clipboard.
type System struct{}

// Available reports whether the platform clipboard can be used.
func (System) Available() bool {
	return !clipboard.Unsupported
}

// ReadText returns the current clipboard text.
func (s System) ReadText() (string, error) {
	if !s.Available() {
		return "", ErrUnsupported
	}
	return clipboard.ReadAll()
}

// WriteText replaces the clipboard contents.
func (s System) WriteText(text string) error {
	if !s.Available() {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}

// Memory is an in-process clipboard, used by tests, the HTTP server and
// headless sessions.
type Memory struct {
	mu   sync.Mutex
	text string
}

// ReadText returns the stored text.
func (m *Memory) ReadText() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

// WriteText stores text.
func (m *Memory) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

// Default returns the system clipboard when available, otherwise an
// in-memory one.
func Default() Clipboard {
	if (System{}).Available() {
		return System{}
	}
	return &Memory{}
}
