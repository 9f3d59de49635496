// Package project reads and writes the JSON project file.
package project

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gosimple/slug"

	"github.com/alexisbeaulieu97/cssforge/internal/history"
	apperrors "github.com/alexisbeaulieu97/cssforge/pkg/errors"
)

// DefaultName is used for new projects.
const DefaultName = "New Project"

// Project is the persisted editor state.
type Project struct {
	Name         string          `json:"name"`
	Components   []string        `json:"components"`
	MediaQueries []string        `json:"media_queries,omitempty"`
	History      []history.Entry `json:"history"`
	HistoryIndex *int            `json:"history_index,omitempty"`
	Templates    []Template      `json:"templates"`
	HTMLContent  string          `json:"html_content"`
}

// New returns an empty project.
func New(name string) *Project {
	if name == "" {
		name = DefaultName
	}
	return &Project{
		Name:       name,
		Components: []string{},
		History:    []history.Entry{},
		Templates:  []Template{},
	}
}

// CurrentIndex returns the persisted history head, defaulting to the last
// entry when absent or out of range.
func (p *Project) CurrentIndex() int {
	last := len(p.History) - 1
	if p.HistoryIndex == nil || *p.HistoryIndex < 0 || *p.HistoryIndex > last {
		return last
	}
	return *p.HistoryIndex
}

// SetCurrentIndex records the history head.
func (p *Project) SetCurrentIndex(index int) {
	p.HistoryIndex = &index
}

// Template finds a saved template by exact name, then by slug.
func (p *Project) Template(name string) (Template, bool) {
	for _, t := range p.Templates {
		if t.Name == name {
			return t, true
		}
	}
	key := slug.Make(name)
	for _, t := range p.Templates {
		if t.Key() == key {
			return t, true
		}
	}
	return Template{}, false
}

// AddTemplate appends t. Templates with duplicate names are kept; lookups
// return the first.
func (p *Project) AddTemplate(t Template) {
	p.Templates = append(p.Templates, t)
}

// Decode parses project JSON. Syntax errors carry the failing line.
func Decode(path string, data []byte) (*Project, error) {
	p := New("")
	if err := json.Unmarshal(data, p); err != nil {
		return nil, apperrors.NewParseError(path, errorLine(data, err), err)
	}
	if p.Name == "" {
		p.Name = DefaultName
	}
	return p, nil
}

// Encode renders the project as indented JSON.
func (p *Project) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal project: %w", err)
	}
	return append(data, '\n'), nil
}

// Load reads the project at path.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project: %w", err)
	}
	return Decode(path, data)
}

// Save writes the project to path atomically.
func (p *Project) Save(path string) error {
	data, err := p.Encode()
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create project directory: %w", err)
		}
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}
	return nil
}

func errorLine(data []byte, err error) int {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		offset    int64
	)
	switch {
	case errors.As(err, &syntaxErr):
		offset = syntaxErr.Offset
	case errors.As(err, &typeErr):
		offset = typeErr.Offset
	default:
		return 0
	}
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	return bytes.Count(data[:offset], []byte("\n")) + 1
}
