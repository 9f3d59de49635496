// Package session holds the UI-owned editing context: the element store,
// its history, the current selection, the CSS text and the preview, and the
// debounced regeneration between them. A Session is driven from a single
// control path and is not safe for concurrent use.
package session

import (
	"fmt"
	"math"
	"time"

	"github.com/alexisbeaulieu97/cssforge/internal/canvas"
	"github.com/alexisbeaulieu97/cssforge/internal/clipboard"
	"github.com/alexisbeaulieu97/cssforge/internal/config"
	"github.com/alexisbeaulieu97/cssforge/internal/cssgen"
	"github.com/alexisbeaulieu97/cssforge/internal/debounce"
	"github.com/alexisbeaulieu97/cssforge/internal/events"
	"github.com/alexisbeaulieu97/cssforge/internal/history"
	"github.com/alexisbeaulieu97/cssforge/internal/logger"
	"github.com/alexisbeaulieu97/cssforge/internal/preview"
	"github.com/alexisbeaulieu97/cssforge/internal/project"
	"github.com/alexisbeaulieu97/cssforge/internal/reconcile"
	"github.com/alexisbeaulieu97/cssforge/internal/style"
	"github.com/alexisbeaulieu97/cssforge/internal/syncguard"
)

// PasteOffset is how far duplicated and pasted elements are shifted.
const PasteOffset = 20

// Options configures a Session. Zero fields take defaults.
type Options struct {
	Config    *config.Config
	Logger    *logger.Logger
	Bus       *events.Bus
	Clipboard clipboard.Clipboard
	Now       func() time.Time
}

// Session is the editing context around one project.
type Session struct {
	cfg     *config.Config
	log     *logger.Logger
	rootLog *logger.Logger
	bus     *events.Bus
	clip    clipboard.Clipboard
	now     func() time.Time

	store      *canvas.Store
	history    *history.Manager
	project    *project.Project
	renderer   *preview.Renderer
	token      *syncguard.Token
	reconciler *reconcile.Reconciler

	selected *canvas.Element
	css      string
	preview  string
	snap     bool
	dragging bool

	codeTimer     *debounce.Debouncer
	previewTimer  *debounce.Debouncer
	snapshotTimer *debounce.Debouncer
}

// New creates a session with an empty project.
func New(opts Options) *Session {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = &clipboard.Memory{}
	}
	bus := opts.Bus
	if bus == nil {
		bus = events.NewBus(opts.Logger)
	}

	token := &syncguard.Token{}
	s := &Session{
		cfg:        cfg,
		log:        opts.Logger.Component("session"),
		rootLog:    opts.Logger,
		bus:        bus,
		clip:       clip,
		now:        now,
		store:      canvas.NewStore(),
		history:    history.NewManager(cfg.History.Capacity, opts.Logger),
		project:    project.New(""),
		renderer:   preview.NewRenderer(cfg.Preview.Background),
		token:      token,
		reconciler: reconcile.New(token, opts.Logger),
		snap:       cfg.Editor.SnapToGrid,
	}
	s.codeTimer = debounce.New(cfg.Preview.CodeDelay, func() { s.regenerate() })
	s.previewTimer = debounce.New(cfg.Preview.RenderDelay, s.renderPreview)
	s.snapshotTimer = debounce.New(cfg.History.SnapshotDelay, func() { s.record() })

	s.regenerate()
	s.renderPreview()
	return s
}

// Bus returns the event bus notifications are published on.
func (s *Session) Bus() *events.Bus { return s.bus }

// Store returns the live element store.
func (s *Session) Store() *canvas.Store { return s.store }

// History returns the history manager.
func (s *Session) History() *history.Manager { return s.history }

// CSS returns the current CSS text.
func (s *Session) CSS() string { return s.css }

// Preview returns the last rendered preview document.
func (s *Session) Preview() string { return s.preview }

// ProjectName is the open project's display name.
func (s *Session) ProjectName() string { return s.project.Name }

// HTML returns the caller-supplied document, if any.
func (s *Session) HTML() string { return s.project.HTMLContent }

// Selected returns the selected element or nil.
func (s *Session) Selected() *canvas.Element { return s.selected }

// SelectedIndex returns the store index of the selection, or -1.
func (s *Session) SelectedIndex() int {
	if s.selected == nil {
		return -1
	}
	return s.store.IndexOf(s.selected)
}

// GridSize is the configured grid spacing in pixels.
func (s *Session) GridSize() int { return s.cfg.Editor.GridSize }

// SnapToGrid reports whether moves snap to the grid.
func (s *Session) SnapToGrid() bool { return s.snap }

// SetSnapToGrid toggles grid snapping.
func (s *Session) SetSnapToGrid(on bool) {
	s.snap = on
	if on {
		s.status("Snap to grid enabled")
	} else {
		s.status("Snap to grid disabled")
	}
}

// SetPreviewBackground changes the preview body color and re-renders.
func (s *Session) SetPreviewBackground(color string) {
	s.renderer.Background = color
	s.renderPreview()
	s.status("Background color changed")
}

// Tick runs every debounced action that is due at now.
func (s *Session) Tick(now time.Time) {
	s.codeTimer.Fire(now)
	s.snapshotTimer.Fire(now)
	s.previewTimer.Fire(now)
}

// NextDeadline returns the earliest pending debounce deadline, or the zero
// time when nothing is pending.
func (s *Session) NextDeadline() time.Time {
	var next time.Time
	for _, d := range []*debounce.Debouncer{s.codeTimer, s.snapshotTimer, s.previewTimer} {
		if dl := d.Deadline(); !dl.IsZero() && (next.IsZero() || dl.Before(next)) {
			next = dl
		}
	}
	return next
}

// Flush runs every pending debounced action immediately.
func (s *Session) Flush() {
	s.codeTimer.Flush()
	s.snapshotTimer.Flush()
	s.previewTimer.Flush()
}

// AddElement appends an element of kind with the configured default
// geometry and selects it.
func (s *Session) AddElement(kind string) *canvas.Element {
	return s.AddElementAt(kind, canvas.DefaultX, canvas.DefaultY, s.cfg.Editor.DefaultWidth, s.cfg.Editor.DefaultHeight)
}

// AddElementAt appends an element with explicit geometry and selects it.
func (s *Session) AddElementAt(kind string, x, y, width, height float64) *canvas.Element {
	if kind == "" {
		kind = "div"
	}
	e := s.store.Add(kind, x, y, width, height)
	s.selectElement(e)
	s.commit()
	s.status(fmt.Sprintf("Element added: %s", kind))
	return e
}

// Delete removes the selected element.
func (s *Session) Delete() bool {
	if s.selected == nil || !s.store.Remove(s.selected) {
		return false
	}
	s.selectElement(nil)
	s.commit()
	s.status("Element deleted")
	return true
}

// Duplicate copies the selected element, offset by PasteOffset, and selects
// the copy.
func (s *Session) Duplicate() *canvas.Element {
	if s.selected == nil {
		return nil
	}
	e := s.store.Duplicate(s.selected, PasteOffset, PasteOffset)
	s.selectElement(e)
	s.commit()
	s.status("Element duplicated")
	return e
}

// Copy writes the selected element to the clipboard as a JSON record.
func (s *Session) Copy() error {
	if s.selected == nil {
		return nil
	}
	record, err := canvas.EncodeRecord(s.selected)
	if err != nil {
		return err
	}
	if err := s.clip.WriteText(record); err != nil {
		return err
	}
	s.status("Element copied")
	return nil
}

// Paste adds the element recorded on the clipboard, offset by PasteOffset.
// Clipboard text that is not an element record is ignored and reported as
// false with a nil error.
func (s *Session) Paste() (bool, error) {
	text, err := s.clip.ReadText()
	if err != nil {
		return false, err
	}
	data, ok := canvas.DecodeRecord(text)
	if !ok {
		s.log.Debug("clipboard content ignored", "length", len(text))
		return false, nil
	}

	data.Pos[0] += PasteOffset
	data.Pos[1] += PasteOffset
	data.Rect[0] += PasteOffset
	data.Rect[1] += PasteOffset
	e := s.store.AddData(data)
	e.MoveTo(data.Pos[0], data.Pos[1])

	s.selectElement(e)
	s.commit()
	s.status("Element pasted")
	return true, nil
}

// Select selects the element at index; a negative index clears the
// selection.
func (s *Session) Select(index int) bool {
	if index < 0 {
		s.selectElement(nil)
		return true
	}
	e := s.store.At(index)
	if e == nil {
		return false
	}
	s.selectElement(e)
	return true
}

// Move positions the selected element, snapping to the grid when enabled.
// With drag set the CSS and preview refresh after their quiet periods and
// no snapshot is taken until EndDrag.
func (s *Session) Move(x, y float64, drag bool) bool {
	if s.selected == nil {
		return false
	}
	if s.snap {
		x, y = s.snapPoint(x), s.snapPoint(y)
	}
	s.selected.MoveTo(x, y)

	if drag {
		s.dragging = true
		now := s.now()
		s.codeTimer.Trigger(now)
		s.previewTimer.Trigger(now)
		return true
	}
	s.commit()
	return true
}

// EndDrag finishes a drag: the CSS is regenerated and a snapshot taken.
func (s *Session) EndDrag() {
	s.commit()
}

// Resize sets the selected element's size.
func (s *Session) Resize(width, height float64) bool {
	if s.selected == nil {
		return false
	}
	s.selected.Resize(width, height)
	s.commit()
	return true
}

// SetStyle sets a declaration on the selected element. Pixel values for
// left and top move the element.
func (s *Session) SetStyle(name, value string) bool {
	if s.selected == nil || name == "" {
		return false
	}
	s.selected.SetStyle(name, value)

	if name == "left" || name == "top" {
		if px, ok := style.Classify(value).Pixels(); ok {
			pos := s.selected.Position()
			if name == "left" {
				pos.X = px
			} else {
				pos.Y = px
			}
			s.selected.MoveTo(pos.X, pos.Y)
		}
	}
	s.commit()
	return true
}

// SetText sets the selected element's text content.
func (s *Session) SetText(text string) bool {
	if s.selected == nil {
		return false
	}
	s.selected.SetText(text)
	s.commit()
	return true
}

// EditCSS handles a change to the CSS text. It is ignored while the CSS is
// being regenerated. Otherwise the text is reconciled into the store; when
// that changed anything the text is regenerated in normalized form. The
// snapshot is debounced.
func (s *Session) EditCSS(text string) (reconcile.Result, bool) {
	if s.token.Held() {
		return reconcile.Result{}, false
	}
	s.css = text

	res, ran := s.reconciler.Apply(s.store, text)
	if !ran {
		return res, false
	}
	if s.selected != nil && s.store.IndexOf(s.selected) < 0 {
		s.selectElement(nil)
	}
	if res.Changed() {
		s.regenerate()
	}

	now := s.now()
	s.snapshotTimer.Trigger(now)
	s.previewTimer.Trigger(now)
	return res, true
}

// Undo restores the previous history entry. ok is false when there is
// nothing to undo. On a resolution error the store is left untouched.
func (s *Session) Undo() (bool, error) {
	s.settle()
	snap, ok, err := s.history.Undo()
	if err != nil || !ok {
		if err != nil {
			s.status("Undo failed: " + err.Error())
		}
		return false, err
	}
	s.restore(snap)
	s.status("Undo")
	return true, nil
}

// Redo restores the next history entry.
func (s *Session) Redo() (bool, error) {
	s.settle()
	snap, ok, err := s.history.Redo()
	if err != nil || !ok {
		if err != nil {
			s.status("Redo failed: " + err.Error())
		}
		return false, err
	}
	s.restore(snap)
	s.status("Redo")
	return true, nil
}

// SaveTemplate stores the selected element as a named template.
func (s *Session) SaveTemplate(name string) bool {
	if s.selected == nil || name == "" {
		return false
	}
	s.project.AddTemplate(project.FromElement(name, s.selected))
	s.status("Template saved: " + name)
	return true
}

// Templates lists the project's saved templates.
func (s *Session) Templates() []project.Template {
	return append([]project.Template(nil), s.project.Templates...)
}

// ApplyTemplate adds an element from the named project template.
func (s *Session) ApplyTemplate(name string) (*canvas.Element, bool) {
	t, ok := s.project.Template(name)
	if !ok {
		return nil, false
	}
	return s.applyTemplate(t), true
}

// ApplyPreset adds an element from a built-in template.
func (s *Session) ApplyPreset(key string) (*canvas.Element, bool) {
	t, ok := project.Preset(key)
	if !ok {
		return nil, false
	}
	return s.applyTemplate(t), true
}

func (s *Session) applyTemplate(t project.Template) *canvas.Element {
	e := t.Apply(s.store)
	s.selectElement(e)
	s.commit()
	s.status("Template loaded: " + t.Name)
	return e
}

// Components lists the project's component names.
func (s *Session) Components() []string {
	return append([]string(nil), s.project.Components...)
}

// AddComponent appends a component name.
func (s *Session) AddComponent(name string) bool {
	if name == "" {
		return false
	}
	s.project.Components = append(s.project.Components, name)
	s.status("Component added: " + name)
	return true
}

// RemoveComponent removes the first component called name.
func (s *Session) RemoveComponent(name string) bool {
	var ok bool
	s.project.Components, ok = remove(s.project.Components, name)
	if ok {
		s.status("Component removed: " + name)
	}
	return ok
}

// MediaQueries lists the project's media query names.
func (s *Session) MediaQueries() []string {
	return append([]string(nil), s.project.MediaQueries...)
}

// AddMediaQuery appends a media query name.
func (s *Session) AddMediaQuery(name string) bool {
	if name == "" {
		return false
	}
	s.project.MediaQueries = append(s.project.MediaQueries, name)
	s.status("Media query added: " + name)
	return true
}

// RemoveMediaQuery removes the first media query called name.
func (s *Session) RemoveMediaQuery(name string) bool {
	var ok bool
	s.project.MediaQueries, ok = remove(s.project.MediaQueries, name)
	if ok {
		s.status("Media query removed: " + name)
	}
	return ok
}

// SetHTML replaces the caller-supplied document, re-renders the preview
// and returns the document's validation problems.
func (s *Session) SetHTML(document string) []string {
	s.project.HTMLContent = document
	problems := preview.ValidateHTML(document)
	s.renderPreview()
	if len(problems) > 0 {
		s.status(fmt.Sprintf("HTML saved with %d problem(s)", len(problems)))
	} else {
		s.status("HTML saved")
	}
	return problems
}

// Export renders the current CSS in format.
func (s *Session) Export(format string) (string, error) {
	f, err := cssgen.ParseFormat(format)
	if err != nil {
		return "", err
	}
	return cssgen.Convert(s.css, f)
}

// CopyCSS writes the current CSS text to the clipboard.
func (s *Session) CopyCSS() error {
	if err := s.clip.WriteText(s.css); err != nil {
		return err
	}
	s.status("CSS copied to clipboard")
	return nil
}

// NewProject discards everything and starts an empty project.
func (s *Session) NewProject(name string) {
	s.cancelTimers()
	s.project = project.New(name)
	s.store.Clear()
	s.history.Reset()
	s.selectElement(nil)
	s.regenerate()
	s.renderPreview()
	s.status("New project created")
}

// Open replaces the session state with p. The store is rebuilt from the
// history entry at the project's current index. When that entry cannot be
// resolved the session is left untouched and the error is returned.
func (s *Session) Open(p *project.Project) error {
	hist := history.NewManager(s.cfg.History.Capacity, s.rootLog)
	hist.Load(p.History, p.CurrentIndex())

	var snap canvas.Snapshot
	if hist.Len() > 0 {
		current, err := hist.Current()
		if err != nil {
			return fmt.Errorf("failed to restore project state: %w", err)
		}
		snap = current
	}

	s.cancelTimers()
	s.project = p
	s.history = hist
	s.store.Restore(snap)
	s.selectElement(nil)
	s.regenerate()
	s.renderPreview()
	s.log.Info("project opened", "name", p.Name, "elements", s.store.Len(), "history", hist.Len())
	s.status("Project loaded: " + p.Name)
	return nil
}

// Project records the current state and returns the project with its
// history and document synchronized, ready to be saved.
func (s *Session) Project() *project.Project {
	s.codeTimer.Flush()
	s.snapshotTimer.Cancel()
	s.record()
	s.project.History = s.history.Entries()
	if s.history.Len() > 0 {
		s.project.SetCurrentIndex(s.history.Index())
	} else {
		s.project.HistoryIndex = nil
	}
	return s.project
}

func (s *Session) restore(snap canvas.Snapshot) {
	s.cancelTimers()
	s.store.Restore(snap)
	s.selectElement(nil)
	s.regenerate()
	s.renderPreview()
	s.publish(events.HistoryChanged, map[string]any{
		"index":   s.history.Index(),
		"entries": s.history.Len(),
	})
}

// commit is the path of every UI mutation: regenerate the CSS, record a
// snapshot and schedule the preview.
func (s *Session) commit() {
	s.dragging = false
	s.codeTimer.Cancel()
	s.regenerate()
	s.record()
	s.previewTimer.Trigger(s.now())
}

// regenerate writes the CSS text from the store while holding the sync
// token, so text-change notifications raised meanwhile are ignored.
func (s *Session) regenerate() bool {
	return s.token.Do("generator", func() {
		s.css = cssgen.Generate(s.store.Elements())
		s.publish(events.CSSChanged, map[string]any{
			"elements": s.store.Len(),
			"bytes":    len(s.css),
		})
	})
}

func (s *Session) record() bool {
	if !s.history.Record(s.store.Snapshot()) {
		return false
	}
	s.publish(events.HistoryChanged, map[string]any{
		"index":   s.history.Index(),
		"entries": s.history.Len(),
	})
	return true
}

func (s *Session) renderPreview() {
	s.preview = s.renderer.Render(s.store.Elements(), s.project.HTMLContent)
	s.publish(events.PreviewChanged, map[string]any{"bytes": len(s.preview)})
}

func (s *Session) selectElement(e *canvas.Element) {
	if s.selected == e {
		return
	}
	s.selected = e
	s.publish(events.SelectionChanged, map[string]any{"index": s.SelectedIndex()})
}

// settle records work still waiting for a quiet period: an unfinished
// drag or a debounced text-edit snapshot.
func (s *Session) settle() {
	if s.dragging {
		s.EndDrag()
	}
	s.snapshotTimer.Flush()
}

func (s *Session) cancelTimers() {
	s.dragging = false
	s.codeTimer.Cancel()
	s.previewTimer.Cancel()
	s.snapshotTimer.Cancel()
}

func (s *Session) snapPoint(v float64) float64 {
	grid := float64(s.cfg.Editor.GridSize)
	if grid <= 0 {
		return v
	}
	return math.RoundToEven(v/grid) * grid
}

func (s *Session) status(msg string) {
	s.publish(events.Status, msg)
}

func (s *Session) publish(kind string, payload any) {
	s.bus.Publish(events.Event{Type: kind, Payload: payload})
}

func remove(list []string, name string) ([]string, bool) {
	for i, v := range list {
		if v == name {
			return append(list[:i:i], list[i+1:]...), true
		}
	}
	return list, false
}
