package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/cssforge/internal/canvas"
	"github.com/alexisbeaulieu97/cssforge/internal/history"
	apperrors "github.com/alexisbeaulieu97/cssforge/pkg/errors"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "site.json")
	store := canvas.NewStore()
	e := store.Add("button", 10, 20, 120, 40)
	e.SetText("Go")

	p := New("Landing")
	p.Components = []string{"header"}
	p.MediaQueries = []string{"mobile"}
	p.History = []history.Entry{history.Full(store.Snapshot())}
	p.AddTemplate(FromElement("Primary Button", e))
	p.HTMLContent = "<p>hi</p>"
	require.NoError(t, p.Save(path))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Landing", loaded.Name)
	assert.Equal(t, []string{"header"}, loaded.Components)
	assert.Equal(t, []string{"mobile"}, loaded.MediaQueries)
	assert.Equal(t, "<p>hi</p>", loaded.HTMLContent)
	require.Len(t, loaded.History, 1)
	assert.True(t, store.Snapshot().Equal(loaded.History[0].Snapshot))
	assert.Equal(t, 0, loaded.CurrentIndex())

	tmpl, ok := loaded.Template("primary-button")
	require.True(t, ok)
	assert.Equal(t, "button", tmpl.ElementType)
	assert.Equal(t, 120.0, tmpl.Width)
	assert.Equal(t, "Go", tmpl.Text)
}

func TestDecodeLegacyProject(t *testing.T) {
	t.Parallel()

	data := []byte(`{
  "name": "Old",
  "components": [],
  "history": [
    {"elements": [{"type": "div", "styles": {"width": "80px"}, "pos": [5, 6]}]}
  ],
  "templates": [],
  "html_content": ""
}`)
	p, err := Decode("old.json", data)
	require.NoError(t, err)
	require.Len(t, p.History, 1)
	assert.Equal(t, history.KindFull, p.History[0].Kind)
	assert.Equal(t, [4]float64{5, 6, 80, 100}, p.History[0].Snapshot.Elements[0].Rect)
	assert.Nil(t, p.HistoryIndex)
}

func TestDecodeReportsLine(t *testing.T) {
	t.Parallel()

	_, err := Decode("broken.json", []byte("{\n  \"name\": \"x\",\n  \"history\": [}\n"))

	var perr *apperrors.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "broken.json", perr.Path)
	assert.Equal(t, 3, perr.Line)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCurrentIndex(t *testing.T) {
	t.Parallel()

	p := New("")
	assert.Equal(t, DefaultName, p.Name)
	assert.Equal(t, -1, p.CurrentIndex())

	p.History = make([]history.Entry, 3)
	assert.Equal(t, 2, p.CurrentIndex())

	p.SetCurrentIndex(1)
	assert.Equal(t, 1, p.CurrentIndex())

	p.SetCurrentIndex(9)
	assert.Equal(t, 2, p.CurrentIndex())
}
