package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/cssforge/internal/clipboard"
	"github.com/alexisbeaulieu97/cssforge/internal/project"
	"github.com/alexisbeaulieu97/cssforge/internal/session"
)

func newTestServer(t *testing.T, save SaveFunc) (*Server, *session.Session) {
	t.Helper()
	sess := session.New(session.Options{Clipboard: &clipboard.Memory{}})
	return New(sess, Options{Save: save}), sess
}

func do(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestPreviewAndStyles(t *testing.T) {
	t.Parallel()

	srv, sess := newTestServer(t, nil)
	sess.AddElement("button")

	rec := do(t, srv, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	require.Contains(t, rec.Body.String(), "<button")

	rec = do(t, srv, http.MethodGet, "/styles.css", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/css")
	require.Equal(t, sess.CSS(), rec.Body.String())
	require.Contains(t, rec.Body.String(), ".button-element-0 {")
}

func TestPostCSSAppliesAndSaves(t *testing.T) {
	t.Parallel()

	var saved []*project.Project
	srv, _ := newTestServer(t, func(p *project.Project) error {
		saved = append(saved, p)
		return nil
	})

	rec := do(t, srv, http.MethodPost, "/api/css", ".div-element-0 { color:red }")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.HasPrefix(rec.Body.String(), ".div-element-0 {\n    width: 200px;"))
	require.Contains(t, rec.Body.String(), "    color: red;\n}")

	require.Len(t, saved, 1)
	require.Len(t, saved[0].History, 1)

	rec = do(t, srv, http.MethodGet, "/api/elements", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Elements []struct {
			Type string `json:"type"`
		} `json:"elements"`
		Selected     int `json:"selected"`
		HistoryIndex int `json:"history_index"`
		Entries      int `json:"history_entries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Elements, 1)
	require.Equal(t, "div", resp.Elements[0].Type)
	require.Equal(t, -1, resp.Selected)
	require.Equal(t, 0, resp.HistoryIndex)
	require.Equal(t, 1, resp.Entries)
}

func TestUndoRedoEndpoints(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, nil)

	require.Equal(t, http.StatusOK, do(t, srv, http.MethodPost, "/api/css", ".div-element-0 { color: red; }").Code)
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodPost, "/api/css", ".div-element-0 { color: blue; }").Code)

	rec := do(t, srv, http.MethodPost, "/api/undo", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"changed":true,"index":0,"entries":2}`, rec.Body.String())
	require.Contains(t, do(t, srv, http.MethodGet, "/styles.css", "").Body.String(), "color: red;")

	rec = do(t, srv, http.MethodPost, "/api/undo", "")
	require.JSONEq(t, `{"changed":false,"index":0,"entries":2}`, rec.Body.String())

	rec = do(t, srv, http.MethodPost, "/api/redo", "")
	require.JSONEq(t, `{"changed":true,"index":1,"entries":2}`, rec.Body.String())
	require.Contains(t, do(t, srv, http.MethodGet, "/styles.css", "").Body.String(), "color: blue;")
}

func TestExport(t *testing.T) {
	t.Parallel()

	srv, sess := newTestServer(t, nil)
	sess.AddElement("div")

	rec := do(t, srv, http.MethodGet, "/export/scss", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Disposition"), "styles.scss")
	require.Contains(t, rec.Body.String(), ".div-element-0 {")

	rec = do(t, srv, http.MethodGet, "/export/stylus", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "stylus")
}

func TestPostCSSTooLarge(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, nil)
	rec := do(t, srv, http.MethodPost, "/api/css", strings.Repeat("a", MaxCSSBytes+1))
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, nil)
	rec := do(t, srv, http.MethodGet, "/api/undo", "")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
