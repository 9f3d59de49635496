// Package server exposes a session over HTTP as a live preview. Requests
// are serialized; the session is never touched by two handlers at once.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/alexisbeaulieu97/cssforge/internal/canvas"
	"github.com/alexisbeaulieu97/cssforge/internal/cssgen"
	"github.com/alexisbeaulieu97/cssforge/internal/logger"
	"github.com/alexisbeaulieu97/cssforge/internal/project"
	"github.com/alexisbeaulieu97/cssforge/internal/session"
	apperrors "github.com/alexisbeaulieu97/cssforge/pkg/errors"
)

// MaxCSSBytes bounds the body accepted by POST /api/css.
const MaxCSSBytes = 1 << 20

const shutdownTimeout = 5 * time.Second

// SaveFunc persists the project after a mutating request.
type SaveFunc func(*project.Project) error

// Options configures a Server.
type Options struct {
	Logger *logger.Logger
	// Save is called after every request that changed the session. Nil
	// keeps changes in memory only.
	Save SaveFunc
}

// Server serves one session.
type Server struct {
	mu      sync.Mutex
	session *session.Session
	log     *logger.Logger
	save    SaveFunc
	router  chi.Router
}

// New builds the router around s.
func New(s *session.Session, opts Options) *Server {
	srv := &Server{
		session: s,
		log:     opts.Logger.Component("server"),
		save:    opts.Save,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(srv.requestLogger)

	r.Get("/", srv.handlePreview)
	r.Get("/styles.css", srv.handleStyles)
	r.Get("/export/{format}", srv.handleExport)
	r.Route("/api", func(r chi.Router) {
		r.Get("/elements", srv.handleElements)
		r.Post("/css", srv.handleCSS)
		r.Post("/undo", srv.handleUndo)
		r.Post("/redo", srv.handleRedo)
	})

	srv.router = r
	return srv
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("preview server listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		s.log.Info("preview server stopped")
		return nil
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).String(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// locked runs fn with the session flushed and exclusively held.
func (s *Server) locked(fn func(*session.Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Flush()
	fn(s.session)
}

func (s *Server) handlePreview(w http.ResponseWriter, _ *http.Request) {
	var body string
	s.locked(func(sess *session.Session) { body = sess.Preview() })
	writeText(w, http.StatusOK, "text/html; charset=utf-8", body)
}

func (s *Server) handleStyles(w http.ResponseWriter, _ *http.Request) {
	var body string
	s.locked(func(sess *session.Session) { body = sess.CSS() })
	writeText(w, http.StatusOK, cssgen.FormatCSS.ContentType(), body)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "format")
	format, err := cssgen.ParseFormat(name)
	if err != nil {
		writeError(w, err)
		return
	}

	var out string
	s.locked(func(sess *session.Session) { out, err = sess.Export(string(format)) })
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Disposition", `inline; filename="styles`+format.Extension()+`"`)
	writeText(w, http.StatusOK, format.ContentType(), out)
}

type elementsResponse struct {
	Elements     []canvas.ElementData `json:"elements"`
	Selected     int                  `json:"selected"`
	HistoryIndex int                  `json:"history_index"`
	HistoryLen   int                  `json:"history_entries"`
}

func (s *Server) handleElements(w http.ResponseWriter, _ *http.Request) {
	var resp elementsResponse
	s.locked(func(sess *session.Session) {
		elements := sess.Store().Snapshot().Elements
		if elements == nil {
			elements = []canvas.ElementData{}
		}
		resp = elementsResponse{
			Elements:     elements,
			Selected:     sess.SelectedIndex(),
			HistoryIndex: sess.History().Index(),
			HistoryLen:   sess.History().Len(),
		}
	})
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCSS(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxCSSBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "css body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	var (
		css     string
		ran     bool
		saveErr error
	)
	s.locked(func(sess *session.Session) {
		res, applied := sess.EditCSS(string(data))
		ran = applied
		if !applied {
			return
		}
		sess.Flush()
		css = sess.CSS()
		s.log.Info("css applied",
			"rules", res.Rules, "created", res.Created, "updated", res.Updated, "moved", res.Moved)
		saveErr = s.persist(sess)
	})

	if !ran {
		http.Error(w, "css regeneration in progress", http.StatusConflict)
		return
	}
	if saveErr != nil {
		writeError(w, saveErr)
		return
	}
	writeText(w, http.StatusOK, cssgen.FormatCSS.ContentType(), css)
}

type historyResponse struct {
	Changed bool `json:"changed"`
	Index   int  `json:"index"`
	Entries int  `json:"entries"`
}

func (s *Server) handleUndo(w http.ResponseWriter, _ *http.Request) {
	s.step(w, (*session.Session).Undo)
}

func (s *Server) handleRedo(w http.ResponseWriter, _ *http.Request) {
	s.step(w, (*session.Session).Redo)
}

func (s *Server) step(w http.ResponseWriter, move func(*session.Session) (bool, error)) {
	var (
		resp historyResponse
		err  error
	)
	s.locked(func(sess *session.Session) {
		var changed bool
		changed, err = move(sess)
		if err != nil {
			return
		}
		if changed {
			err = s.persist(sess)
		}
		resp = historyResponse{Changed: changed, Index: sess.History().Index(), Entries: sess.History().Len()}
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) persist(sess *session.Session) error {
	if s.save == nil {
		return nil
	}
	if err := s.save(sess.Project()); err != nil {
		s.log.Error(err, "failed to save project")
		return err
	}
	return nil
}

func writeText(w http.ResponseWriter, status int, contentType, body string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var formatErr *apperrors.FormatError
	var histErr *apperrors.HistoryError
	switch {
	case errors.As(err, &formatErr):
		status = http.StatusNotFound
	case errors.As(err, &histErr):
		status = http.StatusConflict
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
