// Package preview serves every output format of a live analysis over HTTP.
package preview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/abdul-hamid-achik/routemap/pkg/analyzer"
	"github.com/abdul-hamid-achik/routemap/pkg/format"
	"github.com/abdul-hamid-achik/routemap/pkg/project"
	"github.com/abdul-hamid-achik/routemap/pkg/transform"
)

var contentTypes = map[format.Kind]string{
	format.Raw:        "application/json",
	format.JSON:       "application/json",
	format.OpenAPI:    "application/json",
	format.YAML:       "application/yaml",
	format.Markdown:   "text/markdown; charset=utf-8",
	format.TypeScript: "text/plain; charset=utf-8",
}

// Server re-analyzes the project on every request and renders the result.
type Server struct {
	analysis analyzer.Options
	defaults format.Options
	kind     format.Kind
	router   chi.Router
	server   *http.Server
	logger   *slog.Logger
}

// New creates a preview server. kind is the format served at /routes.
func New(analysis analyzer.Options, defaults format.Options, kind format.Kind) *Server {
	logger := analysis.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if kind == "" {
		kind = format.JSON
	}

	s := &Server{
		analysis: analysis,
		defaults: defaults,
		kind:     kind,
		router:   chi.NewRouter(),
		logger:   logger,
	}

	s.router.Use(middleware.Recoverer)
	s.router.Use(s.logRequests)
	s.router.Use(SecureHeaders)
	s.router.Use(CORS(DefaultCORSConfig()))
	s.router.Get("/", s.handleIndex)
	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/routes", s.handleRoutes)
	s.router.Get("/routes/{format}", s.handleRoutes)
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown gracefully: %w", err)
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	links := make(map[string]string, len(format.Kinds))
	for _, k := range format.Kinds {
		links[string(k)] = "/routes/" + string(k)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"default": "/routes",
		"formats": links,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	kind := s.kind
	if name := chi.URLParam(r, "format"); name != "" {
		k, err := format.ParseKind(name)
		if err != nil {
			writeError(w, http.StatusNotFound, err)
			return
		}
		kind = k
	}

	opts, err := s.options(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	a := analyzer.New(s.analysis)
	if _, err := a.Analyze(r.Context()); err != nil {
		status := http.StatusInternalServerError
		var perr *project.Error
		if errors.As(err, &perr) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err)
		return
	}

	out, err := a.Render(kind, opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[kind])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(out))
}

// options applies nested, style and indent query parameters over the defaults.
func (s *Server) options(r *http.Request) (format.Options, error) {
	opts := s.defaults
	q := r.URL.Query()

	if v := q.Get("nested"); v != "" {
		nested, err := strconv.ParseBool(v)
		if err != nil {
			return opts, fmt.Errorf("invalid nested value %q", v)
		}
		opts.Nested = nested
	}
	if v := q.Get("style"); v != "" {
		style, err := transform.ParsePathStyle(v)
		if err != nil {
			return opts, err
		}
		opts.PathStyle = style
	}
	if v := q.Get("indent"); v != "" {
		indent, err := strconv.Atoi(v)
		if err != nil || indent < 0 {
			return opts, fmt.Errorf("invalid indent %q", v)
		}
		opts.Indent = indent
	}
	return opts, nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("preview request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   err.Error(),
	})
}
