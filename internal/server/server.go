// Package server exposes the chart pipeline over HTTP.
//
// The server is meant for local previews and small deployments: requests
// name a CSV file readable by the server process, and responses carry the
// computed chart or a rendered artifact. All heavy lifting is delegated to
// [pipeline.Runner], so caching behaves exactly as it does in the CLI.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/spokechart/spoke/pkg/errors"
	"github.com/spokechart/spoke/pkg/pipeline"
)

// contentTypes maps output formats to their MIME types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatDOT:  "text/vnd.graphviz",
	pipeline.FormatJSON: "application/json",
}

// Server handles chart requests over HTTP.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates a server backed by the given runner.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger}
}

// Handler builds the HTTP routing table.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/charts", s.handleChart)
		r.Post("/artifacts/{format}", s.handleArtifact)
	})
	return r
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("serving charts", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleChart computes a chart and returns it as JSON.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}
	opts.Formats = []string{pipeline.FormatJSON}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[pipeline.FormatJSON])
	w.Header().Set("X-Chart-Hash", result.ChartHash)
	w.Header().Set("X-Cache", cacheStatus(result.CacheInfo.ChartHit))
	_, _ = w.Write(result.Artifacts[pipeline.FormatJSON])
}

// handleArtifact renders a chart in the format named by the URL.
func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if !pipeline.ValidFormats[format] {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidFormat, "unsupported output format: %q", format))
		return
	}

	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}
	opts.Formats = []string{format}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Chart-Hash", result.ChartHash)
	w.Header().Set("X-Cache", cacheStatus(result.CacheInfo.RenderHit))
	_, _ = w.Write(result.Artifacts[format])
}

// decodeOptions parses the request body into pipeline options. On failure
// it writes the error response and returns ok=false.
func (s *Server) decodeOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, bool) {
	var opts pipeline.Options
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return pipeline.Options{}, false
	}
	opts.Logger = s.logger
	return opts, true
}

// writeError maps pipeline errors onto HTTP statuses and writes a JSON
// error body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)

	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidDataset, errors.ErrCodeInvalidColumn,
		errors.ErrCodeInvalidMetric, errors.ErrCodeInvalidOrdering, errors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	}

	s.logger.Warn("request failed",
		"path", r.URL.Path,
		"code", code,
		"status", status,
		"err", err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(code),
	})
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
