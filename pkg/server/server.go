// Package server exposes model counting and DOT rendering over HTTP.
//
// # Endpoints
//
//	GET  /healthz                 liveness and build version
//	POST /v1/count/{format}       body: .nnf or .sdd text, query: w=lit:weight (repeatable), refresh
//	POST /v1/render               body: .sdd text, query: merge, ids, format=dot|svg|png|pdf
//	                              or multipart parts sdd and vtree (optional, fills Vp in ids)
//	POST /v1/render/vtree         body: .vtree text, query: ids, format
//
// Every response carries an X-Request-ID header. Errors are JSON objects
// with a code and a message; malformed input yields 400.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/sddkit/pkg/buildinfo"
	sdderrors "github.com/matzehuels/sddkit/pkg/errors"
	"github.com/matzehuels/sddkit/pkg/pipeline"
	"github.com/matzehuels/sddkit/pkg/render/dot"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8080"

// MaxBodyBytes bounds the size of uploaded circuits.
const MaxBodyBytes = 32 << 20

// Options configures a Server.
type Options struct {
	// Labels are applied to every rendered diagram.
	Labels dot.Labels
	// ShutdownTimeout bounds graceful shutdown. Defaults to 10s.
	ShutdownTimeout time.Duration
}

// Server serves the HTTP API.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	opts   Options
	router chi.Router
}

// New creates a server backed by runner.
func New(runner *pipeline.Runner, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	s := &Server{runner: runner, logger: logger, opts: opts}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/count/{format}", s.handleCount)
		r.Post("/render", s.handleRender)
		r.Post("/render/vtree", s.handleRenderVtree)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// =============================================================================
// Responses
// =============================================================================

// errorResponse is the JSON body of a failed request.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	code := sdderrors.GetCode(err)
	if code == "" {
		code = sdderrors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "request_id", RequestID(r.Context()), "err", err)
	}
	writeJSON(w, status, errorResponse{Code: string(code), Message: sdderrors.UserMessage(err)})
}

// statusOf maps an error code to an HTTP status.
func statusOf(err error) int {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge
	}
	switch sdderrors.GetCode(err) {
	case sdderrors.ErrCodeInvalidInput,
		sdderrors.ErrCodeInvalidFormat,
		sdderrors.ErrCodeInvalidWeight,
		sdderrors.ErrCodeInvalidLiteral,
		sdderrors.ErrCodeMissingWeights,
		sdderrors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case sdderrors.ErrCodeNotFound, sdderrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}
