// Package server exposes the analysis pipeline over HTTP for the
// browser-extension frontend. Error responses carry non-technical
// messages only; internal error strings never cross this boundary.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"

	"github.com/ppiankov/trustlens/internal/model"
	"github.com/ppiankov/trustlens/internal/pipeline"
)

// Server is the HTTP API surface
type Server struct {
	pipe   *pipeline.Pipeline
	store  pipeline.Store // nil disables the sweep schedule
	router *mux.Router
	cron   *cron.Cron
	addr   string
	sweep  string
}

// New creates a server around the given pipeline
func New(cfg *model.Config, pipe *pipeline.Pipeline, store pipeline.Store) *Server {
	s := &Server{
		pipe:  pipe,
		store: store,
		cron:  cron.New(),
		addr:  cfg.Server.Addr,
		sweep: cfg.Server.SweepSchedule,
	}

	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/analyze", s.handleAnalyze).Methods(http.MethodPost)
	s.router = r

	return s
}

// Handler returns the HTTP handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the sweep schedule and serves until the context ends
func (s *Server) Run(ctx context.Context) error {
	if s.store != nil && s.sweep != "" {
		_, err := s.cron.AddFunc(s.sweep, func() {
			if err := s.store.Sweep(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: cache sweep failed: %v\n", err)
			}
		})
		if err != nil {
			return fmt.Errorf("schedule cache sweep: %w", err)
		}
		s.cron.Start()
		defer s.cron.Stop()
	}

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// errorBody is the outbound error shape
type errorBody struct {
	Status  string                  `json:"status"`
	Message string                  `json:"message"`
	Partial *model.AnalysisResponse `json:"partial,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req model.AnalysisRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{
			Status:  "error",
			Message: "The analysis request could not be read.",
		})
		return
	}

	result, err := s.pipe.Analyze(r.Context(), req)
	if err != nil {
		s.writeAnalyzeError(w, result, err)
		return
	}

	resp := result.Response()
	writeJSON(w, http.StatusOK, resp)
}

// writeAnalyzeError maps the pipeline taxonomy to user-facing messages.
// Timeouts still deliver the partial result that was assembled.
func (s *Server) writeAnalyzeError(w http.ResponseWriter, result *model.AnalysisResult, err error) {
	var partial *model.AnalysisResponse
	if result != nil {
		resp := result.Response()
		partial = &resp
	}

	switch {
	case errors.Is(err, pipeline.ErrContentTooShort):
		writeJSON(w, http.StatusBadRequest, errorBody{
			Status:  "error",
			Message: "Content too short for analysis (minimum 50 characters).",
		})
	case errors.Is(err, pipeline.ErrCooldownActive):
		writeJSON(w, http.StatusTooManyRequests, errorBody{
			Status:  "error",
			Message: "This page was analyzed moments ago. Please wait a few seconds and try again.",
		})
	case errors.Is(err, pipeline.ErrAnalysisTimeout):
		writeJSON(w, http.StatusGatewayTimeout, errorBody{
			Status:  "error",
			Message: "Analysis timed out. Partial results are included where available.",
			Partial: partial,
		})
	case errors.Is(err, pipeline.ErrAnalysisCancelled):
		// Client went away; status code is best-effort
		writeJSON(w, http.StatusGatewayTimeout, errorBody{
			Status:  "error",
			Message: "Analysis was cancelled.",
		})
	default:
		fmt.Fprintf(os.Stderr, "analyze failed: %v\n", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{
			Status:  "error",
			Message: "Analysis failed. Please try again.",
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		fmt.Fprintf(os.Stderr, "write response: %v\n", err)
	}
}
