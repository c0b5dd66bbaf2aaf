// Package server exposes the analysis pipeline over a JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"StockLens/internal/analysis"
	"StockLens/internal/metrics"
	"StockLens/internal/pipeline"
)

const (
	defaultDays = 250
	maxDays     = 2000
)

// Server serves the analysis API.
type Server struct {
	pipe    *pipeline.Pipeline
	metrics *metrics.Metrics
	srv     *http.Server
	started time.Time
}

// New builds the server with its routes. Metrics may be nil.
func New(addr string, pipe *pipeline.Pipeline, m *metrics.Metrics) *Server {
	s := &Server{
		pipe:    pipe,
		metrics: m,
		started: time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/analyze", s.handleAnalyze)
	mux.HandleFunc("/api/v1/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	s.srv = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	return s
}

// Start launches the HTTP server in a goroutine.
func (s *Server) Start() {
	go func() {
		log.Printf("[INFO] http server listening on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[ERROR] http server: %v", err)
		}
	}()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ticker := r.URL.Query().Get("ticker")
	if ticker == "" {
		s.writeError(w, r, http.StatusBadRequest, "missing ticker parameter")
		return
	}

	days := defaultDays
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > maxDays {
			s.writeError(w, r, http.StatusBadRequest,
				fmt.Sprintf("days must be an integer in (0, %d]", maxDays))
			return
		}
		days = n
	}

	report, err := s.pipe.Analyze(r.Context(), ticker, days)
	if err != nil {
		if errors.Is(err, analysis.ErrEmptySeries) {
			s.writeError(w, r, http.StatusNotFound, "no data for ticker")
			return
		}
		log.Printf("[ERROR] analyze %s: %v", ticker, err)
		s.writeError(w, r, http.StatusBadGateway, "analysis failed")
		return
	}

	s.writeJSON(w, r, http.StatusOK, report)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{
		"status": "ok",
		"uptime": time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[WARN] write response: %v", err)
	}
	s.count(r, code)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	s.writeJSON(w, r, code, map[string]string{"error": msg})
}

func (s *Server) count(r *http.Request, code int) {
	if s.metrics == nil {
		return
	}
	s.metrics.HTTPRequestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(code)).Inc()
}
