// Package api exposes the address engine over JSON HTTP. It is a thin
// presentation layer: every handler deserializes a request, calls the
// engine, and serializes the returned record verbatim.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sbanszky/advancedcalculator6/pkg/ipv6"
	"github.com/sbanszky/advancedcalculator6/pkg/planner"
)

// Config configures the API server.
type Config struct {
	// ListenAddr is the host:port to serve on.
	ListenAddr string

	// Planner handles plan and summarize requests. Nil selects a
	// default planner.
	Planner *planner.Planner

	// Logger receives request logs. Nil selects a no-op logger.
	Logger *zap.Logger
}

// Server serves the engine API.
type Server struct {
	planner    *planner.Planner
	logger     *zap.Logger
	metrics    *Metrics
	httpServer *http.Server
}

// NewServer creates an API server.
func NewServer(cfg Config) (*Server, error) {
	if cfg.ListenAddr == "" {
		return nil, fmt.Errorf("listen address required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	pl := cfg.Planner
	if pl == nil {
		pl = planner.New(planner.Config{Logger: logger})
	}

	s := &Server{
		planner: pl,
		logger:  logger,
		metrics: NewMetrics(),
	}
	s.httpServer = &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler returns the API routing mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/parse", s.handleParse)
	mux.HandleFunc("POST /api/v1/plan", s.handlePlan)
	mux.HandleFunc("POST /api/v1/summarize", s.handleSummarize)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.Handler())
	return mux
}

// ListenAndServe blocks serving the API until Shutdown is called.
func (s *Server) ListenAndServe() error {
	s.logger.Info("API server listening", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ParseRequest is the body of POST /api/v1/parse.
type ParseRequest struct {
	Address string `json:"address"`
}

// PlanRequest is the body of POST /api/v1/plan.
type PlanRequest struct {
	Network            string `json:"network"`
	TargetPrefixLength int    `json:"target_prefix_length"`
	Limit              int    `json:"limit,omitempty"`
}

// SummarizeRequest is the body of POST /api/v1/summarize.
type SummarizeRequest struct {
	Prefixes []string `json:"prefixes"`
}

// SummarizeResponse is the body returned by POST /api/v1/summarize.
type SummarizeResponse struct {
	Prefixes []string `json:"prefixes"`
	Count    int      `json:"count"`
}

// ErrorResponse is returned with a non-2xx status.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	reqID := uuid.NewString()

	var req ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, reqID, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		s.metrics.observe("parse", "bad_request", start)
		return
	}

	rec := ipv6.Parse(req.Address)
	s.metrics.parseResults.WithLabelValues(strconv.FormatBool(rec.Valid)).Inc()
	s.metrics.observe("parse", "ok", start)

	s.logger.Debug("parse request",
		zap.String("request_id", reqID),
		zap.String("address", req.Address),
		zap.Bool("valid", rec.Valid),
	)
	s.writeJSON(w, reqID, http.StatusOK, rec)
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	reqID := uuid.NewString()

	var req PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, reqID, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		s.metrics.observe("plan", "bad_request", start)
		return
	}

	plan, err := s.planner.Plan(req.Network, req.TargetPrefixLength, req.Limit)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, planner.ErrInvalidPrefix) || errors.Is(err, planner.ErrInvalidTarget) {
			status = http.StatusBadRequest
		}
		s.writeError(w, reqID, status, err)
		s.metrics.observe("plan", "error", start)
		return
	}

	s.metrics.subnetsPlanned.Add(float64(plan.GeneratedCount))
	s.metrics.observe("plan", "ok", start)

	s.logger.Debug("plan request",
		zap.String("request_id", reqID),
		zap.String("network", req.Network),
		zap.Int("target_prefix", req.TargetPrefixLength),
		zap.Int("generated", plan.GeneratedCount),
	)
	s.writeJSON(w, reqID, http.StatusOK, plan)
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	reqID := uuid.NewString()

	var req SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, reqID, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		s.metrics.observe("summarize", "bad_request", start)
		return
	}

	merged := s.planner.Summarize(req.Prefixes)
	s.metrics.observe("summarize", "ok", start)

	s.logger.Debug("summarize request",
		zap.String("request_id", reqID),
		zap.Int("input", len(req.Prefixes)),
		zap.Int("output", len(merged)),
	)
	s.writeJSON(w, reqID, http.StatusOK, SummarizeResponse{
		Prefixes: merged,
		Count:    len(merged),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) writeJSON(w http.ResponseWriter, reqID string, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", reqID)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("encode response", zap.String("request_id", reqID), zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, reqID string, status int, err error) {
	s.logger.Debug("request failed",
		zap.String("request_id", reqID),
		zap.Int("status", status),
		zap.Error(err),
	)
	s.writeJSON(w, reqID, status, ErrorResponse{
		Error:     err.Error(),
		RequestID: reqID,
	})
}
