// Package api - Thin, deterministic API layer
// The API is ONLY responsible for: input ingestion, engine orchestration,
// output serialization. The API NEVER performs cost or policy logic.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"finopsguard/core/engine"
	"finopsguard/core/parser"
	"finopsguard/core/types"
	"finopsguard/internal/errors"
)

// Server is the API server
type Server struct {
	engine  *engine.Engine
	mux     *http.ServeMux
	version string
}

// NewServer creates a new API server over an engine
func NewServer(eng *engine.Engine, version string) *Server {
	s := &Server{
		engine:  eng,
		mux:     http.NewServeMux(),
		version: version,
	}
	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /analyze", s.handleAnalyze)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
	s.mux.HandleFunc("POST /pricing/flush", s.handlePricingFlush)
}

// handleAnalyze handles POST /analyze
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.New(errors.TypeInput, "invalid JSON: "+err.Error()), http.StatusBadRequest)
		return
	}

	engineReq, err := toEngineRequest(&req)
	if err != nil {
		s.writeError(w, err, http.StatusBadRequest)
		return
	}

	result, err := s.engine.Analyze(r.Context(), engineReq)
	if err != nil {
		s.writeError(w, err, statusForError(err))
		return
	}

	s.writeJSON(w, toResponse(result), http.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version": s.version,
		"engine":  "finopsguard",
	}, http.StatusOK)
}

// handlePricingFlush handles POST /pricing/flush
func (s *Server) handlePricingFlush(w http.ResponseWriter, r *http.Request) {
	before := s.engine.PricingCacheSize()
	s.engine.FlushPricingCache()
	s.writeJSON(w, map[string]interface{}{
		"flushed": before,
	}, http.StatusOK)
}

// toEngineRequest validates and converts the wire request
func toEngineRequest(req *AnalyzeRequest) (*engine.AnalysisRequest, error) {
	if req.Payload == "" {
		return nil, errors.New(errors.TypeInput, "payload is required")
	}

	var format types.IaCFormat
	if req.Format == "" {
		detected, err := parser.DetectFormat([]byte(req.Payload))
		if err != nil {
			return nil, err
		}
		format = detected
	} else {
		format = types.IaCFormat(req.Format)
		if !format.IsValid() {
			return nil, errors.Newf(errors.TypeInput, "unsupported format %q", req.Format)
		}
	}

	engineReq := &engine.AnalysisRequest{
		Format:      format,
		Payload:     []byte(req.Payload),
		Environment: req.Environment,
		Policies:    req.Policies,
	}

	if req.MonthlyBudget != "" {
		budget, err := decimal.NewFromString(req.MonthlyBudget)
		if err != nil {
			return nil, errors.Newf(errors.TypeInput, "invalid monthly_budget %q", req.MonthlyBudget)
		}
		engineReq.Budget = &types.BudgetRules{MonthlyBudget: &budget}
	}

	return engineReq, nil
}

// toResponse serializes an analysis result. Decimal amounts become JSON
// floats at the boundary only.
func toResponse(result *engine.AnalysisResult) *AnalyzeResponse {
	sim := result.Simulation

	resp := &AnalyzeResponse{
		RequestID:              result.RequestID,
		EstimatedMonthlyCost:   sim.EstimatedMonthlyCost.InexactFloat64(),
		EstimatedFirstWeekCost: sim.EstimatedFirstWeekCost.InexactFloat64(),
		BreakdownByResource:    make([]ResourceCost, 0, len(sim.BreakdownByResource)),
		RiskFlags:              sim.RiskFlags,
		PricingConfidence:      string(sim.PricingConfidence),
		DurationMs:             result.Duration.Milliseconds(),
	}

	for _, entry := range sim.BreakdownByResource {
		resp.BreakdownByResource = append(resp.BreakdownByResource, ResourceCost{
			ResourceID:  entry.ResourceID,
			Type:        entry.Type,
			Size:        entry.Size,
			MonthlyCost: entry.MonthlyCost.InexactFloat64(),
			Notes:       entry.Notes,
		})
	}

	if result.PolicyEval != nil {
		resp.PolicyEval = &PolicyEval{
			Results: result.PolicyEval.Results,
			Skipped: result.PolicyEval.Skipped,
			Blocked: result.PolicyEval.Blocked,
		}
	}

	return resp
}

// statusForError maps typed errors to HTTP status codes
func statusForError(err error) int {
	e, ok := err.(*errors.Error)
	if !ok {
		return http.StatusInternalServerError
	}
	switch e.Type {
	case errors.TypeInput, errors.TypeParsing, errors.TypeNotSupported:
		return http.StatusBadRequest
	case errors.TypeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) writeError(w http.ResponseWriter, err error, status int) {
	detail := ErrorDetail{Code: string(errors.TypeInternal), Message: err.Error()}
	if e, ok := err.(*errors.Error); ok {
		detail.Code = string(e.Type)
		detail.Message = e.Message
		detail.Context = e.Context
	}
	s.writeJSON(w, &ErrorResponse{Error: detail}, status)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the server
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
