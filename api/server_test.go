package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finopsguard/core/engine"
	"finopsguard/internal/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	eng, err := engine.New(config.Default())
	require.NoError(t, err)
	return NewServer(eng, "test")
}

func postAnalyze(t *testing.T, s *Server, req AnalyzeRequest) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewReader(body)))
	return rec
}

const fleetHCL = `
resource "aws_instance" "web" {
  instance_type = "t3.medium"
  count         = 3
}
`

func TestAnalyzeEndpoint(t *testing.T) {
	rec := postAnalyze(t, newTestServer(t), AnalyzeRequest{
		Format:        "terraform",
		Payload:       fleetHCL,
		Environment:   "dev",
		MonthlyBudget: "50",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.RequestID)
	assert.InDelta(t, 91.104, resp.EstimatedMonthlyCost, 0.001)
	assert.InDelta(t, 91.104/30*7, resp.EstimatedFirstWeekCost, 0.001)
	assert.Contains(t, resp.RiskFlags, "over_budget")
	assert.Equal(t, "medium", resp.PricingConfidence)
	require.Len(t, resp.BreakdownByResource, 1)
	assert.Equal(t, "aws_instance", resp.BreakdownByResource[0].Type)
	assert.Nil(t, resp.PolicyEval)
}

func TestAnalyzeEndpointWithPolicies(t *testing.T) {
	body := []byte(`{
		"format": "terraform",
		"payload": "resource \"aws_instance\" \"web\" {\n  instance_type = \"t3.medium\"\n  count = 3\n}",
		"environment": "dev",
		"policies": [
			{"id": "cap", "budget": "50", "on_violation": "block", "enabled": true},
			{"id": "advice", "budget": "10000", "on_violation": "advisory", "enabled": true}
		]
	}`)

	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.PolicyEval)
	require.Len(t, resp.PolicyEval.Results, 2)
	assert.True(t, resp.PolicyEval.Blocked)
}

func TestAnalyzeEndpointDetectsFormat(t *testing.T) {
	rec := postAnalyze(t, newTestServer(t), AnalyzeRequest{Payload: fleetHCL})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAnalyzeEndpointRejectsBadInput(t *testing.T) {
	s := newTestServer(t)

	// invalid JSON
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewReader([]byte("{nope"))))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// missing payload
	rec = postAnalyze(t, s, AnalyzeRequest{Format: "terraform"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// unsupported format
	rec = postAnalyze(t, s, AnalyzeRequest{Format: "pulumi", Payload: "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// malformed HCL surfaces as a parsing error
	rec = postAnalyze(t, s, AnalyzeRequest{Format: "terraform", Payload: `resource "aws_instance" {{{`})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "PARSING_ERROR", errResp.Error.Code)

	// invalid budget
	rec = postAnalyze(t, s, AnalyzeRequest{Format: "terraform", Payload: fleetHCL, MonthlyBudget: "lots"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthAndVersionEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/version", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "test")
}

func TestPricingFlushEndpoint(t *testing.T) {
	s := newTestServer(t)

	// seed the cache through an analysis
	rec := postAnalyze(t, s, AnalyzeRequest{Format: "terraform", Payload: fleetHCL})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/pricing/flush", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp["flushed"])
}
