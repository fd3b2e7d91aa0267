package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scifig/app"
	"scifig/domain/analysis"
	"scifig/domain/core"
	"scifig/internal/testkit"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memoryArchive is an in-memory AnalysisArchive for handler tests
type memoryArchive struct {
	records map[core.ID]*ArchivedAnalysis
}

func newMemoryArchive() *memoryArchive {
	return &memoryArchive{records: make(map[core.ID]*ArchivedAnalysis)}
}

func (m *memoryArchive) Save(_ context.Context, record *ArchivedAnalysis) error {
	m.records[record.ID] = record
	return nil
}

func (m *memoryArchive) GetByID(_ context.Context, id core.ID) (*ArchivedAnalysis, error) {
	record, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("analysis not found: %s", id)
	}
	return record, nil
}

func analyzeBody(t *testing.T) []byte {
	t.Helper()
	gen := testkit.NewClinicalDataGenerator(testkit.DefaultClinicalConfig())
	table := gen.TwoArmNormal(20, 50, 60, 5)

	body, err := json.Marshal(map[string]any{
		"data":             table.Rows,
		"outcome_variable": "response",
		"group_variable":   "group",
	})
	require.NoError(t, err)
	return body
}

func TestAnalyzeEndpoint_FullWorkflow(t *testing.T) {
	router := NewRouter(app.NewOrchestrator(), nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewReader(analyzeBody(t)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var wf analysis.AnalysisWorkflow
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &wf))
	require.NotNil(t, wf.FinalSelection)
	assert.Equal(t, analysis.TestIndependentTTest, wf.FinalSelection.SelectedTest)
	require.False(t, wf.FinalResult.Failed())
	assert.Equal(t, analysis.TestIndependentTTest, wf.FinalResult.Result.TestName)
}

func TestAnalyzeEndpoint_EngineErrorStillReturns200(t *testing.T) {
	router := NewRouter(app.NewOrchestrator(), nil, nil)

	body, err := json.Marshal(map[string]any{
		"data":             []map[string]any{{"response": 1.5}, {"response": 2.5}},
		"outcome_variable": "response",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var wf analysis.AnalysisWorkflow
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &wf))
	assert.True(t, wf.FinalResult.Failed())
}

func TestAnalyzeEndpoint_BadRequests(t *testing.T) {
	router := NewRouter(app.NewOrchestrator(), nil, nil)

	t.Run("missing required fields", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewReader([]byte(`{"data":[]}`)))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown test_type", func(t *testing.T) {
		body, err := json.Marshal(map[string]any{
			"data":             []map[string]any{{"response": 1.0, "group": "a"}},
			"outcome_variable": "response",
			"group_variable":   "group",
			"test_type":        "pearson",
		})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAnalyzeEndpoint_ArchivesWorkflow(t *testing.T) {
	archive := newMemoryArchive()
	router := NewRouter(app.NewOrchestrator(), archive, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewReader(analyzeBody(t)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	id := w.Header().Get("X-Analysis-ID")
	require.NotEmpty(t, id)
	require.Len(t, archive.records, 1)

	// The archived record is retrievable
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/analyses/"+id, nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var record ArchivedAnalysis
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
	assert.Equal(t, core.ID(id), record.ID)
	assert.False(t, record.Workflow.FinalResult.Failed())
}

func TestGetAnalysis_NotFoundAndDisabled(t *testing.T) {
	t.Run("archive disabled", func(t *testing.T) {
		router := NewRouter(app.NewOrchestrator(), nil, nil)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/analyses/whatever", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotImplemented, w.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		router := NewRouter(app.NewOrchestrator(), newMemoryArchive(), nil)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/analyses/missing", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHealthEndpoint(t *testing.T) {
	router := NewRouter(app.NewOrchestrator(), nil, nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"service":"scifig-engine","status":"ok"}`, w.Body.String())
}
