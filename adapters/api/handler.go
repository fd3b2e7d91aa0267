package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"scifig/app"
	"scifig/domain/analysis"
	"scifig/domain/core"
	"scifig/internal"
	"scifig/internal/errors"
)

// AnalysisHandler handles analysis requests over HTTP
type AnalysisHandler struct {
	orchestrator *app.Orchestrator
	archive      AnalysisArchive
	logger       *internal.Logger
}

// NewAnalysisHandler creates a new analysis handler. The archive may
// be nil when persistence is not configured; analyses still run, they
// are just not stored.
func NewAnalysisHandler(orchestrator *app.Orchestrator, archive AnalysisArchive, logger *internal.Logger) *AnalysisHandler {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &AnalysisHandler{
		orchestrator: orchestrator,
		archive:      archive,
		logger:       logger,
	}
}

// Analyze runs the full decision pipeline and returns the workflow
// trace. Engine-level failures are reported inside the workflow's
// final result with HTTP 200; only malformed requests get an error
// status.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	requested := analysis.TestType(req.TestType)
	if req.TestType != "" && !requested.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown test_type: " + req.TestType})
		return
	}

	var workflow analysis.AnalysisWorkflow
	if req.TestType != "" {
		workflow = h.orchestrator.RunRequestedTest(req.Table(), req.Roles(), requested)
	} else {
		workflow = h.orchestrator.RunAnalysis(req.Table(), req.Roles())
	}

	if h.archive != nil {
		record := &ArchivedAnalysis{
			ID:        core.NewID(),
			CreatedAt: core.Now(),
			Workflow:  workflow,
		}
		if err := h.archive.Save(c.Request.Context(), record); err != nil {
			h.logger.Warn("failed to archive analysis %s: %v", record.ID, err)
		} else {
			c.Header("X-Analysis-ID", string(record.ID))
		}
	}

	c.JSON(http.StatusOK, workflow)
}

// GetAnalysis returns a previously archived workflow by id
func (h *AnalysisHandler) GetAnalysis(c *gin.Context) {
	if h.archive == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "analysis archive is not configured"})
		return
	}

	id := core.ID(c.Param("id"))
	record, err := h.archive.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.GetCode(err) == errors.CodeDatabaseError {
			h.logger.Error("archive lookup failed for %s: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "archive lookup failed"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "analysis not found"})
		return
	}

	c.JSON(http.StatusOK, record)
}

// Health reports service liveness
func (h *AnalysisHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"service": "scifig-engine", "status": "ok"})
}
