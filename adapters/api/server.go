package api

import (
	"github.com/gin-gonic/gin"

	"scifig/app"
	"scifig/internal"
)

// NewRouter builds the gin engine with all analysis routes registered
func NewRouter(orchestrator *app.Orchestrator, archive AnalysisArchive, logger *internal.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	handler := NewAnalysisHandler(orchestrator, archive, logger)

	router.GET("/health", handler.Health)
	router.POST("/analyze", handler.Analyze)
	router.GET("/analyses/:id", handler.GetAnalysis)

	return router
}
