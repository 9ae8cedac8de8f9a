package routes

import (
	"github.com/gin-gonic/gin"
	"healthvoice/internal/api/middleware"
	"healthvoice/internal/api/v1/handlers"
	"healthvoice/internal/api/v1/services"
)

// ServiceContainer holds all services needed by handlers
type ServiceContainer struct {
	TranscriptService services.TranscriptService
	QAService         services.QAService
	ExportService     services.ExportService
}

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, container *ServiceContainer) {
	router.Use(middleware.RequestID())

	transcriptHandler := handlers.NewTranscriptHandler(container.TranscriptService)
	qaHandler := handlers.NewQAHandler(container.QAService, container.ExportService)

	transcripts := router.Group("/transcripts")
	{
		transcripts.POST("", transcriptHandler.Upload)
		transcripts.POST("/record", transcriptHandler.Record)
		transcripts.GET("", transcriptHandler.List)
		transcripts.GET("/:id", transcriptHandler.Get)
		transcripts.GET("/:id/status", transcriptHandler.GetStatus)
		transcripts.GET("/:id/text", transcriptHandler.GetText)
		transcripts.POST("/:id/start", transcriptHandler.Start)
		transcripts.POST("/:id/retry", transcriptHandler.Retry)
		transcripts.DELETE("/:id", transcriptHandler.Delete)

		transcripts.POST("/:id/questions", qaHandler.Ask)
		transcripts.GET("/:id/questions", qaHandler.List)
		transcripts.GET("/:id/questions/export", qaHandler.Export)
	}

	questions := router.Group("/questions")
	{
		questions.DELETE("/:id", qaHandler.DeleteEntry)
	}
}
