package handlers

import (
	"github.com/brightclass/grading-service/internal/services"
	"github.com/brightclass/grading-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	submissionHandler *SubmissionHandler
	resultsHandler    *ResultsHandler
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		submissionHandler: NewSubmissionHandler(serviceManager.Submission(), logger),
		resultsHandler: NewResultsHandler(
			serviceManager.Results(),
			serviceManager.Mastery(),
			serviceManager.Export(),
			logger,
		),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		submissions := v1.Group("/submissions")
		{
			submissions.POST("", hm.submissionHandler.Submit)
		}

		assignments := v1.Group("/assignments")
		{
			assignments.GET("/:id/quiz", hm.resultsHandler.GetQuiz)
			assignments.GET("/:id/results", hm.resultsHandler.GetResults)
			assignments.GET("/:id/results/export", hm.resultsHandler.ExportResults)
		}

		students := v1.Group("/students")
		{
			students.GET("/:id/mastery", hm.resultsHandler.GetStudentMastery)
		}
	}
}
