package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/brightclass/grading-service/internal/services"
	"github.com/brightclass/grading-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// ===== COMMON RESPONSE STRUCTURES =====

// ErrorResponse represents an error response. Message stays generic; the full
// error detail is kept in the service logs.
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ===== BASE HANDLER STRUCT =====

// BaseHandler provides common logging functionality for all handlers
type BaseHandler struct {
	logger utils.Logger
}

// NewBaseHandler creates a new base handler with logging capability
func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{
		logger: logger,
	}
}

// LogRequest logs incoming HTTP requests with context information
func (h *BaseHandler) LogRequest(c *gin.Context, message string, additionalFields ...interface{}) {
	fields := []interface{}{
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"remote_addr", c.ClientIP(),
		"request_id", c.GetHeader("X-Request-ID"),
		"timestamp", time.Now().Format(time.RFC3339),
	}
	fields = append(fields, additionalFields...)

	h.logger.Info(message, fields...)
}

// LogError logs an error alongside the request path
func (h *BaseHandler) LogError(c *gin.Context, err error, message string) {
	h.logger.LogError(err, message,
		"method", c.Request.Method,
		"path", c.Request.URL.Path)
}

// parseIDParam parses a uint path parameter, replying 400 on failure.
func (h *BaseHandler) parseIDParam(c *gin.Context, param string) uint {
	idStr := c.Param(param)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: err.Error(),
		})
		return 0
	}
	return uint(id)
}

// handleServiceError maps service error kinds to HTTP statuses. User-facing
// messages stay generic; callers pass the failure verb ("Submit failed").
func (h *BaseHandler) handleServiceError(c *gin.Context, err error, failureMessage string) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrors,
		})
		return
	}
	var validationError *services.ValidationError
	if errors.As(err, &validationError) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationError,
		})
		return
	}

	switch {
	case services.IsNotFound(err):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: notFoundMessage(err),
		})
	case services.IsValidation(err):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: err.Error(),
		})
	case services.IsDependencyFailure(err):
		h.LogError(c, err, "Grading dependency failure")
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Message: failureMessage,
		})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: failureMessage,
		})
	}
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrAssignmentNotFound):
		return "Assignment not found"
	case errors.Is(err, services.ErrQuestionNotFound):
		return "Question not found"
	case errors.Is(err, services.ErrStudentNotFound):
		return "Student not found"
	default:
		return "Resource not found"
	}
}

// HealthCheck responds to liveness probes
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
