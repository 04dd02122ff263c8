package handlers

import (
	"net/http"

	"github.com/brightclass/grading-service/internal/services"
	"github.com/brightclass/grading-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type SubmissionHandler struct {
	BaseHandler
	submissionService services.SubmissionService
}

func NewSubmissionHandler(submissionService services.SubmissionService, logger utils.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		BaseHandler:       NewBaseHandler(logger),
		submissionService: submissionService,
	}
}

// Submit grades and records a quiz submission
// @Summary Submit quiz answers
// @Description Scores every answer, persists the responses, and updates skill mastery
// @Tags submissions
// @Accept json
// @Produce json
// @Param submission body services.SubmitRequest true "Submission payload"
// @Success 201 {object} services.SubmitResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /submissions [post]
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var req services.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Submitting answers",
		"assignment_id", req.AssignmentID,
		"student_id", req.StudentID,
		"answers_count", len(req.Answers))

	result, err := h.submissionService.Submit(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err, "Submit failed")
		return
	}

	c.JSON(http.StatusCreated, result)
}
