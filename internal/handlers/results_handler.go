package handlers

import (
	"fmt"
	"net/http"

	"github.com/brightclass/grading-service/internal/services"
	"github.com/brightclass/grading-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type ResultsHandler struct {
	BaseHandler
	resultsService services.ResultsService
	masteryService services.MasteryService
	exportService  services.ExportService
}

func NewResultsHandler(
	resultsService services.ResultsService,
	masteryService services.MasteryService,
	exportService services.ExportService,
	logger utils.Logger,
) *ResultsHandler {
	return &ResultsHandler{
		BaseHandler:    NewBaseHandler(logger),
		resultsService: resultsService,
		masteryService: masteryService,
		exportService:  exportService,
	}
}

// GetResults returns per-student scores, class average, and insights
// @Summary Get assignment results
// @Tags results
// @Produce json
// @Param id path uint true "Assignment ID"
// @Success 200 {object} services.AssignmentResults
// @Failure 404 {object} ErrorResponse
// @Router /assignments/{id}/results [get]
func (h *ResultsHandler) GetResults(c *gin.Context) {
	assignmentID := h.parseIDParam(c, "id")
	if assignmentID == 0 {
		return
	}

	h.LogRequest(c, "Getting assignment results", "assignment_id", assignmentID)

	results, err := h.resultsService.GetResults(c.Request.Context(), assignmentID)
	if err != nil {
		h.handleServiceError(c, err, "Results fetch failed")
		return
	}

	c.JSON(http.StatusOK, results)
}

// ExportResults streams the results as an xlsx workbook
// @Summary Export assignment results
// @Tags results
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path uint true "Assignment ID"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse
// @Router /assignments/{id}/results/export [get]
func (h *ResultsHandler) ExportResults(c *gin.Context) {
	assignmentID := h.parseIDParam(c, "id")
	if assignmentID == 0 {
		return
	}

	h.LogRequest(c, "Exporting assignment results", "assignment_id", assignmentID)

	data, err := h.exportService.ExportResults(c.Request.Context(), assignmentID)
	if err != nil {
		h.handleServiceError(c, err, "Results export failed")
		return
	}

	filename := fmt.Sprintf("assignment-%d-results.xlsx", assignmentID)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// GetQuiz returns the assignment's quiz with answer keys redacted
// @Summary Get assignment quiz
// @Tags results
// @Produce json
// @Param id path uint true "Assignment ID"
// @Success 200 {object} services.Quiz
// @Failure 404 {object} ErrorResponse
// @Router /assignments/{id}/quiz [get]
func (h *ResultsHandler) GetQuiz(c *gin.Context) {
	assignmentID := h.parseIDParam(c, "id")
	if assignmentID == 0 {
		return
	}

	h.LogRequest(c, "Getting assignment quiz", "assignment_id", assignmentID)

	quiz, err := h.resultsService.GetQuiz(c.Request.Context(), assignmentID)
	if err != nil {
		h.handleServiceError(c, err, "Quiz fetch failed")
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// GetStudentMastery returns the per-skill mastery map for a student
// @Summary Get student mastery
// @Tags mastery
// @Produce json
// @Param id path uint true "Student ID"
// @Success 200 {array} services.SkillMastery
// @Failure 404 {object} ErrorResponse
// @Router /students/{id}/mastery [get]
func (h *ResultsHandler) GetStudentMastery(c *gin.Context) {
	studentID := h.parseIDParam(c, "id")
	if studentID == 0 {
		return
	}

	h.LogRequest(c, "Getting student mastery", "student_id", studentID)

	mastery, err := h.masteryService.GetByStudent(c.Request.Context(), studentID)
	if err != nil {
		h.handleServiceError(c, err, "Mastery fetch failed")
		return
	}

	c.JSON(http.StatusOK, mastery)
}
