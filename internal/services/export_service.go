package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"
)

type exportService struct {
	results ResultsService
	logger  *slog.Logger
}

func NewExportService(results ResultsService, logger *slog.Logger) ExportService {
	return &exportService{
		results: results,
		logger:  logger,
	}
}

// ExportResults renders an assignment's results as an xlsx workbook with one
// sheet of per-student scores and one of most-missed question insights.
func (s *exportService) ExportResults(ctx context.Context, assignmentID uint) ([]byte, error) {
	s.logger.Info("Exporting assignment results", "assignment_id", assignmentID)

	results, err := s.results.GetResults(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()

	scoreSheet := "Scores"
	index, err := f.NewSheet(scoreSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	scoreHeaders := []string{"Submission ID", "Student ID", "Student Name", "Submitted At", "Score %"}
	for i, header := range scoreHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(scoreSheet, cell, header)
	}

	for rowIndex, sub := range results.Submissions {
		row := rowIndex + 2
		f.SetCellValue(scoreSheet, fmt.Sprintf("A%d", row), sub.ID)
		f.SetCellValue(scoreSheet, fmt.Sprintf("B%d", row), sub.StudentID)
		f.SetCellValue(scoreSheet, fmt.Sprintf("C%d", row), sub.StudentName)
		f.SetCellValue(scoreSheet, fmt.Sprintf("D%d", row), sub.SubmittedAt.Format("2006-01-02 15:04:05"))
		f.SetCellValue(scoreSheet, fmt.Sprintf("E%d", row), sub.ScorePct)
	}

	summaryRow := len(results.Submissions) + 3
	f.SetCellValue(scoreSheet, fmt.Sprintf("A%d", summaryRow), "Class average %")
	if results.AveragePct != nil {
		f.SetCellValue(scoreSheet, fmt.Sprintf("B%d", summaryRow), *results.AveragePct)
	} else {
		f.SetCellValue(scoreSheet, fmt.Sprintf("B%d", summaryRow), noSubmissionsMessage)
	}

	insightSheet := "Most Missed"
	if _, err := f.NewSheet(insightSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	insightHeaders := []string{"Question ID", "Prompt", "Miss Rate %"}
	for i, header := range insightHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(insightSheet, cell, header)
	}
	for rowIndex, insight := range results.Insights.Questions {
		row := rowIndex + 2
		f.SetCellValue(insightSheet, fmt.Sprintf("A%d", row), insight.QuestionID)
		f.SetCellValue(insightSheet, fmt.Sprintf("B%d", row), insight.Prompt)
		f.SetCellValue(insightSheet, fmt.Sprintf("C%d", row), insight.MissRatePct)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	return buf.Bytes(), nil
}
