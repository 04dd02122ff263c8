package postgres

import (
	"context"

	"github.com/brightclass/grading-service/internal/models"
	"github.com/brightclass/grading-service/internal/repositories"
	"gorm.io/gorm"
)

type SubmissionPostgreSQL struct {
	db *gorm.DB
}

func (s *SubmissionPostgreSQL) Create(ctx context.Context, submission *models.Submission) error {
	return s.db.WithContext(ctx).Create(submission).Error
}

func (s *SubmissionPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Submission, error) {
	var submission models.Submission
	if err := s.db.WithContext(ctx).
		Preload("Responses").
		First(&submission, id).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

func (s *SubmissionPostgreSQL) GetByAssignment(ctx context.Context, assignmentID uint) ([]*models.Submission, error) {
	var submissions []*models.Submission
	if err := s.db.WithContext(ctx).
		Where("assignment_id = ?", assignmentID).
		Preload("Student").
		Order("submitted_at DESC").
		Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}

func (s *SubmissionPostgreSQL) CreateResponse(ctx context.Context, response *models.Response) error {
	return s.db.WithContext(ctx).Create(response).Error
}

func (s *SubmissionPostgreSQL) GetResponsesBySubmissions(ctx context.Context, submissionIDs []uint) ([]*models.Response, error) {
	var responses []*models.Response
	if len(submissionIDs) == 0 {
		return responses, nil
	}
	if err := s.db.WithContext(ctx).
		Where("submission_id IN ?", submissionIDs).
		Find(&responses).Error; err != nil {
		return nil, err
	}
	return responses, nil
}

func (s *SubmissionPostgreSQL) GetSubmissionScoreMeans(ctx context.Context, submissionIDs []uint) (map[uint]float64, error) {
	means := make(map[uint]float64, len(submissionIDs))
	if len(submissionIDs) == 0 {
		return means, nil
	}

	var rows []struct {
		SubmissionID uint
		AvgScore     float64
	}
	if err := s.db.WithContext(ctx).
		Model(&models.Response{}).
		Select("submission_id, AVG(score) AS avg_score").
		Where("submission_id IN ?", submissionIDs).
		Group("submission_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		means[row.SubmissionID] = row.AvgScore
	}
	return means, nil
}

func (s *SubmissionPostgreSQL) GetMostMissed(ctx context.Context, submissionIDs []uint, limit int) ([]*repositories.QuestionMissStat, error) {
	var stats []*repositories.QuestionMissStat
	if len(submissionIDs) == 0 {
		return stats, nil
	}

	// Secondary sort on question_id keeps equal miss counts deterministic.
	if err := s.db.WithContext(ctx).
		Model(&models.Response{}).
		Select("question_id, SUM(CASE WHEN score < 0.5 THEN 1 ELSE 0 END) AS misses, COUNT(*) AS total").
		Where("submission_id IN ?", submissionIDs).
		Group("question_id").
		Order("misses DESC, question_id ASC").
		Limit(limit).
		Scan(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
