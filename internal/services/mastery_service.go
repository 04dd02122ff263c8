package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/brightclass/grading-service/internal/repositories"
)

type masteryService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewMasteryService(repo repositories.Repository, logger *slog.Logger) MasteryService {
	return &masteryService{
		repo:   repo,
		logger: logger,
	}
}

// Upsert replaces the (student, skill) mastery value wholesale. No weighting
// across historical submissions: the latest graded result wins.
func (s *masteryService) Upsert(ctx context.Context, studentID uint, skillTag string, pct int) error {
	if skillTag == "" {
		return NewValidationError("skill_tag", "is required", skillTag)
	}
	if pct < 0 || pct > 100 {
		return NewValidationError("mastery_pct", "must be between 0 and 100", pct)
	}

	if err := s.repo.Mastery().Upsert(ctx, studentID, skillTag, pct); err != nil {
		return fmt.Errorf("failed to upsert mastery: %w", err)
	}

	s.logger.Info("Mastery updated",
		"student_id", studentID,
		"skill_tag", skillTag,
		"mastery_pct", pct)
	return nil
}

func (s *masteryService) GetByStudent(ctx context.Context, studentID uint) ([]SkillMastery, error) {
	rows, err := s.repo.Mastery().GetByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get mastery for student %d: %w", studentID, err)
	}

	mastery := make([]SkillMastery, len(rows))
	for i, row := range rows {
		mastery[i] = SkillMastery{
			SkillTag:    row.SkillTag,
			MasteryPct:  row.MasteryPct,
			LastUpdated: row.LastUpdated,
		}
	}
	return mastery, nil
}
