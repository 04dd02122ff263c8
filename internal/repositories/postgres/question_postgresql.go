package postgres

import (
	"context"

	"github.com/brightclass/grading-service/internal/models"
	"gorm.io/gorm"
)

type QuestionPostgreSQL struct {
	db *gorm.DB
}

func (q *QuestionPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	var question models.Question
	if err := q.db.WithContext(ctx).First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (q *QuestionPostgreSQL) GetByIDs(ctx context.Context, ids []uint) ([]*models.Question, error) {
	var questions []*models.Question
	if len(ids) == 0 {
		return questions, nil
	}
	if err := q.db.WithContext(ctx).Where("id IN ?", ids).Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (q *QuestionPostgreSQL) GetByLesson(ctx context.Context, lessonID uint) ([]*models.Question, error) {
	var questions []*models.Question
	if err := q.db.WithContext(ctx).
		Where("lesson_id = ?", lessonID).
		Order("id ASC").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (q *QuestionPostgreSQL) GetPrompts(ctx context.Context, ids []uint) (map[uint]string, error) {
	prompts := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return prompts, nil
	}

	var rows []struct {
		ID     uint
		Prompt string
	}
	if err := q.db.WithContext(ctx).
		Model(&models.Question{}).
		Select("id, prompt").
		Where("id IN ?", ids).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		prompts[row.ID] = row.Prompt
	}
	return prompts, nil
}

func (q *QuestionPostgreSQL) Create(ctx context.Context, question *models.Question) error {
	return q.db.WithContext(ctx).Create(question).Error
}
