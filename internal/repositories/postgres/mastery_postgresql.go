package postgres

import (
	"context"
	"time"

	"github.com/brightclass/grading-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MasteryPostgreSQL struct {
	db *gorm.DB
}

// Upsert relies on ON CONFLICT so concurrent writes to the same (student,
// skill) key are serialized by the database: last committed write wins.
func (m *MasteryPostgreSQL) Upsert(ctx context.Context, studentID uint, skillTag string, pct int) error {
	row := models.Mastery{
		StudentID:   studentID,
		SkillTag:    skillTag,
		MasteryPct:  pct,
		LastUpdated: time.Now().UTC(),
	}

	return m.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "skill_tag"}},
			DoUpdates: clause.AssignmentColumns([]string{"mastery_pct", "last_updated"}),
		}).
		Create(&row).Error
}

func (m *MasteryPostgreSQL) GetByStudent(ctx context.Context, studentID uint) ([]*models.Mastery, error) {
	var rows []*models.Mastery
	if err := m.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("skill_tag ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (m *MasteryPostgreSQL) Get(ctx context.Context, studentID uint, skillTag string) (*models.Mastery, error) {
	var row models.Mastery
	if err := m.db.WithContext(ctx).
		Where("student_id = ? AND skill_tag = ?", studentID, skillTag).
		First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}
