package postgres

import (
	"context"

	"github.com/brightclass/grading-service/internal/models"
	"gorm.io/gorm"
)

type AssignmentPostgreSQL struct {
	db *gorm.DB
}

func (a *AssignmentPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Assignment, error) {
	var assignment models.Assignment
	if err := a.db.WithContext(ctx).First(&assignment, id).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (a *AssignmentPostgreSQL) GetWithLesson(ctx context.Context, id uint) (*models.Assignment, error) {
	var assignment models.Assignment
	if err := a.db.WithContext(ctx).
		Preload("Lesson").
		First(&assignment, id).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

type UserPostgreSQL struct {
	db *gorm.DB
}

func (u *UserPostgreSQL) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserPostgreSQL) GetByIDAndRole(ctx context.Context, id uint, role models.UserRole) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).
		Where("id = ? AND role = ?", id, role).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
