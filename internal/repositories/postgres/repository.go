package postgres

import (
	"context"
	"fmt"

	"github.com/brightclass/grading-service/internal/repositories"
	"gorm.io/gorm"
)

// gormRepository implements repositories.Repository and
// repositories.TransactionRepository on top of a *gorm.DB. A transactional
// copy shares no state with its parent beyond the underlying connection.
type gormRepository struct {
	db   *gorm.DB
	inTx bool
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Assignment() repositories.AssignmentRepository {
	return &AssignmentPostgreSQL{db: r.db}
}

func (r *gormRepository) Question() repositories.QuestionRepository {
	return &QuestionPostgreSQL{db: r.db}
}

func (r *gormRepository) Submission() repositories.SubmissionRepository {
	return &SubmissionPostgreSQL{db: r.db}
}

func (r *gormRepository) Mastery() repositories.MasteryRepository {
	return &MasteryPostgreSQL{db: r.db}
}

func (r *gormRepository) User() repositories.UserRepository {
	return &UserPostgreSQL{db: r.db}
}

// Begin opens a transaction and returns a Repository bound to it.
func (r *gormRepository) Begin(ctx context.Context) (repositories.Repository, error) {
	if r.inTx {
		return nil, fmt.Errorf("transaction already in progress")
	}

	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	return &gormRepository{db: tx, inTx: true}, nil
}

func (r *gormRepository) Commit(ctx context.Context) error {
	if !r.inTx {
		return fmt.Errorf("no transaction in progress")
	}
	return r.db.Commit().Error
}

func (r *gormRepository) Rollback(ctx context.Context) error {
	if !r.inTx {
		return fmt.Errorf("no transaction in progress")
	}
	return r.db.Rollback().Error
}
