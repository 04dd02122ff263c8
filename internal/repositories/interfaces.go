package repositories

import (
	"context"

	"github.com/brightclass/grading-service/internal/models"
)

// Repository aggregates the per-aggregate repositories. Implementations bound
// to a transaction are obtained through TransactionRepository.Begin.
type Repository interface {
	Assignment() AssignmentRepository
	Question() QuestionRepository
	Submission() SubmissionRepository
	Mastery() MasteryRepository
	User() UserRepository
}

// TransactionRepository is implemented by repositories that can open an
// explicit unit of work. The returned Repository is bound to the transaction;
// Commit/Rollback must be called on it, not on the parent.
type TransactionRepository interface {
	Begin(ctx context.Context) (Repository, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type AssignmentRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Assignment, error)
	// GetWithLesson preloads the lesson so callers can resolve the skill tag
	// and question set without a second round trip.
	GetWithLesson(ctx context.Context, id uint) (*models.Assignment, error)
}

type QuestionRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Question, error)
	// GetByIDs batch-loads questions; callers are responsible for detecting
	// ids with no matching row.
	GetByIDs(ctx context.Context, ids []uint) ([]*models.Question, error)
	GetByLesson(ctx context.Context, lessonID uint) ([]*models.Question, error)
	GetPrompts(ctx context.Context, ids []uint) (map[uint]string, error)
	Create(ctx context.Context, question *models.Question) error
}

type SubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	GetByID(ctx context.Context, id uint) (*models.Submission, error)
	// GetByAssignment returns submissions newest-first with the student
	// relation preloaded.
	GetByAssignment(ctx context.Context, assignmentID uint) ([]*models.Submission, error)
	CreateResponse(ctx context.Context, response *models.Response) error
	GetResponsesBySubmissions(ctx context.Context, submissionIDs []uint) ([]*models.Response, error)
	// GetSubmissionScoreMeans returns AVG(score) per submission id.
	GetSubmissionScoreMeans(ctx context.Context, submissionIDs []uint) (map[uint]float64, error)
	// GetMostMissed aggregates responses by question: misses (score < 0.5)
	// and totals, ordered by misses desc then question id asc, capped at limit.
	GetMostMissed(ctx context.Context, submissionIDs []uint, limit int) ([]*QuestionMissStat, error)
}

type MasteryRepository interface {
	// Upsert inserts the (student, skill) row or overwrites mastery_pct and
	// last_updated, atomically via the storage engine's conflict handling.
	Upsert(ctx context.Context, studentID uint, skillTag string, pct int) error
	GetByStudent(ctx context.Context, studentID uint) ([]*models.Mastery, error)
	Get(ctx context.Context, studentID uint, skillTag string) (*models.Mastery, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByIDAndRole(ctx context.Context, id uint, role models.UserRole) (*models.User, error)
}

// ===== SHARED STATISTICS STRUCTS =====

type QuestionMissStat struct {
	QuestionID uint  `json:"question_id"`
	Misses     int64 `json:"misses"`
	Total      int64 `json:"total"`
}
