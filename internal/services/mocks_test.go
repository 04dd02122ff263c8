package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/brightclass/grading-service/internal/cache"
	"github.com/brightclass/grading-service/internal/grader"
	"github.com/brightclass/grading-service/internal/models"
	"github.com/brightclass/grading-service/internal/repositories"
	"github.com/stretchr/testify/mock"
)

// MockAssignmentRepository is a mock implementation of AssignmentRepository
type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) GetByID(ctx context.Context, id uint) (*models.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) GetWithLesson(ctx context.Context, id uint) (*models.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Assignment), args.Error(1)
}

// MockQuestionRepository is a mock implementation of QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetByIDs(ctx context.Context, ids []uint) ([]*models.Question, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetByLesson(ctx context.Context, lessonID uint) ([]*models.Question, error) {
	args := m.Called(ctx, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetPrompts(ctx context.Context, ids []uint) (map[uint]string, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint]string), args.Error(1)
}

func (m *MockQuestionRepository) Create(ctx context.Context, question *models.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

// MockSubmissionRepository is a mock implementation of SubmissionRepository
type MockSubmissionRepository struct {
	mock.Mock

	nextSubmissionID uint
	nextResponseID   uint
	mu               sync.Mutex
}

func (m *MockSubmissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	args := m.Called(ctx, submission)
	if args.Error(0) == nil {
		m.mu.Lock()
		m.nextSubmissionID++
		submission.ID = m.nextSubmissionID
		m.mu.Unlock()
	}
	return args.Error(0)
}

func (m *MockSubmissionRepository) GetByID(ctx context.Context, id uint) (*models.Submission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) GetByAssignment(ctx context.Context, assignmentID uint) ([]*models.Submission, error) {
	args := m.Called(ctx, assignmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) CreateResponse(ctx context.Context, response *models.Response) error {
	args := m.Called(ctx, response)
	if args.Error(0) == nil {
		m.mu.Lock()
		m.nextResponseID++
		response.ID = m.nextResponseID
		m.mu.Unlock()
	}
	return args.Error(0)
}

func (m *MockSubmissionRepository) GetResponsesBySubmissions(ctx context.Context, submissionIDs []uint) ([]*models.Response, error) {
	args := m.Called(ctx, submissionIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Response), args.Error(1)
}

func (m *MockSubmissionRepository) GetSubmissionScoreMeans(ctx context.Context, submissionIDs []uint) (map[uint]float64, error) {
	args := m.Called(ctx, submissionIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint]float64), args.Error(1)
}

func (m *MockSubmissionRepository) GetMostMissed(ctx context.Context, submissionIDs []uint, limit int) ([]*repositories.QuestionMissStat, error) {
	args := m.Called(ctx, submissionIDs, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repositories.QuestionMissStat), args.Error(1)
}

// MockMasteryRepository is a mock implementation of MasteryRepository
type MockMasteryRepository struct {
	mock.Mock
}

func (m *MockMasteryRepository) Upsert(ctx context.Context, studentID uint, skillTag string, pct int) error {
	args := m.Called(ctx, studentID, skillTag, pct)
	return args.Error(0)
}

func (m *MockMasteryRepository) GetByStudent(ctx context.Context, studentID uint) ([]*models.Mastery, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Mastery), args.Error(1)
}

func (m *MockMasteryRepository) Get(ctx context.Context, studentID uint, skillTag string) (*models.Mastery, error) {
	args := m.Called(ctx, studentID, skillTag)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mastery), args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByIDAndRole(ctx context.Context, id uint, role models.UserRole) (*models.User, error) {
	args := m.Called(ctx, id, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockRepository aggregates the per-aggregate mocks and doubles as its own
// transaction: Begin hands the same instance back and records the call, so
// tests can assert that Commit or Rollback happened.
type MockRepository struct {
	mock.Mock

	assignmentRepo *MockAssignmentRepository
	questionRepo   *MockQuestionRepository
	submissionRepo *MockSubmissionRepository
	masteryRepo    *MockMasteryRepository
	userRepo       *MockUserRepository
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		assignmentRepo: &MockAssignmentRepository{},
		questionRepo:   &MockQuestionRepository{},
		submissionRepo: &MockSubmissionRepository{},
		masteryRepo:    &MockMasteryRepository{},
		userRepo:       &MockUserRepository{},
	}
}

func (m *MockRepository) Assignment() repositories.AssignmentRepository { return m.assignmentRepo }
func (m *MockRepository) Question() repositories.QuestionRepository    { return m.questionRepo }
func (m *MockRepository) Submission() repositories.SubmissionRepository {
	return m.submissionRepo
}
func (m *MockRepository) Mastery() repositories.MasteryRepository { return m.masteryRepo }
func (m *MockRepository) User() repositories.UserRepository       { return m.userRepo }

func (m *MockRepository) Begin(ctx context.Context) (repositories.Repository, error) {
	args := m.Called(ctx)
	if args.Error(0) != nil {
		return nil, args.Error(0)
	}
	return m, nil
}

func (m *MockRepository) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRepository) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockGrader is a mock implementation of grader.RubricGrader
type MockGrader struct {
	mock.Mock
}

func (m *MockGrader) GradeShortAnswer(ctx context.Context, answer string, rubricKeywords []string) (*grader.GradeResult, error) {
	args := m.Called(ctx, answer, rubricKeywords)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*grader.GradeResult), args.Error(1)
}

// memoryCache is a trivial in-memory CacheService for exercising the cache
// read/write/invalidate paths without redis.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	sets    int
	deletes int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = data
	c.sets++
	return nil
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.entries[key]
	if !ok {
		return cache.ErrMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	c.deletes++
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
