package services

import (
	"context"
	"time"
)

// ===== REQUEST / RESPONSE TYPES =====

type SubmitAnswer struct {
	QuestionID uint   `json:"question_id" validate:"required"`
	Answer     string `json:"answer"`
}

type SubmitRequest struct {
	AssignmentID uint           `json:"assignment_id" validate:"required"`
	StudentID    uint           `json:"student_id" validate:"required"`
	Answers      []SubmitAnswer `json:"answers" validate:"required,min=1,dive"`
}

type ResponseResult struct {
	ID         uint    `json:"id"`
	QuestionID uint    `json:"question_id"`
	Score      float64 `json:"score"`
	Feedback   string  `json:"feedback"`
}

type SubmitResult struct {
	SubmissionID uint             `json:"submission_id"`
	ScorePct     int              `json:"score_pct"`
	Responses    []ResponseResult `json:"responses"`
}

type SubmissionScore struct {
	ID          uint      `json:"id"`
	StudentID   uint      `json:"student_id"`
	StudentName string    `json:"student_name"`
	SubmittedAt time.Time `json:"submitted_at"`
	ScorePct    int       `json:"score_pct"`
}

type QuestionInsight struct {
	QuestionID  uint   `json:"question_id"`
	Prompt      string `json:"prompt"`
	MissRatePct int    `json:"miss_rate_pct"`
}

// Insights carries either the ranked most-missed questions or, when the
// assignment has no submissions yet, an informational message.
type Insights struct {
	Message   string            `json:"message,omitempty"`
	Questions []QuestionInsight `json:"questions,omitempty"`
}

type AssignmentResults struct {
	Submissions []SubmissionScore `json:"submissions"`
	AveragePct  *int              `json:"average_pct"`
	Insights    Insights          `json:"insights"`
}

type SkillMastery struct {
	SkillTag    string    `json:"skill_tag"`
	MasteryPct  int       `json:"mastery_pct"`
	LastUpdated time.Time `json:"last_updated"`
}

type QuizQuestion struct {
	ID      uint     `json:"id"`
	Type    string   `json:"type"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options,omitempty"`
}

type Quiz struct {
	AssignmentID uint           `json:"assignment_id"`
	LessonID     uint           `json:"lesson_id"`
	Title        string         `json:"title"`
	SkillTag     string         `json:"skill_tag"`
	DueAt        time.Time      `json:"due_at"`
	Questions    []QuizQuestion `json:"questions"`
}

// ===== SERVICE INTERFACES =====

// SubmissionService orchestrates one submission: create, score every answer,
// persist responses, aggregate, update mastery.
type SubmissionService interface {
	Submit(ctx context.Context, req *SubmitRequest) (*SubmitResult, error)
}

// ResultsService is the read path: per-student scores, class average, and
// most-missed question insights.
type ResultsService interface {
	GetResults(ctx context.Context, assignmentID uint) (*AssignmentResults, error)
	GetQuiz(ctx context.Context, assignmentID uint) (*Quiz, error)
}

// MasteryService maintains one scalar mastery value per (student, skill).
type MasteryService interface {
	Upsert(ctx context.Context, studentID uint, skillTag string, pct int) error
	GetByStudent(ctx context.Context, studentID uint) ([]SkillMastery, error)
}

// ExportService renders assignment results as a spreadsheet.
type ExportService interface {
	ExportResults(ctx context.Context, assignmentID uint) ([]byte, error)
}

// ServiceManager bundles the services for handler wiring.
type ServiceManager interface {
	Submission() SubmissionService
	Results() ResultsService
	Mastery() MasteryService
	Export() ExportService
}
