package models

import (
	"time"
)

// Submission is created once per submit call. The schema deliberately has no
// uniqueness constraint on (assignment_id, student_id): students may resubmit,
// and mastery keeps the latest observed result.
type Submission struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	AssignmentID uint      `json:"assignment_id" gorm:"not null;index"`
	StudentID    uint      `json:"student_id" gorm:"not null;index"`
	SubmittedAt  time.Time `json:"submitted_at" gorm:"not null;autoCreateTime"`

	// Relations
	Student   User       `json:"student" gorm:"foreignKey:StudentID"`
	Responses []Response `json:"responses" gorm:"foreignKey:SubmissionID"`
}

func (Submission) TableName() string {
	return "submissions"
}

// Response records one graded answer. Immutable after creation, owned
// exclusively by its submission.
type Response struct {
	ID            uint    `json:"id" gorm:"primaryKey"`
	SubmissionID  uint    `json:"submission_id" gorm:"not null;index"`
	QuestionID    uint    `json:"question_id" gorm:"not null;index"`
	StudentAnswer string  `json:"student_answer" gorm:"type:text"`
	Score         float64 `json:"score" gorm:"not null"` // 0..1
	Feedback      string  `json:"feedback" gorm:"type:text"`
}

func (Response) TableName() string {
	return "responses"
}
