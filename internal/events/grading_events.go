package events

import (
	"time"
)

// EventType represents different types of grading pipeline events
type EventType string

const (
	EventSubmissionGraded EventType = "submission.graded"
	EventMasteryUpdated   EventType = "mastery.updated"
)

// GradingEvent is the base event structure published after a submission has
// been durably recorded. Consumers (dashboards, notifications) are outside
// this service.
type GradingEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type SubmissionGradedEvent struct {
	SubmissionID  uint      `json:"submission_id"`
	AssignmentID  uint      `json:"assignment_id"`
	StudentID     uint      `json:"student_id"`
	ScorePct      int       `json:"score_pct"`
	ResponseCount int       `json:"response_count"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

type MasteryUpdatedEvent struct {
	StudentID  uint   `json:"student_id"`
	SkillTag   string `json:"skill_tag"`
	MasteryPct int    `json:"mastery_pct"`
}
