package models

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

type QuestionType string

const (
	QuestionMCQ   QuestionType = "mcq"
	QuestionShort QuestionType = "short"
)

// Question is immutable after creation. Options and RubricKeywords are stored
// as JSON columns and only decoded through the typed content accessors below.
type Question struct {
	ID       uint         `json:"id" gorm:"primaryKey"`
	LessonID uint         `json:"lesson_id" gorm:"not null;index"`
	Type     QuestionType `json:"type" gorm:"not null;size:16" validate:"required,question_type"`
	Prompt   string       `json:"prompt" gorm:"not null;type:text" validate:"required"`

	// mcq only
	Options   datatypes.JSON `json:"options,omitempty" gorm:"type:jsonb"`
	AnswerKey *string        `json:"answer_key,omitempty" gorm:"type:text"`

	// short only
	RubricKeywords datatypes.JSON `json:"rubric_keywords,omitempty" gorm:"type:jsonb"`
}

func (Question) TableName() string {
	return "questions"
}

// MCQContent is the decoded content of a multiple-choice question.
type MCQContent struct {
	Options   []string `json:"options"`
	AnswerKey string   `json:"answer_key"`
}

// ShortContent is the decoded content of a free-text question.
type ShortContent struct {
	RubricKeywords []string `json:"rubric_keywords"`
}

// MCQ decodes the stored option list and answer key.
func (q *Question) MCQ() (*MCQContent, error) {
	if q.Type != QuestionMCQ {
		return nil, fmt.Errorf("question %d is not mcq (type %s)", q.ID, q.Type)
	}

	content := &MCQContent{}
	if len(q.Options) > 0 {
		if err := json.Unmarshal(q.Options, &content.Options); err != nil {
			return nil, fmt.Errorf("question %d has malformed options: %w", q.ID, err)
		}
	}
	if q.AnswerKey != nil {
		content.AnswerKey = *q.AnswerKey
	}

	return content, nil
}

// Short decodes the stored rubric keyword list. A missing column decodes to an
// empty rubric, which the grading service forwards as-is.
func (q *Question) Short() (*ShortContent, error) {
	if q.Type != QuestionShort {
		return nil, fmt.Errorf("question %d is not short (type %s)", q.ID, q.Type)
	}

	content := &ShortContent{}
	if len(q.RubricKeywords) > 0 {
		if err := json.Unmarshal(q.RubricKeywords, &content.RubricKeywords); err != nil {
			return nil, fmt.Errorf("question %d has malformed rubric keywords: %w", q.ID, err)
		}
	}

	return content, nil
}

// NewMCQQuestion encodes MCQ content into the stored representation.
func NewMCQQuestion(lessonID uint, prompt string, options []string, answerKey string) (*Question, error) {
	encoded, err := json.Marshal(options)
	if err != nil {
		return nil, fmt.Errorf("failed to encode options: %w", err)
	}

	return &Question{
		LessonID:  lessonID,
		Type:      QuestionMCQ,
		Prompt:    prompt,
		Options:   encoded,
		AnswerKey: &answerKey,
	}, nil
}

// NewShortQuestion encodes free-text content into the stored representation.
func NewShortQuestion(lessonID uint, prompt string, rubricKeywords []string) (*Question, error) {
	encoded, err := json.Marshal(rubricKeywords)
	if err != nil {
		return nil, fmt.Errorf("failed to encode rubric keywords: %w", err)
	}

	return &Question{
		LessonID:       lessonID,
		Type:           QuestionShort,
		Prompt:         prompt,
		RubricKeywords: encoded,
	}, nil
}
