package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/brightclass/grading-service/internal/grader"
	"github.com/brightclass/grading-service/internal/models"
)

// feedback returned when a grading call times out; the answer still gets a
// persisted response with score 0 instead of failing the whole submission.
const gradingUnavailableFeedback = "Grading unavailable"

// ScoredAnswer is the outcome of scoring one answer.
type ScoredAnswer struct {
	Score    float64
	Feedback string
}

// AnswerScorer makes the per-question scoring decision: exact match for
// multiple choice, delegated to the rubric grader for free text.
type AnswerScorer struct {
	grader grader.RubricGrader
}

func NewAnswerScorer(rubricGrader grader.RubricGrader) *AnswerScorer {
	return &AnswerScorer{grader: rubricGrader}
}

func (s *AnswerScorer) Score(ctx context.Context, question *models.Question, answer string) (*ScoredAnswer, error) {
	switch question.Type {
	case models.QuestionMCQ:
		return s.scoreMCQ(question, answer)
	case models.QuestionShort:
		return s.scoreShort(ctx, question, answer)
	default:
		return nil, fmt.Errorf("%w: question %d has unsupported type %q", ErrValidationFailed, question.ID, question.Type)
	}
}

// scoreMCQ compares trimmed answers exactly and case-sensitively.
func (s *AnswerScorer) scoreMCQ(question *models.Question, answer string) (*ScoredAnswer, error) {
	content, err := question.MCQ()
	if err != nil {
		return nil, fmt.Errorf("failed to decode mcq content: %w", err)
	}

	if strings.TrimSpace(answer) == strings.TrimSpace(content.AnswerKey) {
		return &ScoredAnswer{Score: 1, Feedback: "Correct"}, nil
	}
	return &ScoredAnswer{Score: 0, Feedback: "Correct answer: " + content.AnswerKey}, nil
}

// scoreShort delegates to the rubric grader. The returned score is trusted to
// be in [0,1]. A timeout is scoreable (zero credit); any other grader failure
// aborts with a dependency failure and no partial credit.
func (s *AnswerScorer) scoreShort(ctx context.Context, question *models.Question, answer string) (*ScoredAnswer, error) {
	content, err := question.Short()
	if err != nil {
		return nil, fmt.Errorf("failed to decode short answer content: %w", err)
	}

	result, err := s.grader.GradeShortAnswer(ctx, answer, content.RubricKeywords)
	if err != nil {
		if errors.Is(err, grader.ErrTimeout) {
			return &ScoredAnswer{Score: 0, Feedback: gradingUnavailableFeedback}, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrGradingUnavailable, err)
	}

	return &ScoredAnswer{Score: result.Score, Feedback: result.Feedback}, nil
}
