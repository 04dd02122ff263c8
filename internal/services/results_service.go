package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/brightclass/grading-service/internal/cache"
	"github.com/brightclass/grading-service/internal/models"
	"github.com/brightclass/grading-service/internal/repositories"
)

const (
	noSubmissionsMessage = "No submissions yet"
	topMissedLimit       = 5
)

type resultsService struct {
	repo     repositories.Repository
	cache    cache.CacheService
	logger   *slog.Logger
	cacheTTL time.Duration
}

func NewResultsService(repo repositories.Repository, cacheService cache.CacheService, logger *slog.Logger, cacheTTL time.Duration) ResultsService {
	return &resultsService{
		repo:     repo,
		cache:    cacheService,
		logger:   logger,
		cacheTTL: cacheTTL,
	}
}

func resultsCacheKey(assignmentID uint) string {
	return fmt.Sprintf("results:assignment:%d", assignmentID)
}

// GetResults turns stored submissions and responses into per-student scores,
// a class average, and ranked most-missed question insights. An assignment
// with no submissions is a normal outcome, never an error.
func (s *resultsService) GetResults(ctx context.Context, assignmentID uint) (*AssignmentResults, error) {
	var cached AssignmentResults
	if err := s.cache.Get(ctx, resultsCacheKey(assignmentID), &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("Results cache read failed", "assignment_id", assignmentID, "error", err)
	}

	if _, err := s.repo.Assignment().GetByID(ctx, assignmentID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	submissions, err := s.repo.Submission().GetByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load submissions: %w", err)
	}

	if len(submissions) == 0 {
		return &AssignmentResults{
			Submissions: []SubmissionScore{},
			AveragePct:  nil,
			Insights:    Insights{Message: noSubmissionsMessage},
		}, nil
	}

	submissionIDs := make([]uint, len(submissions))
	for i, sub := range submissions {
		submissionIDs[i] = sub.ID
	}

	scores, err := s.scoreSubmissions(ctx, submissions, submissionIDs)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, score := range scores {
		total += score.ScorePct
	}
	averagePct := int(math.Round(float64(total) / float64(len(scores))))

	insights, err := s.buildInsights(ctx, submissionIDs)
	if err != nil {
		return nil, err
	}

	results := &AssignmentResults{
		Submissions: scores,
		AveragePct:  &averagePct,
		Insights:    Insights{Questions: insights},
	}

	if err := s.cache.Set(ctx, resultsCacheKey(assignmentID), results, s.cacheTTL); err != nil {
		s.logger.Warn("Results cache write failed", "assignment_id", assignmentID, "error", err)
	}

	return results, nil
}

// scoreSubmissions computes each submission's percentage from the mean of its
// response scores. A submission with zero responses scores 0.
func (s *resultsService) scoreSubmissions(ctx context.Context, submissions []*models.Submission, submissionIDs []uint) ([]SubmissionScore, error) {
	means, err := s.repo.Submission().GetSubmissionScoreMeans(ctx, submissionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate response scores: %w", err)
	}

	scores := make([]SubmissionScore, len(submissions))
	for i, sub := range submissions {
		mean := means[sub.ID] // zero responses -> 0
		scores[i] = SubmissionScore{
			ID:          sub.ID,
			StudentID:   sub.StudentID,
			StudentName: sub.Student.Name,
			SubmittedAt: sub.SubmittedAt,
			ScorePct:    roundPct(mean, 1),
		}
	}
	return scores, nil
}

// buildInsights ranks questions by miss count (score < 0.5), ties broken by
// ascending question id, and resolves prompt text for the top entries.
func (s *resultsService) buildInsights(ctx context.Context, submissionIDs []uint) ([]QuestionInsight, error) {
	missed, err := s.repo.Submission().GetMostMissed(ctx, submissionIDs, topMissedLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate missed questions: %w", err)
	}

	questionIDs := make([]uint, len(missed))
	for i, stat := range missed {
		questionIDs[i] = stat.QuestionID
	}
	prompts, err := s.repo.Question().GetPrompts(ctx, questionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve question prompts: %w", err)
	}

	insights := make([]QuestionInsight, len(missed))
	for i, stat := range missed {
		insights[i] = QuestionInsight{
			QuestionID:  stat.QuestionID,
			Prompt:      prompts[stat.QuestionID],
			MissRatePct: roundPct(float64(stat.Misses), float64(stat.Total)),
		}
	}
	return insights, nil
}

// GetQuiz returns an assignment's question set for taking the quiz. Answer
// keys and rubric keywords never leave the service.
func (s *resultsService) GetQuiz(ctx context.Context, assignmentID uint) (*Quiz, error) {
	assignment, err := s.repo.Assignment().GetWithLesson(ctx, assignmentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	questions, err := s.repo.Question().GetByLesson(ctx, assignment.LessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}

	quizQuestions := make([]QuizQuestion, len(questions))
	for i, q := range questions {
		quizQuestions[i] = QuizQuestion{
			ID:     q.ID,
			Type:   string(q.Type),
			Prompt: q.Prompt,
		}
		if q.Type == models.QuestionMCQ {
			content, err := q.MCQ()
			if err != nil {
				return nil, err
			}
			quizQuestions[i].Options = content.Options
		}
	}

	return &Quiz{
		AssignmentID: assignment.ID,
		LessonID:     assignment.LessonID,
		Title:        assignment.Lesson.Title,
		SkillTag:     assignment.Lesson.SkillTag,
		DueAt:        assignment.DueAt,
		Questions:    quizQuestions,
	}, nil
}
