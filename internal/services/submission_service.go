package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/brightclass/grading-service/internal/cache"
	"github.com/brightclass/grading-service/internal/events"
	"github.com/brightclass/grading-service/internal/models"
	"github.com/brightclass/grading-service/internal/repositories"
	"github.com/brightclass/grading-service/internal/validator"
	"golang.org/x/sync/errgroup"
)

type submissionService struct {
	repo      repositories.Repository
	scorer    *AnswerScorer
	publisher events.EventPublisher
	cache     cache.CacheService
	logger    *slog.Logger
	validator *validator.Validator

	// Upper bound on concurrent rubric grading calls per submission. 1 keeps
	// the grading dependency strictly sequential.
	gradingConcurrency int
}

func NewSubmissionService(
	repo repositories.Repository,
	scorer *AnswerScorer,
	publisher events.EventPublisher,
	cacheService cache.CacheService,
	logger *slog.Logger,
	validator *validator.Validator,
	gradingConcurrency int,
) SubmissionService {
	if gradingConcurrency < 1 {
		gradingConcurrency = 1
	}
	return &submissionService{
		repo:               repo,
		scorer:             scorer,
		publisher:          publisher,
		cache:              cacheService,
		logger:             logger,
		validator:          validator,
		gradingConcurrency: gradingConcurrency,
	}
}

// Submit records one graded submission: creates the submission, scores every
// answer, persists the responses, computes the aggregate percentage, and
// updates the lesson skill's mastery. Everything runs in one transaction;
// nothing is committed unless every step succeeds.
func (s *submissionService) Submit(ctx context.Context, req *SubmitRequest) (result *SubmitResult, err error) {
	s.logger.Info("Submitting answers",
		"assignment_id", req.AssignmentID,
		"student_id", req.StudentID,
		"answers_count", len(req.Answers))

	if err = s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// Resolve the assignment and its lesson skill tag up front
	assignment, err := s.repo.Assignment().GetWithLesson(ctx, req.AssignmentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	// Begin transaction
	txRepo, err := s.repo.(repositories.TransactionRepository).Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			txRepo.(repositories.TransactionRepository).Rollback(ctx)
		}
	}()

	submission := &models.Submission{
		AssignmentID: req.AssignmentID,
		StudentID:    req.StudentID,
		SubmittedAt:  time.Now().UTC(),
	}
	if err = txRepo.Submission().Create(ctx, submission); err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	questions, err := s.loadQuestions(ctx, txRepo, req.Answers)
	if err != nil {
		return nil, err
	}

	scored, err := s.scoreAnswers(ctx, questions, req.Answers)
	if err != nil {
		return nil, err
	}

	responses := make([]ResponseResult, len(req.Answers))
	correct := 0
	for i, answer := range req.Answers {
		row := &models.Response{
			SubmissionID:  submission.ID,
			QuestionID:    answer.QuestionID,
			StudentAnswer: answer.Answer,
			Score:         scored[i].Score,
			Feedback:      scored[i].Feedback,
		}
		if err = txRepo.Submission().CreateResponse(ctx, row); err != nil {
			return nil, fmt.Errorf("failed to persist response for question %d: %w", answer.QuestionID, err)
		}

		if scored[i].Score >= 0.5 {
			correct++
		}
		responses[i] = ResponseResult{
			ID:         row.ID,
			QuestionID: row.QuestionID,
			Score:      row.Score,
			Feedback:   row.Feedback,
		}
	}

	scorePct := roundPct(float64(correct), float64(len(req.Answers)))

	skillTag := assignment.Lesson.SkillTag
	if skillTag != "" {
		if err = txRepo.Mastery().Upsert(ctx, req.StudentID, skillTag, scorePct); err != nil {
			return nil, fmt.Errorf("failed to update mastery: %w", err)
		}
	}

	if err = txRepo.(repositories.TransactionRepository).Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info("Submission recorded",
		"submission_id", submission.ID,
		"assignment_id", req.AssignmentID,
		"student_id", req.StudentID,
		"score_pct", scorePct)

	s.afterCommit(submission, req, scorePct, skillTag)

	return &SubmitResult{
		SubmissionID: submission.ID,
		ScorePct:     scorePct,
		Responses:    responses,
	}, nil
}

// loadQuestions batch-loads the referenced questions and rejects any id with
// no matching row instead of failing later on a missing map entry.
func (s *submissionService) loadQuestions(ctx context.Context, txRepo repositories.Repository, answers []SubmitAnswer) (map[uint]*models.Question, error) {
	ids := make([]uint, 0, len(answers))
	seen := make(map[uint]bool, len(answers))
	for _, answer := range answers {
		if !seen[answer.QuestionID] {
			seen[answer.QuestionID] = true
			ids = append(ids, answer.QuestionID)
		}
	}

	rows, err := txRepo.Question().GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}

	questions := make(map[uint]*models.Question, len(rows))
	for _, q := range rows {
		questions[q.ID] = q
	}
	for _, id := range ids {
		if questions[id] == nil {
			return nil, fmt.Errorf("%w: question %d", ErrQuestionNotFound, id)
		}
	}

	return questions, nil
}

// scoreAnswers grades every answer, fanning rubric calls out across at most
// gradingConcurrency goroutines and re-assembling results in request order.
func (s *submissionService) scoreAnswers(ctx context.Context, questions map[uint]*models.Question, answers []SubmitAnswer) ([]*ScoredAnswer, error) {
	scored := make([]*ScoredAnswer, len(answers))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.gradingConcurrency)

	for i, answer := range answers {
		group.Go(func() error {
			result, err := s.scorer.Score(groupCtx, questions[answer.QuestionID], answer.Answer)
			if err != nil {
				return err
			}
			scored[i] = result
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return scored, nil
}

// afterCommit runs the best-effort side effects: results cache invalidation
// and event publishing. Failures here are logged, never surfaced.
func (s *submissionService) afterCommit(submission *models.Submission, req *SubmitRequest, scorePct int, skillTag string) {
	ctx := context.Background()

	if err := s.cache.Delete(ctx, resultsCacheKey(req.AssignmentID)); err != nil {
		s.logger.Warn("Failed to invalidate results cache",
			"assignment_id", req.AssignmentID, "error", err)
	}

	gradedEvent := events.NewGradingEvent(events.EventSubmissionGraded, events.SubmissionGradedEvent{
		SubmissionID:  submission.ID,
		AssignmentID:  req.AssignmentID,
		StudentID:     req.StudentID,
		ScorePct:      scorePct,
		ResponseCount: len(req.Answers),
		SubmittedAt:   submission.SubmittedAt,
	})
	if err := s.publisher.PublishGradingEvent(ctx, gradedEvent); err != nil {
		s.logger.Error("Failed to publish submission graded event",
			"submission_id", submission.ID, "error", err)
	}

	if skillTag != "" {
		masteryEvent := events.NewGradingEvent(events.EventMasteryUpdated, events.MasteryUpdatedEvent{
			StudentID:  req.StudentID,
			SkillTag:   skillTag,
			MasteryPct: scorePct,
		})
		if err := s.publisher.PublishGradingEvent(ctx, masteryEvent); err != nil {
			s.logger.Error("Failed to publish mastery updated event",
				"student_id", req.StudentID, "skill_tag", skillTag, "error", err)
		}
	}
}

// roundPct rounds 100*numerator/denominator to the nearest whole percent.
func roundPct(numerator, denominator float64) int {
	return int(math.Round(100 * numerator / denominator))
}
