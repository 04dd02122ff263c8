package grader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// RubricGrader grades a free-text answer against rubric keywords. The remote
// service is fallible and no retry is performed.
type RubricGrader interface {
	GradeShortAnswer(ctx context.Context, answer string, rubricKeywords []string) (*GradeResult, error)
}

// GradeResult mirrors the grading service's response. Score is assumed to be
// in [0,1] already and is not re-validated here.
type GradeResult struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

var (
	// ErrTimeout marks a grading call that exceeded its per-call deadline.
	// Callers treat this as scoreable (score 0), not as a pipeline failure.
	ErrTimeout = errors.New("grading call timed out")

	// ErrUnavailable marks a grading service that is unreachable or returned
	// a malformed response.
	ErrUnavailable = errors.New("grading service unavailable")
)

type gradeRequest struct {
	Prompt         string   `json:"prompt"`
	Answer         string   `json:"answer"`
	RubricKeywords []string `json:"rubric_keywords"`
}

// HTTPClient calls the grading service over HTTP.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	logger  *slog.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, logger *slog.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{},
		timeout: timeout,
		logger:  logger,
	}
}

func (c *HTTPClient) GradeShortAnswer(ctx context.Context, answer string, rubricKeywords []string) (*GradeResult, error) {
	body, err := json.Marshal(gradeRequest{
		Prompt:         "Grade per rubric",
		Answer:         answer,
		RubricKeywords: rubricKeywords,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode grading request: %w", err)
	}

	callCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.baseURL+"/grade_short_answer", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build grading request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		// Caller cancellation takes priority over the per-call deadline.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) {
			c.logger.Warn("Grading call timed out", "timeout", c.timeout)
			return nil, ErrTimeout
		}
		c.logger.Error("Grading call failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Grading service returned error status", "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	var result GradeResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.logger.Error("Grading response is malformed", "error", err)
		return nil, fmt.Errorf("%w: malformed response: %v", ErrUnavailable, err)
	}

	return &result, nil
}
