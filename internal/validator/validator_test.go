package validator

import (
	"errors"
	"testing"

	apperrors "github.com/brightclass/grading-service/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type questionInput struct {
	Type   string `json:"type" validate:"required,question_type"`
	Prompt string `json:"prompt" validate:"required"`
}

func TestValidator_CustomQuestionType(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&questionInput{Type: "mcq", Prompt: "p"}))
	assert.NoError(t, v.Validate(&questionInput{Type: "short", Prompt: "p"}))
	assert.Error(t, v.Validate(&questionInput{Type: "essay", Prompt: "p"}))
}

func TestValidator_ReportsJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(&questionInput{Type: "mcq"})
	require.Error(t, err)

	var verrs apperrors.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 1)
	assert.Equal(t, "prompt", verrs[0].Field)
	assert.Equal(t, "is required", verrs[0].Message)
	assert.Equal(t, "required", verrs[0].Rule)
}

func TestValidator_MasteryPct(t *testing.T) {
	type input struct {
		Pct int `json:"mastery_pct" validate:"mastery_pct"`
	}

	v := New()
	assert.NoError(t, v.Validate(&input{Pct: 0}))
	assert.NoError(t, v.Validate(&input{Pct: 100}))
	assert.Error(t, v.Validate(&input{Pct: 101}))
	assert.Error(t, v.Validate(&input{Pct: -5}))
}
