package services

import (
	"context"
	"testing"
	"time"

	"github.com/brightclass/grading-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMasteryService_Upsert(t *testing.T) {
	tests := []struct {
		name      string
		skillTag  string
		pct       int
		expectErr bool
	}{
		{name: "valid value", skillTag: "fractions", pct: 80},
		{name: "lower bound", skillTag: "fractions", pct: 0},
		{name: "upper bound", skillTag: "fractions", pct: 100},
		{name: "missing skill tag", skillTag: "", pct: 50, expectErr: true},
		{name: "negative pct", skillTag: "fractions", pct: -1, expectErr: true},
		{name: "pct above 100", skillTag: "fractions", pct: 101, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := NewMockRepository()
			if !tt.expectErr {
				mockRepo.masteryRepo.On("Upsert", mock.Anything, uint(7), tt.skillTag, tt.pct).Return(nil)
			}

			service := NewMasteryService(mockRepo, testLogger())
			err := service.Upsert(context.Background(), 7, tt.skillTag, tt.pct)

			if tt.expectErr {
				require.Error(t, err)
				assert.True(t, IsValidation(err))
				mockRepo.masteryRepo.AssertNotCalled(t, "Upsert",
					mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				mockRepo.masteryRepo.AssertExpectations(t)
			}
		})
	}
}

func TestMasteryService_Upsert_OverwritesPriorValue(t *testing.T) {
	mockRepo := NewMockRepository()
	mockRepo.masteryRepo.On("Upsert", mock.Anything, uint(7), "fractions", 40).Return(nil).Once()
	mockRepo.masteryRepo.On("Upsert", mock.Anything, uint(7), "fractions", 90).Return(nil).Once()

	service := NewMasteryService(mockRepo, testLogger())

	require.NoError(t, service.Upsert(context.Background(), 7, "fractions", 40))
	require.NoError(t, service.Upsert(context.Background(), 7, "fractions", 90))
	mockRepo.masteryRepo.AssertExpectations(t)
}

func TestMasteryService_GetByStudent(t *testing.T) {
	now := time.Now().UTC()
	mockRepo := NewMockRepository()
	mockRepo.masteryRepo.On("GetByStudent", mock.Anything, uint(7)).
		Return([]*models.Mastery{
			{StudentID: 7, SkillTag: "fractions", MasteryPct: 80, LastUpdated: now},
			{StudentID: 7, SkillTag: "decimals", MasteryPct: 55, LastUpdated: now},
		}, nil)

	service := NewMasteryService(mockRepo, testLogger())

	mastery, err := service.GetByStudent(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, mastery, 2)
	assert.Equal(t, SkillMastery{SkillTag: "fractions", MasteryPct: 80, LastUpdated: now}, mastery[0])
	assert.Equal(t, SkillMastery{SkillTag: "decimals", MasteryPct: 55, LastUpdated: now}, mastery[1])
}

func TestMasteryService_GetByStudent_Empty(t *testing.T) {
	mockRepo := NewMockRepository()
	mockRepo.masteryRepo.On("GetByStudent", mock.Anything, uint(7)).
		Return([]*models.Mastery{}, nil)

	service := NewMasteryService(mockRepo, testLogger())

	mastery, err := service.GetByStudent(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, mastery)
}
