package srs

import (
	"testing"
	"time"

	"hanbot/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestParams_Schedule(t *testing.T) {
	params := DefaultParams()

	tests := []struct {
		name             string
		phase            domain.Phase
		rating           domain.Rating
		interval         int
		expectedPhase    domain.Phase
		expectedInterval int
	}{
		{
			name:             "learning card rated good transitions to review",
			phase:            domain.PhaseLearning,
			rating:           domain.RatingGood,
			interval:         10,
			expectedPhase:    domain.PhaseReview,
			expectedInterval: 30,
		},
		{
			name:             "learning card rated okay transitions to review",
			phase:            domain.PhaseLearning,
			rating:           domain.RatingOkay,
			interval:         20,
			expectedPhase:    domain.PhaseReview,
			expectedInterval: 20,
		},
		{
			name:             "learning card rated poor stays in learning",
			phase:            domain.PhaseLearning,
			rating:           domain.RatingPoor,
			interval:         40,
			expectedPhase:    domain.PhaseLearning,
			expectedInterval: 20,
		},
		{
			name:             "review card rated poor shrinks interval",
			phase:            domain.PhaseReview,
			rating:           domain.RatingPoor,
			interval:         200,
			expectedPhase:    domain.PhaseReview,
			expectedInterval: 150,
		},
		{
			name:             "review card rated good grows interval",
			phase:            domain.PhaseReview,
			rating:           domain.RatingGood,
			interval:         100,
			expectedPhase:    domain.PhaseReview,
			expectedInterval: 350,
		},
		{
			name:             "interval clamped to floor",
			phase:            domain.PhaseLearning,
			rating:           domain.RatingPoor,
			interval:         10,
			expectedPhase:    domain.PhaseLearning,
			expectedInterval: 10,
		},
		{
			name:             "interval clamped to ceiling",
			phase:            domain.PhaseReview,
			rating:           domain.RatingGood,
			interval:         9000,
			expectedPhase:    domain.PhaseReview,
			expectedInterval: 10080,
		},
		{
			name:             "never studied card uses baseline interval",
			phase:            domain.PhaseLearning,
			rating:           domain.RatingGood,
			interval:         0,
			expectedPhase:    domain.PhaseReview,
			expectedInterval: 30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := params.Schedule(tt.phase, tt.rating, tt.interval)
			assert.Equal(t, tt.expectedPhase, res.Phase)
			assert.Equal(t, tt.expectedInterval, res.IntervalMinutes)
		})
	}
}

func TestParams_Schedule_AlwaysWithinBounds(t *testing.T) {
	params := DefaultParams()
	phases := []domain.Phase{domain.PhaseLearning, domain.PhaseReview}
	ratings := []domain.Rating{domain.RatingPoor, domain.RatingOkay, domain.RatingGood}
	intervals := []int{-5, 0, 10, 11, 100, 5000, 10080, 999999}

	for _, phase := range phases {
		for _, rating := range ratings {
			for _, interval := range intervals {
				res := params.Schedule(phase, rating, interval)
				assert.GreaterOrEqual(t, res.IntervalMinutes, params.MinIntervalMinutes)
				assert.LessOrEqual(t, res.IntervalMinutes, params.MaxIntervalMinutes)
			}
		}
	}
}

func TestParams_Schedule_PhaseTransitionIsOneWay(t *testing.T) {
	params := DefaultParams()

	// Repeated poor ratings never advance the phase.
	phase := domain.PhaseLearning
	interval := 10
	for i := 0; i < 5; i++ {
		res := params.Schedule(phase, domain.RatingPoor, interval)
		assert.Equal(t, domain.PhaseLearning, res.Phase)
		phase, interval = res.Phase, res.IntervalMinutes
	}

	// First okay rating transitions; later poor ratings do not regress.
	res := params.Schedule(phase, domain.RatingOkay, interval)
	assert.Equal(t, domain.PhaseReview, res.Phase)
	res = params.Schedule(res.Phase, domain.RatingPoor, res.IntervalMinutes)
	assert.Equal(t, domain.PhaseReview, res.Phase)
}

func TestParams_Apply(t *testing.T) {
	params := DefaultParams()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	card := &domain.Flashcard{
		Phase:           domain.PhaseLearning,
		IntervalMinutes: 10,
		DueAt:           now,
	}

	params.Apply(card, domain.RatingGood, now)

	assert.Equal(t, domain.PhaseReview, card.Phase)
	assert.Equal(t, 30, card.IntervalMinutes)
	assert.Equal(t, now.Add(30*time.Minute), card.DueAt)
	assert.NotNil(t, card.LastStudiedAt)
	assert.Equal(t, now, *card.LastStudiedAt)
}

func TestParams_Apply_DueAtAlwaysAdvances(t *testing.T) {
	params := DefaultParams()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for _, rating := range []domain.Rating{domain.RatingPoor, domain.RatingOkay, domain.RatingGood} {
		card := &domain.Flashcard{
			Phase:           domain.PhaseReview,
			IntervalMinutes: 20,
			DueAt:           now.Add(-time.Hour),
		}
		before := card.DueAt

		params.Apply(card, rating, now)

		assert.True(t, card.DueAt.After(before), "rating %s must push due time forward", rating)
	}
}
