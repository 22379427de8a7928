// Package srs implements the interval scheduling algorithm for spaced
// repetition. The scheduler is a pure function over a card's phase, its
// current interval and the submitted rating; persistence and clocks live
// elsewhere.
package srs

import (
	"time"

	"hanbot/internal/domain"
)

// Default interval bounds in minutes: 10 minutes to one week.
const (
	DefaultMinIntervalMinutes = 10
	DefaultMaxIntervalMinutes = 7 * 24 * 60
)

// Params holds the tunable parts of the scheduler. The zero value is not
// usable; construct with DefaultParams.
type Params struct {
	MinIntervalMinutes int
	MaxIntervalMinutes int
	// Factors maps rating -> phase -> interval multiplier.
	Factors map[domain.Rating]map[domain.Phase]float64
}

// DefaultParams returns the standard factor table and bounds.
func DefaultParams() Params {
	return Params{
		MinIntervalMinutes: DefaultMinIntervalMinutes,
		MaxIntervalMinutes: DefaultMaxIntervalMinutes,
		Factors: map[domain.Rating]map[domain.Phase]float64{
			domain.RatingPoor: {domain.PhaseLearning: 0.5, domain.PhaseReview: 0.75},
			domain.RatingOkay: {domain.PhaseLearning: 1.0, domain.PhaseReview: 1.0},
			domain.RatingGood: {domain.PhaseLearning: 3.0, domain.PhaseReview: 3.5},
		},
	}
}

// Result is the outcome of scheduling one rating.
type Result struct {
	Phase           domain.Phase
	IntervalMinutes int
}

// Schedule computes the new phase and interval for a card given a rating.
// A card leaves the learning phase on its first non-Poor rating; the
// transition is one-way. The returned interval is always within
// [MinIntervalMinutes, MaxIntervalMinutes].
func (p Params) Schedule(phase domain.Phase, rating domain.Rating, intervalMinutes int) Result {
	if intervalMinutes <= 0 {
		intervalMinutes = p.MinIntervalMinutes
	}

	factor := p.Factors[rating][phase]
	interval := clamp(int(float64(intervalMinutes)*factor), p.MinIntervalMinutes, p.MaxIntervalMinutes)

	newPhase := phase
	if phase == domain.PhaseLearning && rating != domain.RatingPoor {
		newPhase = domain.PhaseReview
	}

	return Result{Phase: newPhase, IntervalMinutes: interval}
}

// Apply schedules a rating and writes the outcome back onto the card:
// phase, interval, due time and last-studied time.
func (p Params) Apply(card *domain.Flashcard, rating domain.Rating, now time.Time) {
	res := p.Schedule(card.Phase, rating, card.IntervalMinutes)
	card.Phase = res.Phase
	card.IntervalMinutes = res.IntervalMinutes
	card.DueAt = now.Add(time.Duration(res.IntervalMinutes) * time.Minute)
	t := now
	card.LastStudiedAt = &t
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
