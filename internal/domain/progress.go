package domain

import "time"

// UserProgress tracks a user's study counters and earned badges.
// All counters except CurrentStreakDays are monotonically non-decreasing.
type UserProgress struct {
	UserID            int64
	StudyPoints       int
	FlashcardsStudied int
	QuizzesCompleted  int
	CurrentStreakDays int
	LongestStreakDays int
	LastStudyDate     *time.Time
	EarnedBadges      []string
}

// NewUserProgress returns a zeroed progress record for a user.
func NewUserProgress(userID int64) *UserProgress {
	return &UserProgress{UserID: userID}
}

// ApplyRating applies a rating submission: increments the studied counter,
// awards points and advances the streak.
func (p *UserProgress) ApplyRating(r Rating, now time.Time) {
	p.FlashcardsStudied++
	p.StudyPoints += r.Points()
	p.advanceStreak(now)
	t := now
	p.LastStudyDate = &t
}

// ApplyQuiz applies a quiz completion event.
func (p *UserProgress) ApplyQuiz(now time.Time) {
	p.QuizzesCompleted++
}

// advanceStreak updates the streak counters against the calendar date of the
// last study session. Studying twice on the same day leaves the streak
// unchanged; studying on the following day extends it; any gap resets to 1.
func (p *UserProgress) advanceStreak(now time.Time) {
	switch {
	case p.LastStudyDate == nil:
		p.CurrentStreakDays = 1
	case sameDay(*p.LastStudyDate, now):
		// already counted today
	case sameDay(*p.LastStudyDate, now.AddDate(0, 0, -1)):
		p.CurrentStreakDays++
	default:
		p.CurrentStreakDays = 1
	}
	if p.CurrentStreakDays > p.LongestStreakDays {
		p.LongestStreakDays = p.CurrentStreakDays
	}
}

// sameDay reports whether two instants fall on the same UTC calendar date.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// HasBadge reports whether the badge was already earned.
func (p *UserProgress) HasBadge(id string) bool {
	for _, b := range p.EarnedBadges {
		if b == id {
			return true
		}
	}
	return false
}
