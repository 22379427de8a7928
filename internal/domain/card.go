package domain

import "time"

// Phase is a card's study stage. It affects which row of the interval
// factor table applies.
type Phase string

const (
	PhaseLearning Phase = "learning"
	PhaseReview   Phase = "review"
)

// Flashcard represents a saved dictionary entry a user is studying.
// Term and Translation are immutable after creation; Label may be changed.
type Flashcard struct {
	ID              string
	UserID          int64
	Term            string
	TermDfn         string
	Translation     string
	TranslationDfn  string
	Label           string
	Phase           Phase
	IntervalMinutes int
	DueAt           time.Time
	LastStudiedAt   *time.Time
	LastReminderAt  *time.Time
	CreatedAt       time.Time
}

// EligibleForReminder reports whether a due card may be included in the
// current sweep. A card is eligible if it has never been reminded, if the
// cooldown since the last reminder has elapsed, or if it was studied after
// the last reminder was sent.
func (f *Flashcard) EligibleForReminder(now time.Time, cooldown time.Duration) bool {
	if f.LastReminderAt == nil {
		return true
	}
	if now.Sub(*f.LastReminderAt) >= cooldown {
		return true
	}
	return f.LastStudiedAt != nil && f.LastStudiedAt.After(*f.LastReminderAt)
}
