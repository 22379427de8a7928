package domain

// UserState represents user's current interaction state
type UserState string

const (
	StateIdle         UserState = "idle"
	StateQuizQuestion UserState = "quiz_question"
	StateQuizAnswer   UserState = "quiz_answer"
	StateWaitingLabel UserState = "waiting_label"
)

// StateData holds temporary data for user's current state
type StateData struct {
	State UserState
	Quiz  *QuizSession

	// Pending search results awaiting a save action, keyed by result index.
	SearchResults []Flashcard

	// Card awaiting a label while in StateWaitingLabel.
	LabelCardID string
}

// QuizSession tracks an in-flight quiz for one user.
type QuizSession struct {
	Cards        []Flashcard
	Index        int
	Inverted     bool
	Studied      int
	PointsEarned int
	MessageID    int
}

// Current returns the card being quizzed, or nil when the session is done.
func (q *QuizSession) Current() *Flashcard {
	if q.Index >= len(q.Cards) {
		return nil
	}
	return &q.Cards[q.Index]
}
