package testutil

import (
	"time"

	"hanbot/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestCard creates a learning-phase flashcard due at the given time
func NewTestCard(id string, userID int64, dueAt time.Time) domain.Flashcard {
	return domain.Flashcard{
		ID:              id,
		UserID:          userID,
		Term:            "사과",
		TermDfn:         "둥근 모양의 과일",
		Translation:     "apple",
		TranslationDfn:  "a round fruit",
		Phase:           domain.PhaseLearning,
		IntervalMinutes: 10,
		DueAt:           dueAt,
		CreatedAt:       dueAt.Add(-time.Hour),
	}
}

// NewTestProgress creates an empty progress record
func NewTestProgress(userID int64) *domain.UserProgress {
	return domain.NewUserProgress(userID)
}
