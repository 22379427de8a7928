package repository

import (
	"context"
	"time"

	"hanbot/internal/domain"
)

// CardRepository defines flashcard data operations
type CardRepository interface {
	SaveCard(ctx context.Context, card *domain.Flashcard) error
	GetCard(ctx context.Context, id string) (*domain.Flashcard, error)
	GetCardsByUser(ctx context.Context, userID int64) ([]domain.Flashcard, error)
	GetRandomCards(ctx context.Context, userID int64, limit int) ([]domain.Flashcard, error)
	GetDueCards(ctx context.Context, now time.Time) ([]domain.Flashcard, error)
	CountCards(ctx context.Context, userID int64) (int, error)
	UpdateLabel(ctx context.Context, cardID, label string) error
	DeleteCard(ctx context.Context, cardID string) error
	MarkReminded(ctx context.Context, cardIDs []string, at time.Time) error
}

// ProgressRepository defines user progress data operations
type ProgressRepository interface {
	GetUserProgress(ctx context.Context, userID int64) (*domain.UserProgress, error)
	SaveUserProgress(ctx context.Context, progress *domain.UserProgress) error
}

// StudyRepository persists the outcome of a single study event: the card and
// the user's progress are written in one transaction so neither can advance
// without the other.
type StudyRepository interface {
	ApplyStudyResult(ctx context.Context, card *domain.Flashcard, progress *domain.UserProgress) error
}
