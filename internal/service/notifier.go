package service

import (
	"context"

	"hanbot/internal/domain"
)

// Notifier delivers composed reminder and badge messages to the user-facing
// channel.
type Notifier interface {
	SendReminder(ctx context.Context, userID int64, cards []domain.Flashcard) error
	SendBadgeUnlocked(ctx context.Context, userID int64, badges []domain.Badge) error
}
