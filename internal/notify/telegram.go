// Package notify delivers reminder and badge messages over Telegram.
package notify

import (
	"context"
	"fmt"
	"strings"

	"hanbot/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// sender is the part of the bot API the sink needs.
type sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// TelegramSink sends notifications to users through the bot
type TelegramSink struct {
	bot    sender
	logger *zap.Logger
}

// NewTelegramSink creates a new Telegram notification sink
func NewTelegramSink(bot sender, logger *zap.Logger) *TelegramSink {
	return &TelegramSink{
		bot:    bot,
		logger: logger,
	}
}

// SendReminder sends one message listing every due card for the user.
func (s *TelegramSink) SendReminder(ctx context.Context, userID int64, cards []domain.Flashcard) error {
	if len(cards) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString("⏰ Time to study! These flashcards are due:\n\n")
	for _, card := range cards {
		sb.WriteString(fmt.Sprintf("• %s / %s\n", card.Term, card.Translation))
	}
	sb.WriteString(fmt.Sprintf("\n%s waiting for you. Start a /quiz to review them!", cardCount(len(cards))))

	if _, err := s.bot.Send(tele.ChatID(userID), sb.String()); err != nil {
		return fmt.Errorf("failed to send reminder: %w", err)
	}

	s.logger.Debug("Reminder delivered",
		zap.Int64("user_id", userID),
		zap.Int("cards", len(cards)),
	)
	return nil
}

// SendBadgeUnlocked announces newly earned badges.
func (s *TelegramSink) SendBadgeUnlocked(ctx context.Context, userID int64, badges []domain.Badge) error {
	if len(badges) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var sb strings.Builder
	if len(badges) == 1 {
		sb.WriteString("🏅 New badge unlocked!\n\n")
	} else {
		sb.WriteString("🏅 New badges unlocked!\n\n")
	}
	for _, badge := range badges {
		sb.WriteString(fmt.Sprintf("• %s\n", badge.Name))
	}

	if _, err := s.bot.Send(tele.ChatID(userID), sb.String()); err != nil {
		return fmt.Errorf("failed to send badge notification: %w", err)
	}
	return nil
}

func cardCount(n int) string {
	if n == 1 {
		return "1 flashcard is"
	}
	return fmt.Sprintf("%d flashcards are", n)
}
