package handler

import (
	"context"
	"fmt"
	"strings"

	"hanbot/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleProgress shows the user's counters, streak and earned badges
func (h *Handler) handleProgress(c tele.Context) error {
	userID := c.Sender().ID

	progress, err := h.studyService.Progress(context.Background(), userID)
	if err != nil {
		h.logger.Error("Failed to load progress", zap.Error(err), zap.Int64("user_id", userID))
		return h.respondOrSend(c, "Failed to load your progress. Please try again later.")
	}

	var sb strings.Builder
	sb.WriteString("📈 Your progress\n\n")
	fmt.Fprintf(&sb, "⭐ Study points: %d\n", progress.StudyPoints)
	fmt.Fprintf(&sb, "🗂 Flashcards studied: %d\n", progress.FlashcardsStudied)
	fmt.Fprintf(&sb, "🎯 Quizzes completed: %d\n", progress.QuizzesCompleted)
	fmt.Fprintf(&sb, "🔥 Current streak: %d day(s)\n", progress.CurrentStreakDays)
	fmt.Fprintf(&sb, "🏆 Longest streak: %d day(s)\n", progress.LongestStreakDays)

	if len(progress.EarnedBadges) > 0 {
		sb.WriteString("\n🏅 Badges:\n")
		for _, id := range progress.EarnedBadges {
			if badge, ok := domain.BadgeByID(id); ok {
				fmt.Fprintf(&sb, "• %s\n", badge.Name)
			}
		}
	}

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnMainMenu))

	if c.Callback() != nil {
		if err := c.Edit(sb.String(), markup); err != nil {
			if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
				return nil
			}
			return c.Send(sb.String(), markup)
		}
		return c.Respond()
	}
	return c.Send(sb.String(), markup)
}
