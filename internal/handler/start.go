package handler

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const welcomeText = "🏠 Main menu\n\n" +
	"Send me a Korean word and I'll look it up in the dictionary. " +
	"Save the senses you like as flashcards, then quiz yourself — " +
	"I'll remind you when cards are due for review."

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	h.ResetState(userID)

	if c.Callback() != nil {
		if err := c.Edit(welcomeText, mainMenuMarkup()); err != nil {
			if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
				return nil
			}
			return c.Send(welcomeText, mainMenuMarkup())
		}
		return c.Respond()
	}
	return c.Send(welcomeText, mainMenuMarkup())
}
