package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"hanbot/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	errStr := err.Error()
	// If message is not modified, it means it was already edited by another callback
	// Just acknowledge and return nil - don't send new message
	if strings.Contains(errStr, "message is not modified") {
		h.logger.Debug("Message already modified by another callback, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		c.Respond()
		return nil
	}

	// Log the error to understand why Edit failed
	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	// Always acknowledge callback before sending new message
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// handleCallback handles ALL callback queries
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	// Clean data from all non-printable characters
	data := cleanCallbackData(callback.Data)
	h.logger.Info("handleCallback: Processing callback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
		zap.Int64("user_id", c.Sender().ID),
	)

	// Handle specific button callbacks by Unique first
	switch callback.Unique {
	case "quiz_menu":
		return h.handleQuizMenu(c)
	case "flashcards":
		return h.handleFlashcards(c)
	case "progress":
		return h.handleProgress(c)
	case "cancel":
		return h.handleCancel(c)
	case "main_menu":
		return h.handleStart(c)
	}

	// If Unique is empty, try to handle by Data (for buttons with Unique that didn't come through)
	if callback.Unique == "" {
		switch data {
		case "quiz_menu":
			return h.handleQuizMenu(c)
		case "flashcards":
			return h.handleFlashcards(c)
		case "progress":
			return h.handleProgress(c)
		case "cancel":
			return h.handleCancel(c)
		case "main_menu":
			return h.handleStart(c)
		}
	}

	// Handle by Data prefix (dynamic buttons)
	switch {
	case data == "quiz_normal":
		return h.startQuiz(c, false)
	case data == "quiz_inverted":
		return h.startQuiz(c, true)
	case data == "flip":
		return h.handleFlip(c)
	case strings.HasPrefix(data, "rate_"):
		return h.handleRate(c, data)
	case strings.HasPrefix(data, "save_"):
		return h.handleSave(c, data)
	case strings.HasPrefix(data, "card_"):
		return h.handleCardDetail(c, strings.TrimPrefix(data, "card_"))
	case strings.HasPrefix(data, "label_"):
		return h.handleLabelRequest(c, strings.TrimPrefix(data, "label_"))
	case strings.HasPrefix(data, "del_"):
		return h.handleDelete(c, strings.TrimPrefix(data, "del_"))
	}

	// If it's not handled, acknowledge it anyway
	h.logger.Warn("Unhandled callback in handleCallback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}

// handleCancel cancels current operation and resets state
func (h *Handler) handleCancel(c tele.Context) error {
	userID := c.Sender().ID

	h.ResetState(userID)

	if err := c.Edit(welcomeText, mainMenuMarkup()); err != nil {
		if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
			return nil
		}
		return c.Send(welcomeText, mainMenuMarkup())
	}
	return c.Respond()
}

// handleSave persists one dictionary sense from the pending search results.
func (h *Handler) handleSave(c tele.Context, data string) error {
	userID := c.Sender().ID

	lock := h.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	idx, err := strconv.Atoi(strings.TrimPrefix(data, "save_"))
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Invalid selection"})
	}

	state := h.GetState(userID)
	if idx < 0 || idx >= len(state.SearchResults) {
		return c.Respond(&tele.CallbackResponse{
			Text:      "This search has expired. Send the word again.",
			ShowAlert: true,
		})
	}

	draft := state.SearchResults[idx]
	card, err := h.cardService.SaveCard(
		context.Background(),
		userID,
		draft.Term,
		draft.TermDfn,
		draft.Translation,
		draft.TranslationDfn,
	)
	if err != nil {
		if errors.Is(err, domain.ErrSetFull) {
			return c.Respond(&tele.CallbackResponse{
				Text:      "Your flashcard set is full. Delete some cards first.",
				ShowAlert: true,
			})
		}
		h.logger.Error("Failed to save flashcard",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return c.Respond(&tele.CallbackResponse{Text: "Failed to save flashcard"})
	}

	return c.Respond(&tele.CallbackResponse{
		Text: fmt.Sprintf("💾 Saved %s / %s", card.Term, card.Translation),
	})
}
