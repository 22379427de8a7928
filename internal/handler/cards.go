package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hanbot/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleFlashcards lists the user's cards, one button per card
func (h *Handler) handleFlashcards(c tele.Context) error {
	userID := c.Sender().ID

	cards, err := h.cardService.ListCards(context.Background(), userID)
	if err != nil {
		h.logger.Error("Failed to list flashcards", zap.Error(err), zap.Int64("user_id", userID))
		return h.respondOrSend(c, "Failed to load your flashcards. Please try again later.")
	}

	if len(cards) == 0 {
		return h.respondOrSend(c, "You have no flashcards yet. Send me a Korean word to look up!")
	}

	text := fmt.Sprintf("🗂 Your flashcards (%d):", len(cards))
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}

	for _, card := range cards {
		btnText := fmt.Sprintf("%s — %s", card.Term, card.Translation)
		if card.Label != "" {
			btnText += fmt.Sprintf(" [%s]", card.Label)
		}
		btn := markup.Data(btnText, "card_"+card.ID)
		rows = append(rows, markup.Row(btn))
	}
	rows = append(rows, markup.Row(btnMainMenu))
	markup.Inline(rows...)

	if c.Callback() != nil {
		if err := c.Edit(text, markup); err != nil {
			if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
				return nil
			}
			return c.Send(text, markup)
		}
		return c.Respond()
	}
	return c.Send(text, markup)
}

// handleCardDetail shows one card with its label and delete actions
func (h *Handler) handleCardDetail(c tele.Context, cardID string) error {
	userID := c.Sender().ID

	card, err := h.cardService.GetCard(context.Background(), cardID)
	if err != nil {
		if errors.Is(err, domain.ErrCardNotFound) {
			return c.Respond(&tele.CallbackResponse{Text: "Flashcard not found"})
		}
		h.logger.Error("Failed to load flashcard", zap.Error(err), zap.String("card_id", cardID))
		return c.Respond(&tele.CallbackResponse{Text: "Failed to load flashcard"})
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📝 %s\n%s\n\n", card.Term, card.TermDfn)
	fmt.Fprintf(&sb, "🔄 %s\n%s\n\n", card.Translation, card.TranslationDfn)
	if card.Label != "" {
		fmt.Fprintf(&sb, "🏷 Label: %s\n", card.Label)
	}
	fmt.Fprintf(&sb, "📆 Next review: %s", card.DueAt.Format("2006-01-02 15:04"))

	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(
			markup.Data("🏷 Label", "label_"+card.ID),
			markup.Data("🗑 Delete", "del_"+card.ID),
		),
		markup.Row(btnFlashcards, btnMainMenu),
	)

	if err := c.Edit(sb.String(), markup); err != nil {
		if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
			return nil
		}
		return c.Send(sb.String(), markup)
	}
	return c.Respond()
}

// handleLabelRequest asks for a label and waits for the next text message
func (h *Handler) handleLabelRequest(c tele.Context, cardID string) error {
	userID := c.Sender().ID

	h.SetState(userID, &domain.StateData{
		State:       domain.StateWaitingLabel,
		LabelCardID: cardID,
	})

	cancelMarkup := &tele.ReplyMarkup{}
	cancelMarkup.Inline(cancelMarkup.Row(btnCancel))

	if err := c.Edit("🏷 Send me a label for this flashcard:", cancelMarkup); err != nil {
		if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
			return nil
		}
		return c.Send("🏷 Send me a label for this flashcard:", cancelMarkup)
	}
	return c.Respond()
}

// handleDelete removes a card from the user's set
func (h *Handler) handleDelete(c tele.Context, cardID string) error {
	userID := c.Sender().ID

	lock := h.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	if err := h.cardService.DeleteCard(context.Background(), cardID); err != nil {
		if errors.Is(err, domain.ErrCardNotFound) {
			return c.Respond(&tele.CallbackResponse{Text: "Flashcard already deleted"})
		}
		h.logger.Error("Failed to delete flashcard", zap.Error(err), zap.String("card_id", cardID))
		return c.Respond(&tele.CallbackResponse{Text: "Failed to delete flashcard"})
	}

	h.logger.Info("Flashcard deleted",
		zap.String("card_id", cardID),
		zap.Int64("user_id", userID),
	)

	if err := c.Respond(&tele.CallbackResponse{Text: "🗑 Deleted"}); err != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
	}
	return h.handleFlashcards(c)
}

// respondOrSend answers a callback with a toast, or sends a plain message
// when the update came from a command.
func (h *Handler) respondOrSend(c tele.Context, text string) error {
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
	}
	return c.Send(text)
}
