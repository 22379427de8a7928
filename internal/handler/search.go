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

// maxSearchResults caps how many dictionary senses are offered per lookup.
const maxSearchResults = 5

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	state := h.GetState(userID)

	if state.State == domain.StateWaitingLabel {
		return h.handleLabelInput(c, state, text)
	}

	// Any other text is a dictionary lookup
	return h.handleSearch(c, text)
}

// handleSearch looks a word up and offers each sense as a saveable flashcard.
func (h *Handler) handleSearch(c tele.Context, word string) error {
	userID := c.Sender().ID

	results, err := h.dictionary.Search(context.Background(), word)
	if err != nil {
		h.logger.Error("Dictionary lookup failed",
			zap.Error(err),
			zap.String("word", word),
			zap.Int64("user_id", userID),
		)
		return c.Send("Dictionary lookup failed. Please try again later.")
	}

	if len(results) == 0 {
		return c.Send(fmt.Sprintf("🔍 No dictionary entry found for \"%s\".", word))
	}

	if len(results) > maxSearchResults {
		results = results[:maxSearchResults]
	}

	cards := make([]domain.Flashcard, len(results))
	text := fmt.Sprintf("📖 %s\n\n", results[0].Term)
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}

	for i, r := range results {
		cards[i] = domain.Flashcard{
			UserID:         userID,
			Term:           r.Term,
			TermDfn:        r.TermDfn,
			Translation:    r.Translation,
			TranslationDfn: r.TranslationDfn,
		}
		text += fmt.Sprintf("%d. %s\n%s\n\n", i+1, r.Translation, r.TranslationDfn)
		btn := markup.Data(fmt.Sprintf("💾 Save %d. %s", i+1, r.Translation), fmt.Sprintf("save_%d", i))
		rows = append(rows, markup.Row(btn))
	}
	rows = append(rows, markup.Row(btnMainMenu))
	markup.Inline(rows...)

	h.SetState(userID, &domain.StateData{
		State:         domain.StateIdle,
		SearchResults: cards,
	})

	return c.Send(text, markup)
}

// handleLabelInput stores the label the user typed for the pending card.
func (h *Handler) handleLabelInput(c tele.Context, state *domain.StateData, label string) error {
	userID := c.Sender().ID

	if err := h.cardService.LabelCard(context.Background(), state.LabelCardID, label); err != nil {
		if errors.Is(err, domain.ErrCardNotFound) {
			h.ResetState(userID)
			return c.Send("That flashcard no longer exists.")
		}
		h.logger.Error("Failed to label card",
			zap.Error(err),
			zap.String("card_id", state.LabelCardID),
			zap.Int64("user_id", userID),
		)
		return c.Send("Failed to save the label. Please try again.")
	}

	h.ResetState(userID)
	return c.Send(fmt.Sprintf("🏷 Label \"%s\" saved.", label))
}
