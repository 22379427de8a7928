package handler

import (
	"context"
	"fmt"
	"strings"

	"hanbot/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// quizSize is how many random cards one quiz session draws.
const quizSize = 10

// handleQuizMenu lets the user pick the quiz direction
func (h *Handler) handleQuizMenu(c tele.Context) error {
	userID := c.Sender().ID

	text := "🎯 Pick a quiz direction:"
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.Data("🇰🇷 Korean → English", "quiz_normal")),
		markup.Row(markup.Data("🇬🇧 English → Korean", "quiz_inverted")),
		markup.Row(btnMainMenu),
	)

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

// startQuiz draws random cards and shows the first question
func (h *Handler) startQuiz(c tele.Context, inverted bool) error {
	userID := c.Sender().ID

	lock := h.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	cards, err := h.cardService.RandomCards(context.Background(), userID, quizSize)
	if err != nil {
		h.logger.Error("Failed to draw quiz cards", zap.Error(err), zap.Int64("user_id", userID))
		return c.Respond(&tele.CallbackResponse{Text: "Failed to start quiz"})
	}

	if len(cards) == 0 {
		return c.Respond(&tele.CallbackResponse{
			Text:      "You have no flashcards yet. Send me a word to look up!",
			ShowAlert: true,
		})
	}

	quiz := &domain.QuizSession{
		Cards:    cards,
		Inverted: inverted,
	}
	h.SetState(userID, &domain.StateData{
		State: domain.StateQuizQuestion,
		Quiz:  quiz,
	})

	h.logger.Info("Quiz started",
		zap.Int64("user_id", userID),
		zap.Int("cards", len(cards)),
		zap.Bool("inverted", inverted),
	)

	return h.showQuestion(c, quiz)
}

// showQuestion renders the prompt side of the current card
func (h *Handler) showQuestion(c tele.Context, quiz *domain.QuizSession) error {
	userID := c.Sender().ID
	card := quiz.Current()

	prompt := card.Term
	if quiz.Inverted {
		prompt = card.Translation
	}

	text := fmt.Sprintf("Card %d/%d\n\n❓ %s", quiz.Index+1, len(quiz.Cards), prompt)
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.Data("💡 Show answer", "flip")),
		markup.Row(btnCancel),
	)

	if err := c.Edit(text, markup); err != nil {
		if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
			return nil
		}
		return c.Send(text, markup)
	}
	return c.Respond()
}

// handleFlip reveals the answer side and offers the rating buttons
func (h *Handler) handleFlip(c tele.Context) error {
	userID := c.Sender().ID

	state := h.GetState(userID)
	if state.Quiz == nil || state.Quiz.Current() == nil {
		return c.Respond(&tele.CallbackResponse{Text: "No quiz in progress"})
	}

	quiz := state.Quiz
	card := quiz.Current()

	h.SetState(userID, &domain.StateData{
		State: domain.StateQuizAnswer,
		Quiz:  quiz,
	})

	var sb strings.Builder
	fmt.Fprintf(&sb, "Card %d/%d\n\n", quiz.Index+1, len(quiz.Cards))
	fmt.Fprintf(&sb, "📝 %s\n%s\n\n", card.Term, card.TermDfn)
	fmt.Fprintf(&sb, "🔄 %s\n%s\n\n", card.Translation, card.TranslationDfn)
	sb.WriteString("How well did you remember it?")

	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(
			markup.Data("😵 Poor", "rate_"+card.ID+"_poor"),
			markup.Data("🤔 Okay", "rate_"+card.ID+"_okay"),
			markup.Data("😎 Good", "rate_"+card.ID+"_good"),
		),
		markup.Row(btnCancel),
	)

	if err := c.Edit(sb.String(), markup); err != nil {
		if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
			return nil
		}
		return c.Send(sb.String(), markup)
	}
	return c.Respond()
}

// handleRate records the rating for the current card and advances the quiz
func (h *Handler) handleRate(c tele.Context, data string) error {
	userID := c.Sender().ID

	lock := h.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	// rate_<cardID>_<rating>; card ids are UUIDs so split on the last underscore
	payload := strings.TrimPrefix(data, "rate_")
	sep := strings.LastIndex(payload, "_")
	if sep < 0 {
		return c.Respond(&tele.CallbackResponse{Text: "Invalid rating"})
	}
	cardID := payload[:sep]
	rating, err := domain.ParseRating(payload[sep+1:])
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Invalid rating"})
	}

	state := h.GetState(userID)
	if state.Quiz == nil || state.Quiz.Current() == nil {
		return c.Respond(&tele.CallbackResponse{Text: "No quiz in progress"})
	}
	quiz := state.Quiz

	// Ignore stale rating buttons from an earlier card.
	if quiz.Current().ID != cardID {
		return c.Respond()
	}

	_, _, _, err = h.studyService.SubmitRating(context.Background(), cardID, rating)
	if err != nil {
		h.logger.Error("Failed to submit rating",
			zap.Error(err),
			zap.String("card_id", cardID),
			zap.Int64("user_id", userID),
		)
		return c.Respond(&tele.CallbackResponse{Text: "Failed to record rating"})
	}

	quiz.Studied++
	quiz.PointsEarned += rating.Points()
	quiz.Index++

	if quiz.Current() == nil {
		return h.finishQuiz(c, quiz)
	}

	h.SetState(userID, &domain.StateData{
		State: domain.StateQuizQuestion,
		Quiz:  quiz,
	})
	return h.showQuestion(c, quiz)
}

// finishQuiz records the completed session and shows the summary
func (h *Handler) finishQuiz(c tele.Context, quiz *domain.QuizSession) error {
	userID := c.Sender().ID

	h.ResetState(userID)

	progress, _, err := h.studyService.CompleteQuiz(context.Background(), userID)
	if err != nil {
		h.logger.Error("Failed to complete quiz", zap.Error(err), zap.Int64("user_id", userID))
		return c.Respond(&tele.CallbackResponse{Text: "Failed to record quiz"})
	}

	text := fmt.Sprintf(
		"🏁 Quiz complete!\n\n"+
			"Cards studied: %d\n"+
			"Points earned: %d\n"+
			"Current streak: %d day(s)",
		quiz.Studied,
		quiz.PointsEarned,
		progress.CurrentStreakDays,
	)

	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(btnQuiz),
		markup.Row(btnMainMenu),
	)

	if err := c.Edit(text, markup); err != nil {
		if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
			return nil
		}
		return c.Send(text, markup)
	}
	return c.Respond()
}
