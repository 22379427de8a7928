package service

import (
	"context"
	"fmt"
	"time"

	"hanbot/internal/domain"
	"hanbot/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxCardsPerUser caps the size of a user's flashcard set.
const MaxCardsPerUser = 100

// CardService handles flashcard management
type CardService struct {
	cardRepo repository.CardRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewCardService creates a new card service
func NewCardService(cardRepo repository.CardRepository, logger *zap.Logger) *CardService {
	return &CardService{
		cardRepo: cardRepo,
		logger:   logger,
		now:      time.Now,
	}
}

// SaveCard creates a flashcard from a dictionary entry. New cards start in
// the learning phase at the minimum interval and are due immediately.
func (s *CardService) SaveCard(ctx context.Context, userID int64, term, termDfn, translation, translationDfn string) (*domain.Flashcard, error) {
	if term == "" || translation == "" {
		return nil, fmt.Errorf("term and translation cannot be empty")
	}

	count, err := s.cardRepo.CountCards(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count cards: %w", err)
	}
	if count >= MaxCardsPerUser {
		return nil, domain.ErrSetFull
	}

	now := s.now()
	card := &domain.Flashcard{
		ID:              uuid.NewString(),
		UserID:          userID,
		Term:            term,
		TermDfn:         termDfn,
		Translation:     translation,
		TranslationDfn:  translationDfn,
		Phase:           domain.PhaseLearning,
		IntervalMinutes: 10,
		DueAt:           now,
		CreatedAt:       now,
	}

	if err := s.cardRepo.SaveCard(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to save card: %w", err)
	}

	s.logger.Info("Flashcard saved",
		zap.String("card_id", card.ID),
		zap.Int64("user_id", userID),
		zap.String("term", term),
	)

	return card, nil
}

// GetCard returns a single flashcard by id
func (s *CardService) GetCard(ctx context.Context, cardID string) (*domain.Flashcard, error) {
	return s.cardRepo.GetCard(ctx, cardID)
}

// ListCards returns all flashcards of a user
func (s *CardService) ListCards(ctx context.Context, userID int64) ([]domain.Flashcard, error) {
	return s.cardRepo.GetCardsByUser(ctx, userID)
}

// RandomCards returns up to limit random flashcards for a quiz
func (s *CardService) RandomCards(ctx context.Context, userID int64, limit int) ([]domain.Flashcard, error) {
	if limit < 1 {
		limit = 1
	}
	return s.cardRepo.GetRandomCards(ctx, userID, limit)
}

// LabelCard sets the user-assigned label on a card
func (s *CardService) LabelCard(ctx context.Context, cardID, label string) error {
	return s.cardRepo.UpdateLabel(ctx, cardID, label)
}

// DeleteCard removes a card from the user's set
func (s *CardService) DeleteCard(ctx context.Context, cardID string) error {
	return s.cardRepo.DeleteCard(ctx, cardID)
}
