package service

import (
	"context"
	"fmt"
	"time"

	"hanbot/internal/domain"
	"hanbot/internal/repository"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

const reminderSendTimeout = 10 * time.Second

// Sweeper periodically scans for due flashcards and sends one batched
// reminder per user. A reminded card is silenced for the cooldown unless it
// is studied in between. Failures are isolated per user: one user's broken
// delivery never blocks the rest of the sweep.
type Sweeper struct {
	cardRepo  repository.CardRepository
	notifier  Notifier
	period    time.Duration
	cooldown  time.Duration
	logger    *zap.Logger
	scheduler *gocron.Scheduler
	now       func() time.Time
}

// NewSweeper creates a new reminder sweeper
func NewSweeper(
	cardRepo repository.CardRepository,
	notifier Notifier,
	period time.Duration,
	cooldown time.Duration,
	logger *zap.Logger,
) *Sweeper {
	return &Sweeper{
		cardRepo: cardRepo,
		notifier: notifier,
		period:   period,
		cooldown: cooldown,
		logger:   logger,
		now:      time.Now,
	}
}

// Start schedules the periodic sweep. SingletonMode guarantees a tick is
// skipped while the previous sweep is still running, so two sweeps never
// overlap.
func (s *Sweeper) Start() error {
	s.scheduler = gocron.NewScheduler(time.UTC)

	if _, err := s.scheduler.Every(s.period).SingletonMode().Do(s.run); err != nil {
		return fmt.Errorf("failed to schedule sweep: %w", err)
	}

	s.scheduler.StartAsync()
	s.logger.Info("Reminder sweeper started",
		zap.Duration("period", s.period),
		zap.Duration("cooldown", s.cooldown),
	)
	return nil
}

// Stop terminates the periodic sweep
func (s *Sweeper) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
	s.logger.Info("Reminder sweeper stopped")
}

func (s *Sweeper) run() {
	if err := s.Sweep(context.Background(), s.now()); err != nil {
		s.logger.Error("Sweep failed", zap.Error(err))
	}
}

// Sweep runs one reminder pass at the given instant. Owners already
// processed stay committed even when later owners fail; skipped or failed
// cards are simply re-evaluated on the next pass.
func (s *Sweeper) Sweep(ctx context.Context, now time.Time) error {
	due, err := s.cardRepo.GetDueCards(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to query due cards: %w", err)
	}

	byOwner := make(map[int64][]domain.Flashcard)
	var owners []int64
	for _, card := range due {
		if !card.EligibleForReminder(now, s.cooldown) {
			continue
		}
		if _, seen := byOwner[card.UserID]; !seen {
			owners = append(owners, card.UserID)
		}
		byOwner[card.UserID] = append(byOwner[card.UserID], card)
	}

	for _, userID := range owners {
		if err := s.remindOwner(ctx, userID, byOwner[userID], now); err != nil {
			s.logger.Error("Failed to remind user",
				zap.Int64("user_id", userID),
				zap.Int("cards", len(byOwner[userID])),
				zap.Error(err),
			)
			continue
		}
	}

	return nil
}

// remindOwner sends one batched notification and, only on success, stamps
// the reminder time on every included card so the cooldown starts. A failed
// send leaves the cards eligible for the next sweep.
func (s *Sweeper) remindOwner(ctx context.Context, userID int64, cards []domain.Flashcard, now time.Time) error {
	sctx, cancel := context.WithTimeout(ctx, reminderSendTimeout)
	defer cancel()

	if err := s.notifier.SendReminder(sctx, userID, cards); err != nil {
		return fmt.Errorf("notification failed: %w", err)
	}

	ids := make([]string, len(cards))
	for i, card := range cards {
		ids[i] = card.ID
	}
	if err := s.cardRepo.MarkReminded(sctx, ids, now); err != nil {
		return fmt.Errorf("failed to mark cards reminded: %w", err)
	}

	s.logger.Info("Reminder sent",
		zap.Int64("user_id", userID),
		zap.Int("cards", len(cards)),
	)
	return nil
}
