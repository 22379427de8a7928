package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hanbot/internal/domain"
	"hanbot/internal/repository"
	"hanbot/internal/srs"

	"go.uber.org/zap"
)

const (
	storageTimeout    = 5 * time.Second
	maxWriteAttempts  = 3
	writeRetryBackoff = 500 * time.Millisecond
)

// StudyService applies study events: it reschedules the rated card, credits
// the user's progress and evaluates badge thresholds. Card and progress are
// committed together; transient storage failures are retried with backoff.
type StudyService struct {
	cardRepo     repository.CardRepository
	progressRepo repository.ProgressRepository
	studyRepo    repository.StudyRepository
	params       srs.Params
	notifier     Notifier
	logger       *zap.Logger
	now          func() time.Time
	maxAttempts  int
	backoff      time.Duration
}

// NewStudyService creates a new study service
func NewStudyService(
	cardRepo repository.CardRepository,
	progressRepo repository.ProgressRepository,
	studyRepo repository.StudyRepository,
	params srs.Params,
	notifier Notifier,
	logger *zap.Logger,
) *StudyService {
	return &StudyService{
		cardRepo:     cardRepo,
		progressRepo: progressRepo,
		studyRepo:    studyRepo,
		params:       params,
		notifier:     notifier,
		logger:       logger,
		now:          time.Now,
		maxAttempts:  maxWriteAttempts,
		backoff:      writeRetryBackoff,
	}
}

// SubmitRating records a rating for a flashcard. It returns the rescheduled
// card, the updated progress and any badges unlocked by this event.
func (s *StudyService) SubmitRating(ctx context.Context, cardID string, rating domain.Rating) (*domain.Flashcard, *domain.UserProgress, []domain.Badge, error) {
	card, err := s.cardRepo.GetCard(ctx, cardID)
	if err != nil {
		return nil, nil, nil, err
	}

	progress, err := s.progressRepo.GetUserProgress(ctx, card.UserID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load progress: %w", err)
	}

	now := s.now()
	s.params.Apply(card, rating, now)
	progress.ApplyRating(rating, now)
	unlocked := progress.EvaluateBadges()

	if err := s.withRetry(ctx, func(wctx context.Context) error {
		return s.studyRepo.ApplyStudyResult(wctx, card, progress)
	}); err != nil {
		return nil, nil, nil, err
	}

	s.logger.Info("Rating submitted",
		zap.String("card_id", card.ID),
		zap.Int64("user_id", card.UserID),
		zap.String("rating", string(rating)),
		zap.String("phase", string(card.Phase)),
		zap.Int("interval_minutes", card.IntervalMinutes),
	)

	s.announceBadges(ctx, card.UserID, unlocked)

	return card, progress, unlocked, nil
}

// CompleteQuiz records a finished quiz session for a user and returns the
// updated progress with any newly unlocked badges.
func (s *StudyService) CompleteQuiz(ctx context.Context, userID int64) (*domain.UserProgress, []domain.Badge, error) {
	progress, err := s.progressRepo.GetUserProgress(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load progress: %w", err)
	}

	progress.ApplyQuiz(s.now())
	unlocked := progress.EvaluateBadges()

	if err := s.withRetry(ctx, func(wctx context.Context) error {
		return s.progressRepo.SaveUserProgress(wctx, progress)
	}); err != nil {
		return nil, nil, err
	}

	s.logger.Info("Quiz completed",
		zap.Int64("user_id", userID),
		zap.Int("quizzes_completed", progress.QuizzesCompleted),
	)

	s.announceBadges(ctx, userID, unlocked)

	return progress, unlocked, nil
}

// Progress returns the user's current counters and earned badges.
func (s *StudyService) Progress(ctx context.Context, userID int64) (*domain.UserProgress, error) {
	return s.progressRepo.GetUserProgress(ctx, userID)
}

// withRetry runs a storage write with a per-attempt timeout, retrying
// transient failures a bounded number of times. NotFound is never retried.
func (s *StudyService) withRetry(ctx context.Context, op func(context.Context) error) error {
	var err error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		if attempt > 1 {
			s.logger.Warn("Retrying study write",
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt-1) * s.backoff):
			}
		}

		wctx, cancel := context.WithTimeout(ctx, storageTimeout)
		err = op(wctx)
		cancel()

		if err == nil {
			return nil
		}
		if errors.Is(err, domain.ErrCardNotFound) || errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
	}
	return fmt.Errorf("study write failed after %d attempts: %w", s.maxAttempts, err)
}

// announceBadges pushes badge unlock notifications through the sink. Delivery
// failures are logged only: the unlock is already committed.
func (s *StudyService) announceBadges(ctx context.Context, userID int64, badges []domain.Badge) {
	if len(badges) == 0 || s.notifier == nil {
		return
	}
	if err := s.notifier.SendBadgeUnlocked(ctx, userID, badges); err != nil {
		s.logger.Error("Failed to send badge notification",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}
}
