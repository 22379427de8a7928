package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"hanbot/internal/domain"
	"hanbot/internal/srs"
	"hanbot/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newStudyService(
	cardRepo *testutil.MockCardRepository,
	progressRepo *testutil.MockProgressRepository,
	studyRepo *testutil.MockStudyRepository,
	notifier *testutil.MockNotifier,
	now time.Time,
) *StudyService {
	s := NewStudyService(cardRepo, progressRepo, studyRepo, srs.DefaultParams(), notifier, testutil.NewTestLogger())
	s.now = func() time.Time { return now }
	s.backoff = time.Millisecond
	return s
}

func TestStudyService_SubmitRating(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	cardRepo := new(testutil.MockCardRepository)
	progressRepo := new(testutil.MockProgressRepository)
	studyRepo := new(testutil.MockStudyRepository)
	notifier := new(testutil.MockNotifier)

	card := testutil.NewTestCard("card-1", 123, now.Add(-time.Hour))
	cardRepo.On("GetCard", mock.Anything, "card-1").Return(&card, nil)
	progressRepo.On("GetUserProgress", mock.Anything, int64(123)).Return(testutil.NewTestProgress(123), nil)
	studyRepo.On("ApplyStudyResult", mock.Anything, &card, mock.Anything).Return(nil)

	service := newStudyService(cardRepo, progressRepo, studyRepo, notifier, now)

	updated, progress, badges, err := service.SubmitRating(context.Background(), "card-1", domain.RatingGood)

	assert.NoError(t, err)
	assert.Equal(t, domain.PhaseReview, updated.Phase)
	assert.Equal(t, 30, updated.IntervalMinutes)
	assert.Equal(t, now.Add(30*time.Minute), updated.DueAt)
	assert.Equal(t, 3, progress.StudyPoints)
	assert.Equal(t, 1, progress.FlashcardsStudied)
	assert.Equal(t, 1, progress.CurrentStreakDays)
	assert.Empty(t, badges)

	cardRepo.AssertExpectations(t)
	progressRepo.AssertExpectations(t)
	studyRepo.AssertExpectations(t)
	notifier.AssertNotCalled(t, "SendBadgeUnlocked", mock.Anything, mock.Anything, mock.Anything)
}

func TestStudyService_SubmitRating_UnlocksBadge(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	cardRepo := new(testutil.MockCardRepository)
	progressRepo := new(testutil.MockProgressRepository)
	studyRepo := new(testutil.MockStudyRepository)
	notifier := new(testutil.MockNotifier)

	card := testutil.NewTestCard("card-1", 123, now.Add(-time.Hour))
	progress := testutil.NewTestProgress(123)
	progress.StudyPoints = 9

	cardRepo.On("GetCard", mock.Anything, "card-1").Return(&card, nil)
	progressRepo.On("GetUserProgress", mock.Anything, int64(123)).Return(progress, nil)
	studyRepo.On("ApplyStudyResult", mock.Anything, &card, progress).Return(nil)
	notifier.On("SendBadgeUnlocked", mock.Anything, int64(123), mock.Anything).Return(nil)

	service := newStudyService(cardRepo, progressRepo, studyRepo, notifier, now)

	// 9 points + 3 for a good rating crosses the threshold of 10.
	_, updatedProgress, badges, err := service.SubmitRating(context.Background(), "card-1", domain.RatingGood)

	assert.NoError(t, err)
	assert.Equal(t, 12, updatedProgress.StudyPoints)
	assert.Len(t, badges, 1)
	assert.Equal(t, "points_10", badges[0].ID)
	assert.True(t, updatedProgress.HasBadge("points_10"))

	notifier.AssertExpectations(t)
}

func TestStudyService_SubmitRating_CardNotFound(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	cardRepo := new(testutil.MockCardRepository)
	progressRepo := new(testutil.MockProgressRepository)
	studyRepo := new(testutil.MockStudyRepository)
	notifier := new(testutil.MockNotifier)

	cardRepo.On("GetCard", mock.Anything, "missing").Return(nil, domain.ErrCardNotFound)

	service := newStudyService(cardRepo, progressRepo, studyRepo, notifier, now)

	_, _, _, err := service.SubmitRating(context.Background(), "missing", domain.RatingGood)

	assert.ErrorIs(t, err, domain.ErrCardNotFound)
	studyRepo.AssertNotCalled(t, "ApplyStudyResult", mock.Anything, mock.Anything, mock.Anything)
}

func TestStudyService_SubmitRating_RetriesTransientFailure(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	cardRepo := new(testutil.MockCardRepository)
	progressRepo := new(testutil.MockProgressRepository)
	studyRepo := new(testutil.MockStudyRepository)
	notifier := new(testutil.MockNotifier)

	card := testutil.NewTestCard("card-1", 123, now.Add(-time.Hour))
	cardRepo.On("GetCard", mock.Anything, "card-1").Return(&card, nil)
	progressRepo.On("GetUserProgress", mock.Anything, int64(123)).Return(testutil.NewTestProgress(123), nil)

	studyRepo.On("ApplyStudyResult", mock.Anything, &card, mock.Anything).
		Return(fmt.Errorf("storage unavailable")).Twice()
	studyRepo.On("ApplyStudyResult", mock.Anything, &card, mock.Anything).
		Return(nil).Once()

	service := newStudyService(cardRepo, progressRepo, studyRepo, notifier, now)

	_, _, _, err := service.SubmitRating(context.Background(), "card-1", domain.RatingOkay)

	assert.NoError(t, err)
	studyRepo.AssertNumberOfCalls(t, "ApplyStudyResult", 3)
}

func TestStudyService_SubmitRating_RetriesExhausted(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	cardRepo := new(testutil.MockCardRepository)
	progressRepo := new(testutil.MockProgressRepository)
	studyRepo := new(testutil.MockStudyRepository)
	notifier := new(testutil.MockNotifier)

	card := testutil.NewTestCard("card-1", 123, now.Add(-time.Hour))
	cardRepo.On("GetCard", mock.Anything, "card-1").Return(&card, nil)
	progressRepo.On("GetUserProgress", mock.Anything, int64(123)).Return(testutil.NewTestProgress(123), nil)
	studyRepo.On("ApplyStudyResult", mock.Anything, &card, mock.Anything).
		Return(fmt.Errorf("storage unavailable"))

	service := newStudyService(cardRepo, progressRepo, studyRepo, notifier, now)

	_, _, _, err := service.SubmitRating(context.Background(), "card-1", domain.RatingOkay)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
	studyRepo.AssertNumberOfCalls(t, "ApplyStudyResult", 3)
}

func TestStudyService_CompleteQuiz(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	cardRepo := new(testutil.MockCardRepository)
	progressRepo := new(testutil.MockProgressRepository)
	studyRepo := new(testutil.MockStudyRepository)
	notifier := new(testutil.MockNotifier)

	progress := testutil.NewTestProgress(123)
	progress.QuizzesCompleted = 4

	progressRepo.On("GetUserProgress", mock.Anything, int64(123)).Return(progress, nil)
	progressRepo.On("SaveUserProgress", mock.Anything, progress).Return(nil)
	notifier.On("SendBadgeUnlocked", mock.Anything, int64(123), mock.Anything).Return(nil)

	service := newStudyService(cardRepo, progressRepo, studyRepo, notifier, now)

	updated, badges, err := service.CompleteQuiz(context.Background(), 123)

	assert.NoError(t, err)
	assert.Equal(t, 5, updated.QuizzesCompleted)
	assert.Len(t, badges, 1)
	assert.Equal(t, "quizzes_5", badges[0].ID)

	progressRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestStudyService_CompleteQuiz_BadgeNotificationFailureIsNotFatal(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	cardRepo := new(testutil.MockCardRepository)
	progressRepo := new(testutil.MockProgressRepository)
	studyRepo := new(testutil.MockStudyRepository)
	notifier := new(testutil.MockNotifier)

	progress := testutil.NewTestProgress(123)
	progress.QuizzesCompleted = 4

	progressRepo.On("GetUserProgress", mock.Anything, int64(123)).Return(progress, nil)
	progressRepo.On("SaveUserProgress", mock.Anything, progress).Return(nil)
	notifier.On("SendBadgeUnlocked", mock.Anything, int64(123), mock.Anything).
		Return(fmt.Errorf("telegram down"))

	service := newStudyService(cardRepo, progressRepo, studyRepo, notifier, now)

	_, badges, err := service.CompleteQuiz(context.Background(), 123)

	// The unlock is committed; delivery failure is only logged.
	assert.NoError(t, err)
	assert.Len(t, badges, 1)
}
