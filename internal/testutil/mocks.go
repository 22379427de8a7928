package testutil

import (
	"context"
	"time"

	"hanbot/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockCardRepository is a mock for CardRepository
type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) SaveCard(ctx context.Context, card *domain.Flashcard) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) GetCard(ctx context.Context, id string) (*domain.Flashcard, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flashcard), args.Error(1)
}

func (m *MockCardRepository) GetCardsByUser(ctx context.Context, userID int64) ([]domain.Flashcard, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flashcard), args.Error(1)
}

func (m *MockCardRepository) GetRandomCards(ctx context.Context, userID int64, limit int) ([]domain.Flashcard, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flashcard), args.Error(1)
}

func (m *MockCardRepository) GetDueCards(ctx context.Context, now time.Time) ([]domain.Flashcard, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flashcard), args.Error(1)
}

func (m *MockCardRepository) CountCards(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockCardRepository) UpdateLabel(ctx context.Context, cardID, label string) error {
	args := m.Called(ctx, cardID, label)
	return args.Error(0)
}

func (m *MockCardRepository) DeleteCard(ctx context.Context, cardID string) error {
	args := m.Called(ctx, cardID)
	return args.Error(0)
}

func (m *MockCardRepository) MarkReminded(ctx context.Context, cardIDs []string, at time.Time) error {
	args := m.Called(ctx, cardIDs, at)
	return args.Error(0)
}

// MockProgressRepository is a mock for ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) GetUserProgress(ctx context.Context, userID int64) (*domain.UserProgress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProgress), args.Error(1)
}

func (m *MockProgressRepository) SaveUserProgress(ctx context.Context, progress *domain.UserProgress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

// MockStudyRepository is a mock for StudyRepository
type MockStudyRepository struct {
	mock.Mock
}

func (m *MockStudyRepository) ApplyStudyResult(ctx context.Context, card *domain.Flashcard, progress *domain.UserProgress) error {
	args := m.Called(ctx, card, progress)
	return args.Error(0)
}

// MockNotifier is a mock for the notification sink
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendReminder(ctx context.Context, userID int64, cards []domain.Flashcard) error {
	args := m.Called(ctx, userID, cards)
	return args.Error(0)
}

func (m *MockNotifier) SendBadgeUnlocked(ctx context.Context, userID int64, badges []domain.Badge) error {
	args := m.Called(ctx, userID, badges)
	return args.Error(0)
}
