package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"hanbot/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

var progressCols = []string{
	"user_id", "study_points", "flashcards_studied", "quizzes_completed",
	"current_streak_days", "longest_streak_days", "last_study_date", "earned_badges",
}

func TestProgressRepo_GetUserProgress(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewProgressRepo(db)

	lastStudy := time.Now()
	rows := sqlmock.NewRows(progressCols).
		AddRow(int64(123), 12, 4, 1, 2, 5, lastStudy, pq.StringArray{"points_10"})

	mock.ExpectExec("INSERT INTO user_progress").
		WithArgs(int64(123)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM user_progress WHERE user_id = \\$1").
		WithArgs(int64(123)).
		WillReturnRows(rows)

	p, err := repo.GetUserProgress(context.Background(), 123)

	assert.NoError(t, err)
	assert.Equal(t, int64(123), p.UserID)
	assert.Equal(t, 12, p.StudyPoints)
	assert.Equal(t, 2, p.CurrentStreakDays)
	assert.Equal(t, 5, p.LongestStreakDays)
	assert.Equal(t, []string{"points_10"}, p.EarnedBadges)
	assert.NotNil(t, p.LastStudyDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgressRepo_GetUserProgress_FirstInteraction(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewProgressRepo(db)

	rows := sqlmock.NewRows(progressCols).
		AddRow(int64(456), 0, 0, 0, 0, 0, nil, pq.StringArray{})

	mock.ExpectExec("INSERT INTO user_progress").
		WithArgs(int64(456)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT (.+) FROM user_progress WHERE user_id = \\$1").
		WithArgs(int64(456)).
		WillReturnRows(rows)

	p, err := repo.GetUserProgress(context.Background(), 456)

	assert.NoError(t, err)
	assert.Equal(t, 0, p.StudyPoints)
	assert.Nil(t, p.LastStudyDate)
	assert.Empty(t, p.EarnedBadges)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgressRepo_GetUserProgress_InsertError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewProgressRepo(db)

	mock.ExpectExec("INSERT INTO user_progress").
		WithArgs(int64(123)).
		WillReturnError(fmt.Errorf("db down"))

	p, err := repo.GetUserProgress(context.Background(), 123)

	assert.Error(t, err)
	assert.Nil(t, p)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgressRepo_SaveUserProgress(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewProgressRepo(db)

	now := time.Now()
	p := &domain.UserProgress{
		UserID:            123,
		StudyPoints:       12,
		FlashcardsStudied: 4,
		QuizzesCompleted:  1,
		CurrentStreakDays: 2,
		LongestStreakDays: 5,
		LastStudyDate:     &now,
		EarnedBadges:      []string{"points_10"},
	}

	mock.ExpectExec("INSERT INTO user_progress").
		WithArgs(p.UserID, p.StudyPoints, p.FlashcardsStudied, p.QuizzesCompleted,
			p.CurrentStreakDays, p.LongestStreakDays, p.LastStudyDate, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.SaveUserProgress(context.Background(), p)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudyRepo_ApplyStudyResult(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewStudyRepo(db)

	now := time.Now()
	card := &domain.Flashcard{
		ID:              "id-1",
		UserID:          123,
		Phase:           domain.PhaseReview,
		IntervalMinutes: 30,
		DueAt:           now.Add(30 * time.Minute),
		LastStudiedAt:   &now,
	}
	progress := &domain.UserProgress{UserID: 123, StudyPoints: 3, FlashcardsStudied: 1}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE flashcards SET").
		WithArgs(card.ID, card.Phase, card.IntervalMinutes, card.DueAt, card.LastStudiedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO user_progress").
		WithArgs(progress.UserID, progress.StudyPoints, progress.FlashcardsStudied,
			progress.QuizzesCompleted, progress.CurrentStreakDays, progress.LongestStreakDays,
			nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = repo.ApplyStudyResult(context.Background(), card, progress)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudyRepo_ApplyStudyResult_CardMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewStudyRepo(db)

	card := &domain.Flashcard{ID: "missing", Phase: domain.PhaseLearning}
	progress := &domain.UserProgress{UserID: 123}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE flashcards SET").
		WithArgs(card.ID, card.Phase, card.IntervalMinutes, card.DueAt, card.LastStudiedAt).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err = repo.ApplyStudyResult(context.Background(), card, progress)

	assert.ErrorIs(t, err, domain.ErrCardNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudyRepo_ApplyStudyResult_ProgressErrorRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewStudyRepo(db)

	card := &domain.Flashcard{ID: "id-1", Phase: domain.PhaseLearning}
	progress := &domain.UserProgress{UserID: 123}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE flashcards SET").
		WithArgs(card.ID, card.Phase, card.IntervalMinutes, card.DueAt, card.LastStudiedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO user_progress").
		WillReturnError(fmt.Errorf("constraint violation"))
	mock.ExpectRollback()

	err = repo.ApplyStudyResult(context.Background(), card, progress)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
