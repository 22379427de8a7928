package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"hanbot/internal/domain"
)

// StudyRepo implements repository.StudyRepository
type StudyRepo struct {
	db *sql.DB
}

// NewStudyRepo creates a new study repository
func NewStudyRepo(db *sql.DB) *StudyRepo {
	return &StudyRepo{db: db}
}

// ApplyStudyResult writes the rescheduled card and the updated progress
// record in a single transaction, so a card can never advance without its
// progress credit or vice versa.
func (r *StudyRepo) ApplyStudyResult(ctx context.Context, card *domain.Flashcard, progress *domain.UserProgress) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	cardQuery := `
		UPDATE flashcards SET
			phase = $2,
			interval_minutes = $3,
			due_at = $4,
			last_studied_at = $5
		WHERE id = $1
	`
	res, err := tx.ExecContext(ctx, cardQuery,
		card.ID, card.Phase, card.IntervalMinutes, card.DueAt, card.LastStudiedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update flashcard: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrCardNotFound
	}

	if _, err := tx.ExecContext(ctx, progressUpsertQuery, progressUpsertArgs(progress)...); err != nil {
		return fmt.Errorf("failed to update progress: %w", err)
	}

	return tx.Commit()
}
