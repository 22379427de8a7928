package postgres

import (
	"context"
	"database/sql"
	"time"

	"hanbot/internal/domain"

	"github.com/lib/pq"
)

// CardRepo implements repository.CardRepository
type CardRepo struct {
	db *sql.DB
}

// NewCardRepo creates a new card repository
func NewCardRepo(db *sql.DB) *CardRepo {
	return &CardRepo{db: db}
}

const cardColumns = `id, user_id, term, term_dfn, translation, translation_dfn, label,
		phase, interval_minutes, due_at, last_studied_at, last_reminder_at, created_at`

// SaveCard upserts a flashcard
func (r *CardRepo) SaveCard(ctx context.Context, card *domain.Flashcard) error {
	query := `
		INSERT INTO flashcards (
			id, user_id, term, term_dfn, translation, translation_dfn, label,
			phase, interval_minutes, due_at, last_studied_at, last_reminder_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			label = EXCLUDED.label,
			phase = EXCLUDED.phase,
			interval_minutes = EXCLUDED.interval_minutes,
			due_at = EXCLUDED.due_at,
			last_studied_at = EXCLUDED.last_studied_at,
			last_reminder_at = EXCLUDED.last_reminder_at
	`
	_, err := r.db.ExecContext(ctx, query,
		card.ID, card.UserID, card.Term, card.TermDfn, card.Translation, card.TranslationDfn,
		card.Label, card.Phase, card.IntervalMinutes, card.DueAt,
		card.LastStudiedAt, card.LastReminderAt, card.CreatedAt,
	)
	return err
}

// GetCard returns a flashcard by id
func (r *CardRepo) GetCard(ctx context.Context, id string) (*domain.Flashcard, error) {
	query := `SELECT ` + cardColumns + ` FROM flashcards WHERE id = $1`

	card, err := scanCard(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrCardNotFound
	}
	if err != nil {
		return nil, err
	}
	return card, nil
}

// GetCardsByUser returns all flashcards of a user, oldest first
func (r *CardRepo) GetCardsByUser(ctx context.Context, userID int64) ([]domain.Flashcard, error) {
	query := `SELECT ` + cardColumns + ` FROM flashcards WHERE user_id = $1 ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCards(rows)
}

// GetRandomCards returns up to limit random flashcards of a user
func (r *CardRepo) GetRandomCards(ctx context.Context, userID int64, limit int) ([]domain.Flashcard, error) {
	query := `SELECT ` + cardColumns + ` FROM flashcards WHERE user_id = $1 ORDER BY RANDOM() LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCards(rows)
}

// GetDueCards returns all flashcards across users whose due time has passed
func (r *CardRepo) GetDueCards(ctx context.Context, now time.Time) ([]domain.Flashcard, error) {
	query := `SELECT ` + cardColumns + ` FROM flashcards WHERE due_at <= $1 ORDER BY user_id, due_at ASC`

	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCards(rows)
}

// CountCards returns the number of flashcards a user has
func (r *CardRepo) CountCards(ctx context.Context, userID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM flashcards WHERE user_id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&count)
	return count, err
}

// UpdateLabel sets the label on a flashcard
func (r *CardRepo) UpdateLabel(ctx context.Context, cardID, label string) error {
	query := `UPDATE flashcards SET label = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, cardID, label)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// DeleteCard removes a flashcard
func (r *CardRepo) DeleteCard(ctx context.Context, cardID string) error {
	query := `DELETE FROM flashcards WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, cardID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// MarkReminded stamps the reminder time on every listed card
func (r *CardRepo) MarkReminded(ctx context.Context, cardIDs []string, at time.Time) error {
	if len(cardIDs) == 0 {
		return nil
	}
	query := `UPDATE flashcards SET last_reminder_at = $1 WHERE id = ANY($2)`
	_, err := r.db.ExecContext(ctx, query, at, pq.Array(cardIDs))
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (*domain.Flashcard, error) {
	var c domain.Flashcard
	var lastStudied, lastReminder sql.NullTime

	err := row.Scan(
		&c.ID, &c.UserID, &c.Term, &c.TermDfn, &c.Translation, &c.TranslationDfn,
		&c.Label, &c.Phase, &c.IntervalMinutes, &c.DueAt, &lastStudied, &lastReminder, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lastStudied.Valid {
		c.LastStudiedAt = &lastStudied.Time
	}
	if lastReminder.Valid {
		c.LastReminderAt = &lastReminder.Time
	}
	return &c, nil
}

func collectCards(rows *sql.Rows) ([]domain.Flashcard, error) {
	var cards []domain.Flashcard
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, *c)
	}
	return cards, rows.Err()
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrCardNotFound
	}
	return nil
}
