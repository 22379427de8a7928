package postgres

import (
	"context"
	"database/sql"

	"hanbot/internal/domain"

	"github.com/lib/pq"
)

// ProgressRepo implements repository.ProgressRepository
type ProgressRepo struct {
	db *sql.DB
}

// NewProgressRepo creates a new progress repository
func NewProgressRepo(db *sql.DB) *ProgressRepo {
	return &ProgressRepo{db: db}
}

const progressColumns = `user_id, study_points, flashcards_studied, quizzes_completed,
		current_streak_days, longest_streak_days, last_study_date, earned_badges`

// GetUserProgress returns the progress record of a user, creating a zeroed
// record on first interaction.
func (r *ProgressRepo) GetUserProgress(ctx context.Context, userID int64) (*domain.UserProgress, error) {
	insert := `
		INSERT INTO user_progress (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, insert, userID); err != nil {
		return nil, err
	}

	query := `SELECT ` + progressColumns + ` FROM user_progress WHERE user_id = $1`

	var p domain.UserProgress
	var lastStudy sql.NullTime
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID, &p.StudyPoints, &p.FlashcardsStudied, &p.QuizzesCompleted,
		&p.CurrentStreakDays, &p.LongestStreakDays, &lastStudy, pq.Array(&p.EarnedBadges),
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if lastStudy.Valid {
		p.LastStudyDate = &lastStudy.Time
	}
	return &p, nil
}

// SaveUserProgress upserts a progress record
func (r *ProgressRepo) SaveUserProgress(ctx context.Context, progress *domain.UserProgress) error {
	_, err := r.db.ExecContext(ctx, progressUpsertQuery, progressUpsertArgs(progress)...)
	return err
}

const progressUpsertQuery = `
	INSERT INTO user_progress (
		user_id, study_points, flashcards_studied, quizzes_completed,
		current_streak_days, longest_streak_days, last_study_date, earned_badges
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (user_id) DO UPDATE SET
		study_points = EXCLUDED.study_points,
		flashcards_studied = EXCLUDED.flashcards_studied,
		quizzes_completed = EXCLUDED.quizzes_completed,
		current_streak_days = EXCLUDED.current_streak_days,
		longest_streak_days = EXCLUDED.longest_streak_days,
		last_study_date = EXCLUDED.last_study_date,
		earned_badges = EXCLUDED.earned_badges
`

func progressUpsertArgs(p *domain.UserProgress) []any {
	badges := p.EarnedBadges
	if badges == nil {
		badges = []string{}
	}
	return []any{
		p.UserID, p.StudyPoints, p.FlashcardsStudied, p.QuizzesCompleted,
		p.CurrentStreakDays, p.LongestStreakDays, p.LastStudyDate, pq.Array(badges),
	}
}
