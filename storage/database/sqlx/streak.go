package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/friendsofgo/errors"
	"github.com/jmoiron/sqlx"

	"github.com/trezcool/studium/core/streak"
)

type streakRepository struct {
	db *sqlx.DB
}

var _ streak.Repository = (*streakRepository)(nil) // interface compliance check

func NewStreakRepository(db *sqlx.DB) *streakRepository {
	return &streakRepository{db: db}
}

func (repo *streakRepository) GetStreakByUserID(ctx context.Context, userID string) (streak.Streak, error) {
	var s streak.Streak
	err := repo.db.GetContext(ctx, &s, `
		SELECT user_id, current, longest, last_study_date, updated_at
		FROM streaks WHERE user_id = $1`, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return streak.Streak{}, streak.ErrNotFound
		}
		return streak.Streak{}, errors.Wrap(err, "getting streak")
	}
	return s, nil
}

func (repo *streakRepository) UpsertStreak(ctx context.Context, s streak.Streak) (streak.Streak, error) {
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO streaks (user_id, current, longest, last_study_date, updated_at)
		VALUES (:user_id, :current, :longest, :last_study_date, :updated_at)
		ON CONFLICT (user_id) DO UPDATE
		SET current = :current, longest = :longest, last_study_date = :last_study_date, updated_at = :updated_at`, s)
	if err != nil {
		return streak.Streak{}, errors.Wrap(err, "upserting streak")
	}
	return s, nil
}
