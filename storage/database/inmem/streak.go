package inmemdb

import (
	"context"

	"github.com/trezcool/studium/core/streak"
)

type streakRepository struct {
	streaks *streakTable
}

var _ streak.Repository = (*streakRepository)(nil) // interface compliance check

func NewStreakRepository(db *DB) streak.Repository {
	return &streakRepository{streaks: db.streaks}
}

func (repo *streakRepository) GetStreakByUserID(ctx context.Context, userID string) (streak.Streak, error) {
	repo.streaks.RLock()
	defer repo.streaks.RUnlock()

	if s, ok := repo.streaks.table[userID]; ok {
		return *s, nil
	}
	return streak.Streak{}, streak.ErrNotFound
}

func (repo *streakRepository) UpsertStreak(ctx context.Context, s streak.Streak) (streak.Streak, error) {
	repo.streaks.Lock()
	defer repo.streaks.Unlock()

	repo.streaks.table[s.UserID] = &s
	return s, nil
}
