package streak

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("streak not found")

type (
	Repository interface {
		GetStreakByUserID(ctx context.Context, userID string) (Streak, error)
		UpsertStreak(ctx context.Context, s Streak) (Streak, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) GetByUser(ctx context.Context, userID string) (Streak, error) {
	s, err := svc.repo.GetStreakByUserID(ctx, userID)
	if err == ErrNotFound {
		return Streak{UserID: userID}, nil
	}
	return s, err
}

// Record bumps the user's streak for the civil day a study session was
// completed on. Repeats on the same day are no-ops; a day immediately after
// the last one extends the streak; anything later restarts it at 1. Days
// before the last recorded one are ignored (out-of-order delivery).
func (svc *Service) Record(ctx context.Context, userID string, day time.Time) (Streak, error) {
	day = truncateDay(day)
	now := time.Now().UTC()

	s, err := svc.repo.GetStreakByUserID(ctx, userID)
	if err == ErrNotFound {
		return svc.repo.UpsertStreak(ctx, Streak{
			UserID:        userID,
			Current:       1,
			Longest:       1,
			LastStudyDate: day,
			UpdatedAt:     now,
		})
	}
	if err != nil {
		return Streak{}, err
	}

	last := truncateDay(s.LastStudyDate)
	switch {
	case day.Equal(last) || day.Before(last):
		return s, nil
	case day.Equal(last.AddDate(0, 0, 1)):
		s.Current++
	default:
		s.Current = 1
	}
	if s.Current > s.Longest {
		s.Longest = s.Current
	}
	s.LastStudyDate = day
	s.UpdatedAt = now
	return svc.repo.UpsertStreak(ctx, s)
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
