package streak_test

import (
	"context"
	"testing"
	"time"

	"github.com/trezcool/studium/core/streak"
	inmemdb "github.com/trezcool/studium/storage/database/inmem"
)

func setup(t *testing.T) *streak.Service {
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	return streak.NewService(inmemdb.NewStreakRepository(db))
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestService_GetByUser_fresh(t *testing.T) {
	svc := setup(t)

	s, err := svc.GetByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetByUser() failed: %v", err)
	}
	if s.UserID != "user-1" || s.Current != 0 || s.Longest != 0 {
		t.Errorf("GetByUser() = %+v; want zero streak for user-1", s)
	}
}

func TestService_Record(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	steps := []struct {
		name        string
		day         time.Time
		wantCurrent int
		wantLongest int
	}{
		{name: "first session starts a run", day: day("2025-03-10"), wantCurrent: 1, wantLongest: 1},
		{name: "next day extends", day: day("2025-03-11"), wantCurrent: 2, wantLongest: 2},
		{name: "same day is a no-op", day: day("2025-03-11"), wantCurrent: 2, wantLongest: 2},
		{name: "time of day is ignored", day: day("2025-03-12").Add(23 * time.Hour), wantCurrent: 3, wantLongest: 3},
		{name: "earlier day is ignored", day: day("2025-03-01"), wantCurrent: 3, wantLongest: 3},
		{name: "gap restarts the run", day: day("2025-03-20"), wantCurrent: 1, wantLongest: 3},
		{name: "new run grows again", day: day("2025-03-21"), wantCurrent: 2, wantLongest: 3},
	}
	for _, tt := range steps {
		t.Run(tt.name, func(t *testing.T) {
			s, err := svc.Record(ctx, "user-1", tt.day)
			if err != nil {
				t.Fatalf("Record() failed: %v", err)
			}
			if s.Current != tt.wantCurrent {
				t.Errorf("Current = %v; want %v", s.Current, tt.wantCurrent)
			}
			if s.Longest != tt.wantLongest {
				t.Errorf("Longest = %v; want %v", s.Longest, tt.wantLongest)
			}
		})
	}

	t.Run("streaks are per user", func(t *testing.T) {
		s, err := svc.Record(ctx, "user-2", day("2025-03-21"))
		if err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
		if s.Current != 1 || s.Longest != 1 {
			t.Errorf("streak = %+v; want a fresh run for user-2", s)
		}
	})
}
