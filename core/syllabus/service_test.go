package syllabus_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/studium/core"
	"github.com/trezcool/studium/core/class"
	"github.com/trezcool/studium/core/schedule"
	"github.com/trezcool/studium/core/syllabus"
	aidummy "github.com/trezcool/studium/services/ai/dummy"
	emailsvc "github.com/trezcool/studium/services/email"
	inmemdb "github.com/trezcool/studium/storage/database/inmem"
)

type testDeps struct {
	svc      *syllabus.Service
	classSvc *class.Service
	schedSvc *schedule.Service
	ai       *aidummy.Service
}

func setup(t *testing.T) *testDeps {
	conf := core.NewConfig()
	conf.TestMode = true

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}

	logger := core.NopLogger{}
	ai := aidummy.NewService()
	classSvc := class.NewService(inmemdb.NewClassRepository(db))
	schedSvc := schedule.NewService(inmemdb.NewScheduleRepository(db), logger)
	emailsvc.SentMessages = emailsvc.SentMessages[:0]

	return &testDeps{
		svc: syllabus.NewService(
			ai, ai, classSvc, schedSvc, emailsvc.NewConsoleServiceMock(conf), conf, logger,
		),
		classSvc: classSvc,
		schedSvc: schedSvc,
		ai:       ai,
	}
}

func createClass(t *testing.T, deps *testDeps, userID, name string) class.Class {
	cls, err := deps.classSvc.Create(context.Background(), userID, class.NewClass{Name: name})
	if err != nil {
		t.Fatalf("creating class failed: %v", err)
	}
	return cls
}

func TestService_Ingest(t *testing.T) {
	deps := setup(t)
	ctx := context.Background()
	cls := createClass(t, deps, "user-1", "Algorithms")

	deps.ai.Extraction = syllabus.Extraction{
		Topics: []string{"Sorting", "Graphs"},
		Assignments: []syllabus.ExtractedAssignment{
			{Title: "Problem Set 1", DueDate: "2025-01-20"},
			{Title: "  "}, // untitled noise is skipped
			{Title: "Problem Set 2"},
		},
		Schedule: &schedule.WeeklyInput{
			Days:      []string{"Monday", "Wednesday"},
			StartTime: "10:00",
			EndTime:   "11:00",
			StartDate: "2025-01-13",
			EndDate:   "2025-01-24",
		},
	}
	deps.ai.Sessions = []schedule.PlannedSession{
		{BlockDate: "2025-01-16", StartTime: null.StringFrom("18:00"), DurationMinutes: 45, AssignmentIndex: 0},
		{BlockDate: "not a date", DurationMinutes: 45, AssignmentIndex: 1},
	}

	res, err := deps.svc.Ingest(ctx, "user-1", "jo@test.cd", cls.ID, "CS 301 ...")
	if err != nil {
		t.Fatalf("Ingest() failed: %v", err)
	}

	if len(res.Assignments) != 2 {
		t.Errorf("len(Assignments) = %v; want 2", len(res.Assignments))
	}
	if res.Meetings != 4 || res.Sessions != 1 || res.Dropped != 1 {
		t.Errorf("Meetings/Sessions/Dropped = %v/%v/%v; want 4/1/1", res.Meetings, res.Sessions, res.Dropped)
	}
	if len(res.Blocks) != 5 {
		t.Fatalf("len(Blocks) = %v; want 5", len(res.Blocks))
	}
	if got, want := res.Blocks[4].AssignmentID.String, res.Assignments[0].ID; got != want {
		t.Errorf("Blocks[4].AssignmentID = %v; want %v", got, want)
	}

	// blocks were persisted
	blocks, err := deps.schedSvc.QueryByClass(ctx, cls.ID)
	if err != nil {
		t.Fatalf("QueryByClass() failed: %v", err)
	}
	if len(blocks) != 5 {
		t.Errorf("len(blocks) = %v; want 5", len(blocks))
	}

	// the user was notified
	if len(emailsvc.SentMessages) != 1 {
		t.Fatalf("len(SentMessages) = %v; want 1", len(emailsvc.SentMessages))
	}
	if got := emailsvc.SentMessages[0].To[0].Address; got != "jo@test.cd" {
		t.Errorf("To = %v; want jo@test.cd", got)
	}
}

func TestService_Ingest_reingestReplaces(t *testing.T) {
	deps := setup(t)
	ctx := context.Background()
	cls := createClass(t, deps, "user-1", "Algorithms")

	deps.ai.Extraction = syllabus.Extraction{
		Schedule: &schedule.WeeklyInput{
			Days:      []string{"Friday"},
			StartTime: "14:00",
			EndTime:   "15:00",
			StartDate: "2025-01-17",
			EndDate:   "2025-01-31",
		},
	}

	for i := 0; i < 2; i++ {
		if _, err := deps.svc.Ingest(ctx, "user-1", "", cls.ID, "..."); err != nil {
			t.Fatalf("Ingest() run %d failed: %v", i, err)
		}
	}

	blocks, err := deps.schedSvc.QueryByClass(ctx, cls.ID)
	if err != nil {
		t.Fatalf("QueryByClass() failed: %v", err)
	}
	if len(blocks) != 3 { // Fridays 17, 24, 31; not doubled
		t.Errorf("len(blocks) = %v; want 3", len(blocks))
	}
}

func TestService_Ingest_degradations(t *testing.T) {
	t.Run("extraction failure aborts", func(t *testing.T) {
		deps := setup(t)
		cls := createClass(t, deps, "user-1", "Algorithms")
		deps.ai.ParseErr = errors.New("gateway down")

		if _, err := deps.svc.Ingest(context.Background(), "user-1", "", cls.ID, "..."); err == nil {
			t.Error("Ingest() error = nil; want gateway error")
		}
	})

	t.Run("planning failure keeps class meetings", func(t *testing.T) {
		deps := setup(t)
		cls := createClass(t, deps, "user-1", "Algorithms")
		deps.ai.Extraction = syllabus.Extraction{
			Assignments: []syllabus.ExtractedAssignment{{Title: "Essay"}},
			Schedule: &schedule.WeeklyInput{
				Days:      []string{"Monday"},
				StartTime: "10:00",
				EndTime:   "11:00",
				StartDate: "2025-01-13",
				EndDate:   "2025-01-20",
			},
		}
		deps.ai.PlanErr = errors.New("gateway down")

		res, err := deps.svc.Ingest(context.Background(), "user-1", "", cls.ID, "...")
		if err != nil {
			t.Fatalf("Ingest() failed: %v", err)
		}
		if res.Meetings != 2 || len(res.Blocks) != 2 {
			t.Errorf("Meetings = %v, len(Blocks) = %v; want 2 and 2", res.Meetings, len(res.Blocks))
		}
	})

	t.Run("unusable schedule means no meetings", func(t *testing.T) {
		deps := setup(t)
		cls := createClass(t, deps, "user-1", "Algorithms")
		deps.ai.Extraction = syllabus.Extraction{
			Schedule: &schedule.WeeklyInput{Days: []string{"Funday"}, StartTime: "10:00", EndTime: "11:00"},
		}

		res, err := deps.svc.Ingest(context.Background(), "user-1", "", cls.ID, "...")
		if err != nil {
			t.Fatalf("Ingest() failed: %v", err)
		}
		if res.Meetings != 0 || len(res.Blocks) != 0 {
			t.Errorf("Meetings = %v, len(Blocks) = %v; want 0 and 0", res.Meetings, len(res.Blocks))
		}
	})

	t.Run("other user's class is hidden", func(t *testing.T) {
		deps := setup(t)
		cls := createClass(t, deps, "user-1", "Algorithms")

		_, err := deps.svc.Ingest(context.Background(), "user-2", "", cls.ID, "...")
		if errors.Cause(err) != class.ErrNotFound {
			t.Errorf("Ingest() error = %v; want ErrNotFound", err)
		}
	})
}
