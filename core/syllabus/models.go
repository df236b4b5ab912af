package syllabus

import (
	"context"

	"github.com/trezcool/studium/core/class"
	"github.com/trezcool/studium/core/schedule"
)

type (
	// ExtractedAssignment is one assignment as reported by the AI extraction;
	// all fields are untrusted.
	ExtractedAssignment struct {
		Title   string `json:"title"`
		Notes   string `json:"notes,omitempty"`
		DueDate string `json:"dueDate,omitempty"`
	}

	// Extraction is everything the AI gateway pulled out of a syllabus.
	Extraction struct {
		Topics      []string              `json:"topics"`
		Assignments []ExtractedAssignment `json:"assignments"`
		Schedule    *schedule.WeeklyInput `json:"schedule"`
	}

	// Parser wraps the external AI syllabus-extraction call.
	Parser interface {
		ParseSyllabus(ctx context.Context, text string) (Extraction, error)
	}

	// Planner wraps the external AI study-session planning call. The
	// assignment order matters: returned sessions refer to assignments by
	// their zero-based position in asgs.
	Planner interface {
		PlanSessions(ctx context.Context, asgs []class.Assignment, rng schedule.DateRange) ([]schedule.PlannedSession, error)
	}

	// Result summarizes one ingestion run.
	Result struct {
		Topics      []string               `json:"topics"`
		Assignments []class.Assignment     `json:"assignments"`
		Blocks      []schedule.StudyBlock  `json:"blocks"`
		Meetings    int                    `json:"meetings"`
		Sessions    int                    `json:"sessions"`
		Dropped     int                    `json:"dropped"`
	}
)
