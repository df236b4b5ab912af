package syllabus

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/studium/core"
	"github.com/trezcool/studium/core/class"
	"github.com/trezcool/studium/core/schedule"
)

// Service runs the ingestion pipeline: AI extraction, recurrence expansion,
// AI session planning, merge and persistence. The two AI calls are the only
// suspension points; the pure schedule core never sees the context.
type Service struct {
	parser   Parser
	planner  Planner
	classSvc *class.Service
	schedSvc *schedule.Service
	mailSvc  core.EmailService
	conf     *core.Config
	logger   core.Logger
}

func NewService(
	parser Parser,
	planner Planner,
	classSvc *class.Service,
	schedSvc *schedule.Service,
	mailSvc core.EmailService,
	conf *core.Config,
	logger core.Logger,
) *Service {
	return &Service{
		parser:   parser,
		planner:  planner,
		classSvc: classSvc,
		schedSvc: schedSvc,
		mailSvc:  mailSvc,
		conf:     conf,
		logger:   logger,
	}
}

// Ingest derives and persists a study plan for a class from raw syllabus
// text. Extraction failure aborts; everything downstream degrades instead:
// an unusable weekly schedule just means no class meetings, a failed or
// partial planning call just means fewer (or unlinked) study sessions.
func (svc *Service) Ingest(ctx context.Context, userID, userEmail, classID, text string) (Result, error) {
	cls, err := svc.classSvc.GetOwned(ctx, classID, userID)
	if err != nil {
		return Result{}, err
	}

	ext, err := svc.parser.ParseSyllabus(ctx, text)
	if err != nil {
		return Result{}, errors.Wrap(err, "parsing syllabus")
	}

	asgs, err := svc.classSvc.AddAssignments(ctx, cls.ID, coerceAssignments(ext.Assignments))
	if err != nil {
		return Result{}, errors.Wrap(err, "saving assignments")
	}

	termStart, termEnd := svc.conf.Term.Bounds(time.Now().UTC().Year())
	rng := schedule.DateRange{Start: schedule.Date{Time: termStart}, End: schedule.Date{Time: termEnd}}

	var meetings []schedule.ClassMeeting
	if weekly, ok := schedule.ResolveWeekly(ext.Schedule, rng); ok {
		if weekly.RolledMidnight {
			svc.logger.Warn("class meeting spans midnight; duration rolled over", core.Person{ID: userID})
		}
		if weekly.Clamped {
			svc.logger.Warn(fmt.Sprintf("class meeting duration clamped to %d minutes", weekly.DurationMinutes), core.Person{ID: userID})
		}
		meetings = schedule.Expand(weekly, cls.ID)
		rng = weekly.Range
	}

	var planned []schedule.PlannedSession
	if len(asgs) > 0 {
		if planned, err = svc.planner.PlanSessions(ctx, asgs, rng); err != nil {
			// best effort: a failed planning call must not lose the rest of the schedule
			svc.logger.Warn("study-session planning failed", errors.Wrap(err, "planning sessions"), core.Person{ID: userID})
			planned = nil
		}
	}

	ids := make([]string, 0, len(asgs))
	for _, asg := range asgs {
		ids = append(ids, asg.ID)
	}
	blocks, dropped := schedule.Merge(meetings, planned, ids, cls.ID, userID)
	if dropped > 0 {
		svc.logger.Warn(fmt.Sprintf("dropped %d planned sessions with unparseable dates", dropped), core.Person{ID: userID})
	}

	saved, err := svc.schedSvc.Replace(ctx, cls.ID, blocks)
	if err != nil {
		return Result{}, errors.Wrap(err, "saving study blocks")
	}

	if userEmail != "" {
		svc.mailSvc.SendMessages(planReadyEmail(cls, userEmail, len(saved)))
	}

	return Result{
		Topics:      ext.Topics,
		Assignments: asgs,
		Blocks:      saved,
		Meetings:    len(meetings),
		Sessions:    len(planned) - dropped,
		Dropped:     dropped,
	}, nil
}

// coerceAssignments filters the untrusted extraction down to records worth
// persisting; anything without a title is noise.
func coerceAssignments(exts []ExtractedAssignment) []class.NewAssignment {
	nas := make([]class.NewAssignment, 0, len(exts))
	for _, ext := range exts {
		if core.CleanString(ext.Title) == "" {
			continue
		}
		nas = append(nas, class.NewAssignment{
			Title:   core.CleanString(ext.Title),
			Notes:   core.CleanString(ext.Notes),
			DueDate: core.CleanString(ext.DueDate),
		})
	}
	return nas
}

func planReadyEmail(cls class.Class, email string, blockCount int) *core.EmailMessage {
	return &core.EmailMessage{
		To:      []mail.Address{{Address: email}},
		Subject: "Your study plan is ready",
		Body: fmt.Sprintf(
			"We generated %d study blocks for %s. Open your calendar to review them.",
			blockCount, cls.Name,
		),
	}
}
