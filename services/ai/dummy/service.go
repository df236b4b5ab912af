package aidummy

import (
	"context"

	"github.com/trezcool/studium/core/class"
	"github.com/trezcool/studium/core/schedule"
	"github.com/trezcool/studium/core/syllabus"
)

// Service returns canned results instead of calling the AI gateway.
// Zero value parses to an empty extraction and plans nothing.
type Service struct {
	Extraction syllabus.Extraction
	Sessions   []schedule.PlannedSession
	ParseErr   error
	PlanErr    error
}

var (
	_ syllabus.Parser  = (*Service)(nil)
	_ syllabus.Planner = (*Service)(nil)
)

func NewService() *Service { return new(Service) }

func (svc *Service) ParseSyllabus(ctx context.Context, text string) (syllabus.Extraction, error) {
	if svc.ParseErr != nil {
		return syllabus.Extraction{}, svc.ParseErr
	}
	return svc.Extraction, nil
}

func (svc *Service) PlanSessions(ctx context.Context, asgs []class.Assignment, rng schedule.DateRange) ([]schedule.PlannedSession, error) {
	if svc.PlanErr != nil {
		return nil, svc.PlanErr
	}
	return svc.Sessions, nil
}
