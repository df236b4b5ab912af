package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studium/core"
	"github.com/trezcool/studium/core/schedule"
)

type studyApi struct {
	deps *ServerDeps
}

func registerStudyAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps *ServerDeps) {
	api := studyApi{deps: deps}

	ag := g.Group("", jwt)
	ag.GET("/study-blocks", api.queryBlocks)
	ag.POST("/study-sessions", api.recordSession)
	ag.GET("/streak", api.retrieveStreak)
}

// queryBlocks lists the user's calendar across all classes, optionally
// windowed with ?start=YYYY-MM-DD&end=YYYY-MM-DD.
func (api *studyApi) queryBlocks(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	rng := new(DateRangeQuery).Bind(ctx)
	blocks, err := api.deps.ScheduleSvc.QueryByUser(ctx.Request().Context(), claims.Subject, rng)
	if err != nil {
		return errors.Wrap(err, "querying study blocks")
	}
	if blocks == nil {
		blocks = []schedule.StudyBlock{}
	}
	return ctx.JSON(http.StatusOK, blocks)
}

type RecordSessionRequest struct {
	Date string `json:"date" validate:"required,isodate"`
}

func (r *RecordSessionRequest) Validate(deps *ServerDeps) error {
	r.Date = core.CleanString(r.Date)
	return deps.Validate.Struct(r)
}

// recordSession marks a study session done on a given day and bumps the
// user's streak.
func (api *studyApi) recordSession(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data RecordSessionRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to RecordSessionRequest")
	}
	if err = data.Validate(api.deps); err != nil {
		return err
	}

	day, err := schedule.ParseDate(data.Date)
	if err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "date", Error: "invalid date"})
	}

	s, err := api.deps.StreakSvc.Record(ctx.Request().Context(), claims.Subject, day.Time)
	if err != nil {
		return errors.Wrap(err, "recording study session")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *studyApi) retrieveStreak(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	s, err := api.deps.StreakSvc.GetByUser(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "getting streak")
	}
	return ctx.JSON(http.StatusOK, s)
}
