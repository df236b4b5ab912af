package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/trezcool/studium/core"
	"github.com/trezcool/studium/core/schedule"
)

// DateRangeQuery binds the optional ?start=YYYY-MM-DD&end=YYYY-MM-DD window
// on calendar listings. Unparseable bounds are ignored; the repository treats
// zero bounds as unbounded.
type DateRangeQuery struct {
	Start string `query:"start"`
	End   string `query:"end"`
}

func (q *DateRangeQuery) Bind(ctx echo.Context) schedule.DateRange {
	_ = ctx.Bind(q)
	var rng schedule.DateRange
	if d, err := schedule.ParseDate(core.CleanString(q.Start)); err == nil {
		rng.Start = d
	}
	if d, err := schedule.ParseDate(core.CleanString(q.End)); err == nil {
		rng.End = d
	}
	return rng
}
