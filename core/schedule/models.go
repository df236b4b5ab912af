package schedule

import (
	"database/sql/driver"
	"time"

	"github.com/friendsofgo/errors"
	"github.com/volatiletech/null/v8"
)

const dateLayout = "2006-01-02"

// Block duration bounds (minutes). Upstream AI extraction is unreliable;
// anything outside these bounds is clamped, never rejected.
const (
	MinBlockMinutes = 15
	MaxBlockMinutes = 240

	minutesPerDay = 24 * 60
)

// Date is a civil calendar date with no time-of-day; it marshals as "YYYY-MM-DD".
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	ts, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, errors.Wrap(err, "parsing date")
	}
	return Date{ts}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) AddDays(n int) Date {
	return Date{d.AddDate(0, 0, n)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		d.Time = time.Time{}
		return nil
	}
	ts, err := time.Parse(`"`+dateLayout+`"`, s)
	if err != nil {
		return errors.Wrap(err, "unmarshalling date")
	}
	d.Time = ts
	return nil
}

func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		d.Time = v.UTC()
		return nil
	case nil:
		d.Time = time.Time{}
		return nil
	default:
		return errors.Errorf("cannot scan %T into Date", src)
	}
}

// DateRange is an inclusive [Start, End] civil-date range.
type DateRange struct {
	Start Date
	End   Date
}

// Days returns the number of dates in the range (0 if reversed).
func (r DateRange) Days() int {
	if r.Start.After(r.End.Time) {
		return 0
	}
	return int(r.End.Sub(r.Start.Time)/(24*time.Hour)) + 1
}

// WeeklyInput is the raw weekly meeting pattern as extracted by the AI
// gateway; all fields are untrusted strings.
type WeeklyInput struct {
	Days      []string `json:"days"`
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
	StartDate string   `json:"startDate,omitempty"`
	EndDate   string   `json:"endDate,omitempty"`
}

// Weekly is a resolved, usable weekly meeting pattern. A Weekly only exists
// once ResolveWeekly has accepted the raw input; absence/unusability never
// reaches the generator.
type Weekly struct {
	Days            map[time.Weekday]bool
	StartTime       string // "HH:mm", as extracted
	DurationMinutes int    // clamped to [MinBlockMinutes, MaxBlockMinutes]
	Range           DateRange

	// recovered anomalies, for the caller to log
	RolledMidnight bool
	Clamped        bool
}

// ClassMeeting is one concrete calendar occurrence of a weekly class schedule.
type ClassMeeting struct {
	ClassID         string
	Date            Date
	StartTime       string
	DurationMinutes int
}

// PlannedSession is one assignment study slot proposed by the external AI
// planner. AssignmentIndex refers back to the ordered assignment list the
// planner was given.
type PlannedSession struct {
	BlockDate       string      `json:"blockDate"`
	StartTime       null.String `json:"startTime"`
	DurationMinutes int         `json:"durationMinutes"`
	AssignmentIndex int         `json:"assignmentIndex"`
}

// StudyBlock is the persisted calendar unit: either a class meeting
// (null assignment link) or an assignment study session.
type StudyBlock struct {
	ID              string      `db:"id" json:"id"`
	UserID          string      `db:"user_id" json:"user_id"`
	ClassID         string      `db:"class_id" json:"class_id"`
	AssignmentID    null.String `db:"assignment_id" json:"assignment_id"`
	BlockDate       Date        `db:"block_date" json:"block_date"`
	StartTime       null.String `db:"start_time" json:"start_time"`
	DurationMinutes int         `db:"duration_minutes" json:"duration_minutes"`
	CreatedAt       time.Time   `db:"created_at" json:"created_at"` // UTC
}
