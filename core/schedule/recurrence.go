package schedule

import (
	"strconv"
	"strings"
	"time"
)

// dayTokens maps the day spellings seen in AI-extracted syllabi to weekdays.
// Full names, 3-letter abbreviations and the informal single letters used on
// US course listings (M/T/W/R/F) are accepted. "S" is claimed by Saturday;
// Sunday has no single-letter form. That mapping is kept as-is for
// compatibility with stored schedules even though "S" is ambiguous.
var dayTokens = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday, "m": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday, "t": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday, "w": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday, "r": time.Thursday,
	"friday": time.Friday, "fri": time.Friday, "f": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday, "s": time.Saturday,
}

// resolveDays maps raw day tokens to a weekday set, dropping unknown tokens
// and collapsing duplicates.
func resolveDays(tokens []string) map[time.Weekday]bool {
	days := make(map[time.Weekday]bool, len(tokens))
	for _, tok := range tokens {
		if wd, ok := dayTokens[strings.ToLower(strings.TrimSpace(tok))]; ok {
			days[wd] = true
		}
	}
	return days
}

// parseClock parses a 24-hour "HH:mm" string into total minutes since
// midnight. It is deliberately lenient: any two non-negative integers
// separated by a colon are accepted.
func parseClock(s string) (int, bool) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 {
		return 0, false
	}
	min, err := strconv.Atoi(parts[1])
	if err != nil || min < 0 {
		return 0, false
	}
	return hour*60 + min, true
}

// clampMinutes forces a duration into [MinBlockMinutes, MaxBlockMinutes].
func clampMinutes(d int) int {
	if d < MinBlockMinutes {
		return MinBlockMinutes
	}
	if d > MaxBlockMinutes {
		return MaxBlockMinutes
	}
	return d
}

// ResolveWeekly validates raw AI-extracted schedule data into a usable
// Weekly pattern. ok is false when no pattern can be derived: the schedule is
// absent, has no recognizable day, or has unparseable times. That is not an
// error; it just means the class has no derivable meeting pattern.
//
// Missing start/end dates default to def (the academic-term fallback from
// config); unparseable dates are treated the same as missing ones.
func ResolveWeekly(raw *WeeklyInput, def DateRange) (Weekly, bool) {
	if raw == nil {
		return Weekly{}, false
	}
	if len(raw.Days) == 0 || raw.StartTime == "" || raw.EndTime == "" {
		return Weekly{}, false
	}

	days := resolveDays(raw.Days)
	if len(days) == 0 {
		return Weekly{}, false
	}

	start, ok := parseClock(raw.StartTime)
	if !ok {
		return Weekly{}, false
	}
	end, ok := parseClock(raw.EndTime)
	if !ok {
		return Weekly{}, false
	}

	w := Weekly{
		Days:      days,
		StartTime: raw.StartTime,
		Range:     resolveRange(raw.StartDate, raw.EndDate, def),
	}

	duration := end - start
	if duration < 0 {
		// meeting spans midnight
		duration += minutesPerDay
		w.RolledMidnight = true
	}
	w.DurationMinutes = clampMinutes(duration)
	w.Clamped = w.DurationMinutes != duration

	return w, true
}

func resolveRange(startDate, endDate string, def DateRange) DateRange {
	rng := def
	if d, err := ParseDate(startDate); err == nil {
		rng.Start = d
	}
	if d, err := ParseDate(endDate); err == nil {
		rng.End = d
	}
	return rng
}

// Expand enumerates every concrete class meeting of the weekly pattern
// within its date range, in ascending date order. It is a pure function:
// identical inputs always produce the identical sequence. A reversed range
// yields no meetings.
func Expand(w Weekly, classID string) []ClassMeeting {
	var meetings []ClassMeeting
	for d := w.Range.Start; !d.After(w.Range.End.Time); d = d.AddDays(1) {
		if w.Days[d.Weekday()] {
			meetings = append(meetings, ClassMeeting{
				ClassID:         classID,
				Date:            d,
				StartTime:       w.StartTime,
				DurationMinutes: w.DurationMinutes,
			})
		}
	}
	return meetings
}
