package schedule

import "github.com/volatiletech/null/v8"

// Merge combines generated class meetings with the AI planner's assignment
// study sessions into one list of study blocks owned by (userID, classID).
//
// Contract, kept deliberately and covered by tests:
//   - output order is meetings (in generated order) followed by planned
//     sessions (in input order); the merge never re-sorts. Consumers needing
//     chronological order must sort explicitly.
//   - no deduplication: a class meeting and a study session landing on the
//     same date+time are both kept; they are semantically distinct blocks.
//   - a planner session whose AssignmentIndex does not resolve inside
//     assignmentIDs keeps a null assignment link but is still emitted;
//     partial planner output must not block the rest of the schedule.
//   - a planner session whose date cannot be parsed at all is dropped;
//     dropped reports how many were discarded so the caller can log it.
//
// Durations of planner sessions are clamped into
// [MinBlockMinutes, MaxBlockMinutes] like generated meetings.
func Merge(meetings []ClassMeeting, planned []PlannedSession, assignmentIDs []string, classID, userID string) (blocks []StudyBlock, dropped int) {
	blocks = make([]StudyBlock, 0, len(meetings)+len(planned))

	for _, m := range meetings {
		blocks = append(blocks, StudyBlock{
			UserID:          userID,
			ClassID:         classID,
			AssignmentID:    null.String{},
			BlockDate:       m.Date,
			StartTime:       null.StringFrom(m.StartTime),
			DurationMinutes: m.DurationMinutes,
		})
	}

	for _, p := range planned {
		date, err := ParseDate(p.BlockDate)
		if err != nil {
			dropped++
			continue
		}

		var assignmentID null.String
		if p.AssignmentIndex >= 0 && p.AssignmentIndex < len(assignmentIDs) {
			assignmentID = null.StringFrom(assignmentIDs[p.AssignmentIndex])
		}

		blocks = append(blocks, StudyBlock{
			UserID:          userID,
			ClassID:         classID,
			AssignmentID:    assignmentID,
			BlockDate:       date,
			StartTime:       p.StartTime,
			DurationMinutes: clampMinutes(p.DurationMinutes),
		})
	}

	return blocks, dropped
}
