package streak

import "time"

// Streak tracks consecutive days on which a user completed at least one
// study session. Current resets after a missed day; Longest is a high-water
// mark.
type Streak struct {
	UserID        string    `db:"user_id" json:"user_id"`
	Current       int       `db:"current" json:"current"`
	Longest       int       `db:"longest" json:"longest"`
	LastStudyDate time.Time `db:"last_study_date" json:"last_study_date"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"` // UTC
}
