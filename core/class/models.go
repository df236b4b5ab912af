package class

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Class is a course a user is enrolled in; study blocks and assignments hang
// off it.
type Class struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	Subject   string    `db:"subject" json:"subject"`
	CreatedAt time.Time `db:"created_at" json:"created_at"` // UTC
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"` // UTC
}

// Assignment is a graded task extracted from a syllabus. Its position in a
// bulk-created batch matters: the AI planner refers back to assignments by
// that zero-based position.
type Assignment struct {
	ID        string      `db:"id" json:"id"`
	ClassID   string      `db:"class_id" json:"class_id"`
	Title     string      `db:"title" json:"title"`
	Notes     null.String `db:"notes" json:"notes"`
	DueDate   null.Time   `db:"due_date" json:"due_date"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"` // UTC
}

// NewClass contains information needed to create a new Class.
type NewClass struct {
	Name    string `json:"name" validate:"required"`
	Subject string `json:"subject"`
}

// NewAssignment defines one assignment to attach to a class.
type NewAssignment struct {
	Title   string `json:"title" validate:"required"`
	Notes   string `json:"notes"`
	DueDate string `json:"due_date" validate:"omitempty,isodate"`
}
