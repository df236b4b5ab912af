package inmemdb

import (
	"sync"

	"github.com/trezcool/studium/core/class"
	"github.com/trezcool/studium/core/schedule"
	"github.com/trezcool/studium/core/streak"
)

type (
	DB struct {
		classes     *classTable
		assignments *assignmentTable
		blocks      *blockTable
		streaks     *streakTable
	}

	classTable struct {
		sync.RWMutex
		table map[string]*class.Class
	}

	assignmentTable struct {
		sync.RWMutex
		table map[string]*class.Assignment
		seq   int // insertion order
		order map[string]int
	}

	blockTable struct {
		sync.RWMutex
		table map[string]*schedule.StudyBlock
		seq   int
		order map[string]int
	}

	streakTable struct {
		sync.RWMutex
		table map[string]*streak.Streak
	}
)

func Open() (*DB, error) {
	db := &DB{
		classes: &classTable{table: make(map[string]*class.Class)},
		assignments: &assignmentTable{
			table: make(map[string]*class.Assignment),
			order: make(map[string]int),
		},
		blocks: &blockTable{
			table: make(map[string]*schedule.StudyBlock),
			order: make(map[string]int),
		},
		streaks: &streakTable{table: make(map[string]*streak.Streak)},
	}
	return db, nil
}
