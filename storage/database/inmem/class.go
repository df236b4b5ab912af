package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/trezcool/studium/core/class"
)

type classRepository struct {
	classes     *classTable
	assignments *assignmentTable
}

var _ class.Repository = (*classRepository)(nil) // interface compliance check

func NewClassRepository(db *DB) class.Repository {
	return &classRepository{classes: db.classes, assignments: db.assignments}
}

func (repo *classRepository) CreateClass(ctx context.Context, cls class.Class) (class.Class, error) {
	repo.classes.Lock()
	defer repo.classes.Unlock()

	if cls.ID == "" {
		cls.ID = uuid.New().String()
	}
	repo.classes.table[cls.ID] = &cls
	return cls, nil
}

func (repo *classRepository) QueryClassesByUserID(ctx context.Context, userID string) ([]class.Class, error) {
	repo.classes.RLock()
	defer repo.classes.RUnlock()

	classes := make([]class.Class, 0)
	for _, cls := range repo.classes.table {
		if cls.UserID == userID {
			classes = append(classes, *cls)
		}
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].CreatedAt.Before(classes[j].CreatedAt) })
	return classes, nil
}

func (repo *classRepository) GetClassByID(ctx context.Context, id string) (class.Class, error) {
	repo.classes.RLock()
	defer repo.classes.RUnlock()

	if cls, ok := repo.classes.table[id]; ok {
		return *cls, nil
	}
	return class.Class{}, class.ErrNotFound
}

func (repo *classRepository) DeleteClassesByID(ctx context.Context, ids ...string) error {
	repo.classes.Lock()
	defer repo.classes.Unlock()

	for _, id := range ids {
		delete(repo.classes.table, id)
	}
	return nil
}

func (repo *classRepository) CreateAssignments(ctx context.Context, asgs []class.Assignment) ([]class.Assignment, error) {
	repo.assignments.Lock()
	defer repo.assignments.Unlock()

	created := make([]class.Assignment, 0, len(asgs))
	for _, asg := range asgs {
		asg := asg
		if asg.ID == "" {
			asg.ID = uuid.New().String()
		}
		repo.assignments.seq++
		repo.assignments.order[asg.ID] = repo.assignments.seq
		repo.assignments.table[asg.ID] = &asg
		created = append(created, asg)
	}
	return created, nil
}

func (repo *classRepository) QueryAssignmentsByClassID(ctx context.Context, classID string) ([]class.Assignment, error) {
	repo.assignments.RLock()
	defer repo.assignments.RUnlock()

	asgs := make([]class.Assignment, 0)
	for _, asg := range repo.assignments.table {
		if asg.ClassID == classID {
			asgs = append(asgs, *asg)
		}
	}
	sort.Slice(asgs, func(i, j int) bool {
		return repo.assignments.order[asgs[i].ID] < repo.assignments.order[asgs[j].ID]
	})
	return asgs, nil
}
