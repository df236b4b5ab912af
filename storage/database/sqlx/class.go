package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/friendsofgo/errors"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/trezcool/studium/core/class"
)

type classRepository struct {
	db *sqlx.DB
}

var _ class.Repository = (*classRepository)(nil) // interface compliance check

func NewClassRepository(db *sqlx.DB) *classRepository {
	return &classRepository{db: db}
}

func (repo *classRepository) CreateClass(ctx context.Context, cls class.Class) (class.Class, error) {
	if cls.ID == "" {
		cls.ID = uuid.New().String()
	}
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO classes (id, user_id, name, subject, created_at, updated_at)
		VALUES (:id, :user_id, :name, :subject, :created_at, :updated_at)`, cls)
	if err != nil {
		return class.Class{}, errors.Wrap(err, "inserting class")
	}
	return cls, nil
}

func (repo *classRepository) QueryClassesByUserID(ctx context.Context, userID string) ([]class.Class, error) {
	classes := make([]class.Class, 0)
	err := repo.db.SelectContext(ctx, &classes, `
		SELECT id, user_id, name, subject, created_at, updated_at
		FROM classes WHERE user_id = $1 ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "querying classes")
	}
	return classes, nil
}

func (repo *classRepository) GetClassByID(ctx context.Context, id string) (class.Class, error) {
	var cls class.Class
	err := repo.db.GetContext(ctx, &cls, `
		SELECT id, user_id, name, subject, created_at, updated_at
		FROM classes WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return class.Class{}, class.ErrNotFound
		}
		return class.Class{}, errors.Wrap(err, "getting class")
	}
	return cls, nil
}

func (repo *classRepository) DeleteClassesByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM classes WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building delete query")
	}
	if _, err = repo.db.ExecContext(ctx, repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting classes")
	}
	return nil
}

func (repo *classRepository) CreateAssignments(ctx context.Context, asgs []class.Assignment) ([]class.Assignment, error) {
	if len(asgs) == 0 {
		return nil, nil
	}

	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "beginning tx")
	}
	defer func() { _ = tx.Rollback() }()

	// one row at a time inside the tx so the serial seq column preserves
	// input order; the planner indexes against that order
	created := make([]class.Assignment, 0, len(asgs))
	for _, asg := range asgs {
		if asg.ID == "" {
			asg.ID = uuid.New().String()
		}
		_, err = tx.NamedExecContext(ctx, `
			INSERT INTO assignments (id, class_id, title, notes, due_date, created_at)
			VALUES (:id, :class_id, :title, :notes, :due_date, :created_at)`, asg)
		if err != nil {
			return nil, errors.Wrap(err, "inserting assignment")
		}
		created = append(created, asg)
	}

	if err = tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "committing tx")
	}
	return created, nil
}

func (repo *classRepository) QueryAssignmentsByClassID(ctx context.Context, classID string) ([]class.Assignment, error) {
	asgs := make([]class.Assignment, 0)
	err := repo.db.SelectContext(ctx, &asgs, `
		SELECT id, class_id, title, notes, due_date, created_at
		FROM assignments WHERE class_id = $1 ORDER BY seq`, classID)
	if err != nil {
		return nil, errors.Wrap(err, "querying assignments")
	}
	return asgs, nil
}
