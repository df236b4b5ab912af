package sqlxrepos

import (
	"context"
	"fmt"

	"github.com/friendsofgo/errors"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/trezcool/studium/core"
	"github.com/trezcool/studium/core/schedule"
)

type scheduleRepository struct {
	db *sqlx.DB
}

var _ schedule.Repository = (*scheduleRepository)(nil) // interface compliance check

func NewScheduleRepository(db *sqlx.DB) *scheduleRepository {
	return &scheduleRepository{db: db}
}

func (repo *scheduleRepository) CreateStudyBlocks(ctx context.Context, blocks []schedule.StudyBlock) ([]schedule.StudyBlock, error) {
	if len(blocks) == 0 {
		return nil, nil
	}

	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "beginning tx")
	}
	defer func() { _ = tx.Rollback() }()

	created := make([]schedule.StudyBlock, 0, len(blocks))
	for _, blk := range blocks {
		if blk.ID == "" {
			blk.ID = uuid.New().String()
		}
		_, err = tx.NamedExecContext(ctx, `
			INSERT INTO study_blocks (id, user_id, class_id, assignment_id, block_date, start_time, duration_minutes, created_at)
			VALUES (:id, :user_id, :class_id, :assignment_id, :block_date, :start_time, :duration_minutes, :created_at)`, blk)
		if err != nil {
			return nil, errors.Wrap(err, "inserting study block")
		}
		created = append(created, blk)
	}

	if err = tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "committing tx")
	}
	return created, nil
}

func (repo *scheduleRepository) QueryBlocksByClassID(ctx context.Context, classID string, ord core.DBOrdering) ([]schedule.StudyBlock, error) {
	blocks := make([]schedule.StudyBlock, 0)
	query := fmt.Sprintf(`
		SELECT id, user_id, class_id, assignment_id, block_date, start_time, duration_minutes, created_at
		FROM study_blocks WHERE class_id = $1 ORDER BY %s, seq`, ord)
	if err := repo.db.SelectContext(ctx, &blocks, query, classID); err != nil {
		return nil, errors.Wrap(err, "querying study blocks")
	}
	return blocks, nil
}

func (repo *scheduleRepository) QueryBlocksByUserID(ctx context.Context, userID string, rng schedule.DateRange, ord core.DBOrdering) ([]schedule.StudyBlock, error) {
	blocks := make([]schedule.StudyBlock, 0)

	// zero bounds mean unbounded
	where := "user_id = $1"
	args := []interface{}{userID}
	if !rng.Start.IsZero() {
		args = append(args, rng.Start)
		where += fmt.Sprintf(" AND block_date >= $%d", len(args))
	}
	if !rng.End.IsZero() {
		args = append(args, rng.End)
		where += fmt.Sprintf(" AND block_date <= $%d", len(args))
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, class_id, assignment_id, block_date, start_time, duration_minutes, created_at
		FROM study_blocks WHERE %s ORDER BY %s, seq`, where, ord)
	if err := repo.db.SelectContext(ctx, &blocks, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying study blocks")
	}
	return blocks, nil
}

func (repo *scheduleRepository) DeleteBlocksByClassID(ctx context.Context, classID string) error {
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM study_blocks WHERE class_id = $1`, classID); err != nil {
		return errors.Wrap(err, "deleting study blocks")
	}
	return nil
}
