package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/trezcool/studium/core"
	"github.com/trezcool/studium/core/schedule"
)

type scheduleRepository struct {
	blocks *blockTable
}

var _ schedule.Repository = (*scheduleRepository)(nil) // interface compliance check

func NewScheduleRepository(db *DB) schedule.Repository {
	return &scheduleRepository{blocks: db.blocks}
}

func (repo *scheduleRepository) CreateStudyBlocks(ctx context.Context, blocks []schedule.StudyBlock) ([]schedule.StudyBlock, error) {
	repo.blocks.Lock()
	defer repo.blocks.Unlock()

	created := make([]schedule.StudyBlock, 0, len(blocks))
	for _, blk := range blocks {
		blk := blk
		if blk.ID == "" {
			blk.ID = uuid.New().String()
		}
		repo.blocks.seq++
		repo.blocks.order[blk.ID] = repo.blocks.seq
		repo.blocks.table[blk.ID] = &blk
		created = append(created, blk)
	}
	return created, nil
}

func (repo *scheduleRepository) QueryBlocksByClassID(ctx context.Context, classID string, ord core.DBOrdering) ([]schedule.StudyBlock, error) {
	repo.blocks.RLock()
	defer repo.blocks.RUnlock()

	blocks := make([]schedule.StudyBlock, 0)
	for _, blk := range repo.blocks.table {
		if blk.ClassID == classID {
			blocks = append(blocks, *blk)
		}
	}
	repo.sort(blocks, ord)
	return blocks, nil
}

func (repo *scheduleRepository) QueryBlocksByUserID(ctx context.Context, userID string, rng schedule.DateRange, ord core.DBOrdering) ([]schedule.StudyBlock, error) {
	repo.blocks.RLock()
	defer repo.blocks.RUnlock()

	blocks := make([]schedule.StudyBlock, 0)
	for _, blk := range repo.blocks.table {
		if blk.UserID != userID {
			continue
		}
		if !rng.Start.IsZero() && blk.BlockDate.Before(rng.Start.Time) {
			continue
		}
		if !rng.End.IsZero() && blk.BlockDate.After(rng.End.Time) {
			continue
		}
		blocks = append(blocks, *blk)
	}
	repo.sort(blocks, ord)
	return blocks, nil
}

func (repo *scheduleRepository) DeleteBlocksByClassID(ctx context.Context, classID string) error {
	repo.blocks.Lock()
	defer repo.blocks.Unlock()

	for id, blk := range repo.blocks.table {
		if blk.ClassID == classID {
			delete(repo.blocks.table, id)
			delete(repo.blocks.order, id)
		}
	}
	return nil
}

// sort approximates the SQL ordering the real repository applies: the
// ordering field (block_date only, which is all the services use), then
// insertion order for stability.
func (repo *scheduleRepository) sort(blocks []schedule.StudyBlock, ord core.DBOrdering) {
	sort.SliceStable(blocks, func(i, j int) bool {
		di, dj := blocks[i].BlockDate, blocks[j].BlockDate
		if di.Equal(dj.Time) {
			return repo.blocks.order[blocks[i].ID] < repo.blocks.order[blocks[j].ID]
		}
		if ord.Ascending {
			return di.Before(dj.Time)
		}
		return dj.Before(di.Time)
	})
}
