package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/trezcool/studium/core"
)

var ErrBlockNotFound = errors.New("study block not found")

type (
	Repository interface {
		// CreateStudyBlocks bulk-inserts blocks and returns them with
		// assigned IDs, in input order.
		CreateStudyBlocks(ctx context.Context, blocks []StudyBlock) ([]StudyBlock, error)
		QueryBlocksByClassID(ctx context.Context, classID string, ord core.DBOrdering) ([]StudyBlock, error)
		QueryBlocksByUserID(ctx context.Context, userID string, rng DateRange, ord core.DBOrdering) ([]StudyBlock, error)
		DeleteBlocksByClassID(ctx context.Context, classID string) error
	}

	Service struct {
		repo   Repository
		logger core.Logger
	}
)

func NewService(repo Repository, logger core.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// dateAscending is the default ordering handed to repositories; the merge
// step itself never sorts.
var dateAscending = core.DBOrdering{Field: "block_date", Ascending: true}

// Replace swaps out all persisted blocks of a class for the freshly derived
// set, so re-running ingestion never duplicates a schedule.
func (svc *Service) Replace(ctx context.Context, classID string, blocks []StudyBlock) ([]StudyBlock, error) {
	if err := svc.repo.DeleteBlocksByClassID(ctx, classID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	for i := range blocks {
		blocks[i].CreatedAt = now
	}
	return svc.repo.CreateStudyBlocks(ctx, blocks)
}

func (svc *Service) QueryByClass(ctx context.Context, classID string) ([]StudyBlock, error) {
	return svc.repo.QueryBlocksByClassID(ctx, classID, dateAscending)
}

func (svc *Service) QueryByUser(ctx context.Context, userID string, rng DateRange) ([]StudyBlock, error) {
	return svc.repo.QueryBlocksByUserID(ctx, userID, rng, dateAscending)
}

func (svc *Service) DeleteByClass(ctx context.Context, classID string) error {
	return svc.repo.DeleteBlocksByClassID(ctx, classID)
}
