package class

import (
	"context"
	"errors"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/studium/core"
)

var (
	// errors
	ErrNotFound   = errors.New("class not found")
	ErrNameExists = errors.New("a class with a very similar name already exists")
)

type (
	Repository interface {
		CreateClass(ctx context.Context, cls Class) (Class, error)
		QueryClassesByUserID(ctx context.Context, userID string) ([]Class, error)
		GetClassByID(ctx context.Context, id string) (Class, error)
		DeleteClassesByID(ctx context.Context, ids ...string) error
		// CreateAssignments bulk-inserts assignments and returns them with
		// assigned IDs, preserving input order.
		CreateAssignments(ctx context.Context, asgs []Assignment) ([]Assignment, error)
		QueryAssignmentsByClassID(ctx context.Context, classID string) ([]Assignment, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, userID string, nc NewClass) (Class, error) {
	now := time.Now().UTC()
	cls := Class{
		UserID:    userID,
		Name:      nc.Name,
		Subject:   nc.Subject,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateClass(ctx, cls)
}

func (svc *Service) QueryByUser(ctx context.Context, userID string) ([]Class, error) {
	return svc.repo.QueryClassesByUserID(ctx, userID)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Class, error) {
	return svc.repo.GetClassByID(ctx, id)
}

// GetOwned fetches a class and hides its existence from other users.
func (svc *Service) GetOwned(ctx context.Context, id, userID string) (Class, error) {
	cls, err := svc.repo.GetClassByID(ctx, id)
	if err != nil {
		return Class{}, err
	}
	if cls.UserID != userID {
		return Class{}, ErrNotFound
	}
	return cls, nil
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteClassesByID(ctx, ids...)
}

// AddAssignments persists assignments for a class, preserving input order so
// planner indexes stay aligned. Unparseable due dates are stored as null.
func (svc *Service) AddAssignments(ctx context.Context, classID string, nas []NewAssignment) ([]Assignment, error) {
	if len(nas) == 0 {
		return nil, nil
	}
	now := time.Now().UTC()
	asgs := make([]Assignment, 0, len(nas))
	for _, na := range nas {
		asg := Assignment{
			ClassID:   classID,
			Title:     na.Title,
			Notes:     null.NewString(na.Notes, na.Notes != ""),
			CreatedAt: now,
		}
		if due, err := time.Parse("2006-01-02", na.DueDate); err == nil {
			asg.DueDate = null.TimeFrom(due)
		}
		asgs = append(asgs, asg)
	}
	return svc.repo.CreateAssignments(ctx, asgs)
}

func (svc *Service) QueryAssignments(ctx context.Context, classID string) ([]Assignment, error) {
	return svc.repo.QueryAssignmentsByClassID(ctx, classID)
}

// checkNameAvailable rejects names nearly identical to one of the user's
// existing classes; duplicate classes are almost always an upload mistake.
func (svc *Service) checkNameAvailable(ctx context.Context, userID, name string) error {
	existing, err := svc.repo.QueryClassesByUserID(ctx, userID)
	if err != nil {
		return err
	}
	for _, cls := range existing {
		if classNameSimilarity(name, cls.Name) >= classNameSimilarityThreshold {
			return core.NewValidationError(ErrNameExists, core.FieldError{Field: "name", Error: ErrNameExists.Error()})
		}
	}
	return nil
}
