package class_test

import (
	"context"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/studium/core"
	"github.com/trezcool/studium/core/class"
	inmemdb "github.com/trezcool/studium/storage/database/inmem"
)

func setup(t *testing.T) (*class.Service, *validator.Validate) {
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)

	return class.NewService(inmemdb.NewClassRepository(db)), validate
}

func TestService_Create(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	cls, err := svc.Create(ctx, "user-1", class.NewClass{Name: "Biology 201", Subject: "Biology"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if cls.ID == "" {
		t.Error("Create() did not assign an ID")
	}
	if cls.CreatedAt.IsZero() || cls.UpdatedAt.IsZero() {
		t.Error("Create() did not stamp timestamps")
	}

	classes, err := svc.QueryByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("QueryByUser() failed: %v", err)
	}
	if len(classes) != 1 {
		t.Errorf("len(classes) = %v; want 1", len(classes))
	}
}

func TestNewClass_Validate(t *testing.T) {
	svc, validate := setup(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "user-1", class.NewClass{Name: "Organic Chemistry"}); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	tests := []struct {
		name    string
		userID  string
		nc      class.NewClass
		wantErr bool
	}{
		{name: "name required", userID: "user-1", nc: class.NewClass{Subject: "Chem"}, wantErr: true},
		{name: "whitespace name rejected", userID: "user-1", nc: class.NewClass{Name: "   "}, wantErr: true},
		{name: "exact duplicate rejected", userID: "user-1", nc: class.NewClass{Name: "Organic Chemistry"}, wantErr: true},
		{name: "case-insensitive duplicate rejected", userID: "user-1", nc: class.NewClass{Name: "organic chemistry"}, wantErr: true},
		{name: "near duplicate rejected", userID: "user-1", nc: class.NewClass{Name: "Organic Chemistryy"}, wantErr: true},
		{name: "distinct name ok", userID: "user-1", nc: class.NewClass{Name: "Linear Algebra"}},
		{name: "same name for another user ok", userID: "user-2", nc: class.NewClass{Name: "Organic Chemistry"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.nc.Validate(ctx, validate, svc, tt.userID)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestService_GetOwned(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	cls, err := svc.Create(ctx, "user-1", class.NewClass{Name: "History"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	if _, err = svc.GetOwned(ctx, cls.ID, "user-1"); err != nil {
		t.Errorf("GetOwned() as owner failed: %v", err)
	}
	if _, err = svc.GetOwned(ctx, cls.ID, "user-2"); err != class.ErrNotFound {
		t.Errorf("GetOwned() as other user error = %v; want ErrNotFound", err)
	}
	if _, err = svc.GetOwned(ctx, "nope", "user-1"); err != class.ErrNotFound {
		t.Errorf("GetOwned() with unknown ID error = %v; want ErrNotFound", err)
	}
}

func TestService_AddAssignments(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	cls, err := svc.Create(ctx, "user-1", class.NewClass{Name: "Calculus"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	asgs, err := svc.AddAssignments(ctx, cls.ID, []class.NewAssignment{
		{Title: "Homework 1", DueDate: "2025-02-01"},
		{Title: "Homework 2", Notes: "chapters 3-4", DueDate: "soon"},
		{Title: "Homework 3"},
	})
	if err != nil {
		t.Fatalf("AddAssignments() failed: %v", err)
	}
	if len(asgs) != 3 {
		t.Fatalf("len(asgs) = %v; want 3", len(asgs))
	}

	// input order is preserved; the planner refers to assignments by position
	for i, want := range []string{"Homework 1", "Homework 2", "Homework 3"} {
		if asgs[i].Title != want {
			t.Errorf("asgs[%d].Title = %v; want %v", i, asgs[i].Title, want)
		}
	}
	if !asgs[0].DueDate.Valid {
		t.Error("asgs[0].DueDate not set")
	}
	if asgs[1].DueDate.Valid {
		t.Error("asgs[1].DueDate set from unparseable input; want null")
	}
	if !asgs[1].Notes.Valid || asgs[1].Notes.String != "chapters 3-4" {
		t.Errorf("asgs[1].Notes = %v; want chapters 3-4", asgs[1].Notes)
	}

	queried, err := svc.QueryAssignments(ctx, cls.ID)
	if err != nil {
		t.Fatalf("QueryAssignments() failed: %v", err)
	}
	if len(queried) != 3 {
		t.Errorf("len(queried) = %v; want 3", len(queried))
	}
	for i := range queried {
		if queried[i].Title != asgs[i].Title {
			t.Errorf("queried[%d].Title = %v; want %v", i, queried[i].Title, asgs[i].Title)
		}
	}

	t.Run("empty batch is a no-op", func(t *testing.T) {
		asgs, err := svc.AddAssignments(ctx, cls.ID, nil)
		if err != nil {
			t.Fatalf("AddAssignments() failed: %v", err)
		}
		if asgs != nil {
			t.Errorf("AddAssignments() = %v; want nil", asgs)
		}
	})
}
