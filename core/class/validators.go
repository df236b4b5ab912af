package class

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/studium/core"
)

// two names are considered the same class above this ratio
const classNameSimilarityThreshold = 0.92

// classNameSimilarity returns a [0, 1] similarity ratio between two class
// names, ignoring case and surrounding whitespace.
func classNameSimilarity(a, b string) float64 {
	a = core.CleanString(a, true /* lower */)
	b = core.CleanString(b, true /* lower */)
	return difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, "")).QuickRatio()
}

func (nc *NewClass) Validate(ctx context.Context, validate *validator.Validate, svc *Service, userID string) error {
	nc.Name = core.CleanString(nc.Name)
	nc.Subject = core.CleanString(nc.Subject)

	if err := validate.Struct(nc); err != nil {
		return err
	}
	return svc.checkNameAvailable(ctx, userID, nc.Name)
}

func (na *NewAssignment) Validate(validate *validator.Validate) error {
	na.Title = core.CleanString(na.Title)
	na.Notes = core.CleanString(na.Notes)
	na.DueDate = core.CleanString(na.DueDate)
	return validate.Struct(na)
}
