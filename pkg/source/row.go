package source

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/flowboard/pkg/errors"
	"github.com/matzehuels/flowboard/pkg/flow"
)

// Row is one entry of the external process table.
type Row struct {
	Ref         string         `json:"ref" yaml:"ref" validate:"required,max=128"`
	Label       string         `json:"label" yaml:"label" validate:"required"`
	Phase       string         `json:"phase,omitempty" yaml:"phase,omitempty"`
	Owner       string         `json:"owner,omitempty" yaml:"owner,omitempty"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Shape       flow.ShapeKind `json:"shape,omitempty" yaml:"shape,omitempty" validate:"omitempty,oneof=start end task subprocess gateway event document data annotation"`
}

var validate = validator.New()

// Validate trims the rows in place and checks them. The first offending row
// is reported with its 1-based position.
func Validate(rows []Row) error {
	for i := range rows {
		r := &rows[i]
		r.Ref = strings.TrimSpace(r.Ref)
		r.Label = strings.TrimSpace(r.Label)
		r.Phase = strings.TrimSpace(r.Phase)
		r.Owner = strings.TrimSpace(r.Owner)
		r.Description = strings.TrimSpace(r.Description)
		r.Shape = flow.ShapeKind(strings.ToLower(strings.TrimSpace(string(r.Shape))))

		if err := validate.Struct(r); err != nil {
			return errors.New(errors.ErrCodeInvalidSource, "row %d: %s", i+1, describe(err))
		}
	}
	return nil
}

// Refs returns the references of rows in order.
func Refs(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Ref
	}
	return out
}

func describe(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", field, e.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}
	return strings.Join(msgs, "; ")
}
