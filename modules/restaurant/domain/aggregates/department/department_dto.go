package department

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/iota-uz/restaurant-admin/pkg/constants"
	"github.com/iota-uz/restaurant-admin/pkg/intl"
	"github.com/iota-uz/restaurant-admin/pkg/serrors"
)

// Required-field messages of the department form.
var (
	ErrNameRequired        = serrors.NewError("FIELD_REQUIRED", "Please input name!", "Departments.Form.NameRequired")
	ErrDescriptionRequired = serrors.NewError("FIELD_REQUIRED", "Please input description!", "Departments.Form.DescriptionRequired")
)

type CreateDTO struct {
	Name        string `form:"Name" json:"name" validate:"required"`
	Description string `form:"Description" json:"description" validate:"required"`
}

type UpdateDTO struct {
	Name        string `form:"Name" json:"name" validate:"required"`
	Description string `form:"Description" json:"description" validate:"required"`
}

func (d *CreateDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Description = strings.TrimSpace(d.Description)
}

func (d *UpdateDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Description = strings.TrimSpace(d.Description)
}

func (d *CreateDTO) Ok(ctx context.Context) (map[string]string, bool) {
	d.Normalize()
	return validate(ctx, d)
}

func (d *UpdateDTO) Ok(ctx context.Context) (map[string]string, bool) {
	d.Normalize()
	return validate(ctx, d)
}

func (d *CreateDTO) ToEntity() Department {
	return New(d.Name, d.Description)
}

// Apply returns existing with the form values written over it.
func (d *UpdateDTO) Apply(existing Department) Department {
	return existing.SetName(d.Name).SetDescription(d.Description)
}

func validate(ctx context.Context, dto any) (map[string]string, bool) {
	errs := constants.Validate.Struct(dto)
	if errs == nil {
		return map[string]string{}, true
	}
	validatorErrs, ok := errs.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"": errs.Error()}, false
	}

	getFieldLocaleKey := func(field string) string {
		switch field {
		case "Name", "Description":
			return "Departments.Fields." + field
		default:
			return ""
		}
	}
	validationErrors := serrors.ProcessValidatorErrors(validatorErrs, getFieldLocaleKey)
	// required fields carry the form's own wording
	for field, err := range validationErrors {
		if err.Code != "VALIDATION_required" {
			continue
		}
		switch field {
		case "Name":
			validationErrors[field] = ErrNameRequired
		case "Description":
			validationErrors[field] = ErrDescriptionRequired
		}
	}

	l, found := intl.UseLocalizer(ctx)
	if !found {
		out := make(map[string]string, len(validationErrors))
		for field, err := range validationErrors {
			out[field] = err.Message
		}
		return out, false
	}
	return serrors.LocalizeValidationErrors(validationErrors, l), false
}
