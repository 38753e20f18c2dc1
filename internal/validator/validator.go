package validator

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/anishtharur/Simple-Admin-UI/internal/domain"
)

// Validator provides validation methods for seed records.
type Validator struct{}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateRaw validates one raw seed entry. Rules are presence-only: the
// console accepts whatever field values the seed carries, it only rejects
// entries that are missing a required field.
func (v *Validator) ValidateRaw(r *domain.RawRecord) error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ID,
			validation.Required.Error("id_required"),
		),
		validation.Field(&r.Name,
			validation.Required.Error("name_required"),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email_required"),
		),
		validation.Field(&r.Role,
			validation.Required.Error("role_required"),
		),
	)
}

// FieldErrors flattens an ozzo validation error into field names, for
// logging which fields caused a seed entry to be skipped.
func FieldErrors(err error) []string {
	ve, ok := err.(validation.Errors)
	if !ok {
		if err != nil {
			return []string{"unknown"}
		}
		return nil
	}
	fields := make([]string, 0, len(ve))
	for field := range ve {
		fields = append(fields, field)
	}
	return fields
}
