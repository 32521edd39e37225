package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kommer/client-go/internal/core/domain"
)

var validate = validator.New()

// checkStruct runs tag validation and converts failures into a
// domain.ValidationError with one readable message per field.
func checkStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())
		fields[field] = fieldError(field, fe)
	}
	return &domain.ValidationError{Fields: fields}
}

func fieldError(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

// CheckPostDraft validates a draft before it is sent for creation. On top of
// the tag rules it applies the type-dependent ones: discount posts need a
// percentage, events need at least one branch.
func CheckPostDraft(draft domain.PostDraft) error {
	fields := map[string]string{}

	if err := checkStruct(draft); err != nil {
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			return err
		}
		fields = ve.Fields
	}

	if draft.Type == domain.TypeDiscount && (draft.Discount == nil || draft.Discount.Percentage <= 0) {
		fields["discount"] = "discount posts need a percentage"
	}
	if draft.Type == domain.TypeEvent && len(draft.BranchIDs) == 0 {
		fields["branchids"] = "events need at least one branch"
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
