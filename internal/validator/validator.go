package validator

import (
	"reflect"
	"strings"

	apperrors "github.com/brightclass/grading-service/internal/errors"
	"github.com/brightclass/grading-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground struct validation with the service's custom
// domain rules.
type Validator struct {
	structValidator *validator.Validate
}

// New creates the centralized validator instance
func New() *Validator {
	structValidator := validator.New()
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator: structValidator,
	}
}

// Validate validates struct tags and converts failures to the shared
// ValidationErrors type so handlers can map them uniformly.
func (v *Validator) Validate(s interface{}) error {
	if err := v.structValidator.Struct(s); err != nil {
		if converted := apperrors.ToValidationErrors(err); len(converted) > 0 {
			return converted
		}
		return err
	}
	return nil
}

func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("question_type", validateQuestionType)
	validate.RegisterValidation("user_role", validateUserRole)
	validate.RegisterValidation("mastery_pct", validateMasteryPct)

	// Report json field names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateQuestionType(fl validator.FieldLevel) bool {
	switch models.QuestionType(fl.Field().String()) {
	case models.QuestionMCQ, models.QuestionShort:
		return true
	}
	return false
}

func validateUserRole(fl validator.FieldLevel) bool {
	switch models.UserRole(fl.Field().String()) {
	case models.RoleStudent, models.RoleTeacher:
		return true
	}
	return false
}

func validateMasteryPct(fl validator.FieldLevel) bool {
	pct := fl.Field().Int()
	return pct >= 0 && pct <= 100
}
