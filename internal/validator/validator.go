package validator

import (
	"github.com/go-playground/validator/v10"
)

// Validator bundles struct-tag validation with the business rule validator.
type Validator struct {
	validate          *validator.Validate
	businessValidator *BusinessValidator
}

func New() *Validator {
	return &Validator{
		validate:          validator.New(),
		businessValidator: NewBusinessValidator(),
	}
}

// Validate runs struct-tag validation and converts failures into the
// service-facing ValidationErrors type.
func (v *Validator) Validate(s interface{}) error {
	if err := v.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

func (v *Validator) GetBusinessValidator() *BusinessValidator {
	return v.businessValidator
}
