package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/bekhruzRakhmonov/educative-platform/internal/models"
)

// ValidationError describes a single failed rule.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	msgs := make([]string, len(ve))
	for i, e := range ve {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// ToValidationErrors converts go-playground failures into our error type.
func ToValidationErrors(err error) ValidationErrors {
	var out ValidationErrors
	if fieldErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrors {
			out = append(out, ValidationError{
				Field:   strings.ToLower(fe.Field()),
				Message: messageForTag(fe),
				Code:    fe.Tag(),
			})
		}
		return out
	}
	return ValidationErrors{{Field: "", Message: err.Error(), Code: "invalid"}}
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// BusinessValidator handles cross-field business rule validation.
type BusinessValidator struct {
	validate *validator.Validate
}

func NewBusinessValidator() *BusinessValidator {
	return &BusinessValidator{validate: validator.New()}
}

// Validate validates business rules for any struct
func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	if err := bv.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ValidateSignup validates registration business rules.
func (bv *BusinessValidator) ValidateSignup(req *SignupRequest) ValidationErrors {
	return bv.Validate(req)
}

// ValidateApprovalPatch enforces that is_approved and is_rejected can never
// both end up true, regardless of which flags the patch carries.
func (bv *BusinessValidator) ValidateApprovalPatch(req *ApprovalUpdateRequest, existing *models.User) ValidationErrors {
	approved := existing.IsApproved
	rejected := existing.IsRejected
	if req.IsApproved != nil {
		approved = *req.IsApproved
	}
	if req.IsRejected != nil {
		rejected = *req.IsRejected
	}

	if approved && rejected {
		return ValidationErrors{{
			Field:   "is_approved",
			Message: "You cannot approve and reject at one time",
			Code:    "approval_conflict",
		}}
	}

	return nil
}

// ValidateCourseCreate validates course creation business rules.
func (bv *BusinessValidator) ValidateCourseCreate(req *CourseCreateRequest) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)

	if strings.TrimSpace(req.Name) == "" {
		errors = append(errors, ValidationError{
			Field:   "name",
			Message: "You must provide a course name",
			Code:    "required",
		})
	}

	return errors
}
