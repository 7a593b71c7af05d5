package validator

import (
	"github.com/bekhruzRakhmonov/educative-platform/internal/models"
)

// SignupRequest represents the request structure for user registration.
// Field names keep the original API's wire format (role travels as "status").
type SignupRequest struct {
	Email    string          `json:"email" validate:"required,email,max=255"`
	Name     string          `json:"name" validate:"required,max=200"`
	Status   models.UserRole `json:"status" validate:"required,oneof=teacher student"`
	Password string          `json:"password" validate:"required,min=6,max=128"`
}

// LoginRequest represents the credential exchange for a token pair.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries a refresh token to exchange for a new pair.
type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// ApprovalUpdateRequest is the admin patch restricted to the approval flags.
// Pointers distinguish "not sent" from "set to false".
type ApprovalUpdateRequest struct {
	IsApproved *bool `json:"is_approved"`
	IsRejected *bool `json:"is_rejected"`
}

// CourseCreateRequest represents the request structure for creating courses
type CourseCreateRequest struct {
	Name     string                 `json:"name" validate:"required,max=255"`
	Metadata map[string]interface{} `json:"metadata" validate:"omitempty"`
}
