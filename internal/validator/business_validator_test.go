package validator

import (
	"testing"

	"github.com/bekhruzRakhmonov/educative-platform/internal/models"
)

func TestValidateSignup(t *testing.T) {
	bv := NewBusinessValidator()

	tests := []struct {
		name    string
		req     *SignupRequest
		wantErr bool
	}{
		{
			name: "valid student",
			req: &SignupRequest{
				Email:    "sam@example.com",
				Name:     "Sam",
				Status:   models.RoleStudent,
				Password: "secret123",
			},
		},
		{
			name: "valid teacher",
			req: &SignupRequest{
				Email:    "alice@example.com",
				Name:     "Alice",
				Status:   models.RoleTeacher,
				Password: "secret123",
			},
		},
		{
			name: "missing email",
			req: &SignupRequest{
				Name:     "Sam",
				Status:   models.RoleStudent,
				Password: "secret123",
			},
			wantErr: true,
		},
		{
			name: "malformed email",
			req: &SignupRequest{
				Email:    "not-an-email",
				Name:     "Sam",
				Status:   models.RoleStudent,
				Password: "secret123",
			},
			wantErr: true,
		},
		{
			name: "unknown role",
			req: &SignupRequest{
				Email:    "sam@example.com",
				Name:     "Sam",
				Status:   "admin",
				Password: "secret123",
			},
			wantErr: true,
		},
		{
			name: "short password",
			req: &SignupRequest{
				Email:    "sam@example.com",
				Name:     "Sam",
				Status:   models.RoleStudent,
				Password: "abc",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := bv.ValidateSignup(tt.req)
			if (len(errs) > 0) != tt.wantErr {
				t.Errorf("ValidateSignup() errs = %v, wantErr %v", errs, tt.wantErr)
			}
		})
	}
}

func TestValidateApprovalPatch(t *testing.T) {
	bv := NewBusinessValidator()
	truev, falsev := true, false

	tests := []struct {
		name     string
		req      *ApprovalUpdateRequest
		existing *models.User
		wantErr  bool
	}{
		{
			name:     "approve pending account",
			req:      &ApprovalUpdateRequest{IsApproved: &truev},
			existing: &models.User{},
		},
		{
			name:     "reject pending account",
			req:      &ApprovalUpdateRequest{IsRejected: &truev},
			existing: &models.User{},
		},
		{
			name:     "approve and reject together",
			req:      &ApprovalUpdateRequest{IsApproved: &truev, IsRejected: &truev},
			existing: &models.User{},
			wantErr:  true,
		},
		{
			name:     "reject already approved account",
			req:      &ApprovalUpdateRequest{IsRejected: &truev},
			existing: &models.User{IsApproved: true},
			wantErr:  true,
		},
		{
			name:     "flip approved to rejected in one patch",
			req:      &ApprovalUpdateRequest{IsApproved: &falsev, IsRejected: &truev},
			existing: &models.User{IsApproved: true},
		},
		{
			name:     "empty patch keeps valid state",
			req:      &ApprovalUpdateRequest{},
			existing: &models.User{IsApproved: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := bv.ValidateApprovalPatch(tt.req, tt.existing)
			if (len(errs) > 0) != tt.wantErr {
				t.Errorf("ValidateApprovalPatch() errs = %v, wantErr %v", errs, tt.wantErr)
			}
		})
	}
}

func TestValidateCourseCreate(t *testing.T) {
	bv := NewBusinessValidator()

	if errs := bv.ValidateCourseCreate(&CourseCreateRequest{Name: "Algebra I"}); len(errs) > 0 {
		t.Errorf("valid request rejected: %v", errs)
	}

	errs := bv.ValidateCourseCreate(&CourseCreateRequest{Name: "   "})
	if len(errs) == 0 {
		t.Fatal("whitespace-only name must fail")
	}
	found := false
	for _, e := range errs {
		if e.Message == "You must provide a course name" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected course name message, got %v", errs)
	}
}
