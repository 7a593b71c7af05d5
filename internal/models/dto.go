package models

import "time"

// ===== USER RESPONSES =====

// UserResponse is the client-facing projection of a User. Fields are
// enumerated explicitly so the password hash and privilege flags can never
// leak through a catch-all serializer.
type UserResponse struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Status        UserRole      `json:"status"`
	IsApproved    bool          `json:"is_approved"`
	IsRejected    bool          `json:"is_rejected"`
	ApprovalState ApprovalState `json:"approval_state"`
	CreatedAt     time.Time     `json:"created_at"`
}

// AdminUserResponse extends UserResponse with the moderation flags that only
// staff may see. The hash stays out even here.
type AdminUserResponse struct {
	UserResponse
	IsStaff  bool `json:"is_staff"`
	IsActive bool `json:"is_active"`
}

func NewUserResponse(u *User) *UserResponse {
	return &UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Status:        u.Role,
		IsApproved:    u.IsApproved,
		IsRejected:    u.IsRejected,
		ApprovalState: u.ApprovalState(),
		CreatedAt:     u.CreatedAt,
	}
}

func NewAdminUserResponse(u *User) *AdminUserResponse {
	return &AdminUserResponse{
		UserResponse: *NewUserResponse(u),
		IsStaff:      u.IsStaff,
		IsActive:     u.IsActive,
	}
}

// ===== TOKENS =====

type TokenPairResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// ===== REPORTS =====

// EnrollmentReportRow is one line of the admin roster export.
type EnrollmentReportRow struct {
	TeacherName  string    `json:"teacher_name"`
	TeacherEmail string    `json:"teacher_email"`
	CourseName   string    `json:"course_name"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	StudentCount int       `json:"student_count"`
}
