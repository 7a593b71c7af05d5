package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTeacher UserRole = "teacher"
)

// ApprovalState is derived from the is_approved/is_rejected pair.
type ApprovalState string

const (
	ApprovalPending  ApprovalState = "pending"
	ApprovalApproved ApprovalState = "approved"
	ApprovalRejected ApprovalState = "rejected"
)

type User struct {
	ID    string   `json:"id" gorm:"primaryKey;size:36"`
	Name  string   `json:"name" gorm:"not null;size:200"`
	Email string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Role  UserRole `json:"status" gorm:"column:status;not null;size:255"`

	// Never serialized; only the repository layer touches it.
	PasswordHash string `json:"-" gorm:"not null;size:255"`

	// Staff privilege is separate from the role enum so an account can
	// never be "both teacher and student" the way a boolean pair allows.
	IsStaff  bool `json:"is_staff" gorm:"default:false"`
	IsActive bool `json:"is_active" gorm:"default:true"`

	// Admin-controlled approval gate for teachers. Invariant: never both true.
	IsApproved bool `json:"is_approved" gorm:"default:false"`
	IsRejected bool `json:"is_rejected" gorm:"default:false"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// ApprovalState collapses the flag pair into the three-state machine.
func (u *User) ApprovalState() ApprovalState {
	switch {
	case u.IsApproved:
		return ApprovalApproved
	case u.IsRejected:
		return ApprovalRejected
	default:
		return ApprovalPending
	}
}
