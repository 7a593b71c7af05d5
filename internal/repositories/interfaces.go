package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/bekhruzRakhmonov/educative-platform/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type UserFilters struct {
	Role        *models.UserRole `json:"role"`
	PendingOnly bool             `json:"pending_only"`
	Query       string           `json:"query"`
	Limit       int              `json:"limit"`
	Offset      int              `json:"offset"`
}

type ChildCourseFilters struct {
	ActiveOnly bool   `json:"active_only"`
	Query      string `json:"query"`
	Limit      int    `json:"limit"`
	Offset     int    `json:"offset"`
}

// ===== REPOSITORY INTERFACES =====

// All methods accept an optional transaction handle; a nil tx means the
// repository's base connection is used.

type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error)
	EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	Update(ctx context.Context, tx *gorm.DB, user *models.User) error
	List(ctx context.Context, tx *gorm.DB, filters UserFilters) ([]*models.User, int64, error)
}

// CourseRepository manages the per-teacher container aggregates.
type CourseRepository interface {
	GetOrCreateByTeacher(ctx context.Context, tx *gorm.DB, teacherID string) (*models.Course, error)

	// GetByTeacher loads one teacher's container with courses and rosters
	// preloaded.
	GetByTeacher(ctx context.Context, tx *gorm.DB, teacherID string) (*models.Course, error)

	AttachChild(ctx context.Context, tx *gorm.DB, course *models.Course, child *models.ChildCourse) error

	// ListWithDetails loads every container with teacher and rosters
	// preloaded.
	ListWithDetails(ctx context.Context, tx *gorm.DB) ([]*models.Course, error)
}

type ChildCourseRepository interface {
	Create(ctx context.Context, tx *gorm.DB, course *models.ChildCourse) error

	// GetByIDForUpdate locks the course row for the duration of the enclosing
	// transaction so concurrent join/leave on the same course serialize.
	GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.ChildCourse, error)

	List(ctx context.Context, tx *gorm.DB, filters ChildCourseFilters) ([]*models.ChildCourse, int64, error)

	IsEnrolled(ctx context.Context, tx *gorm.DB, courseID uint, studentID string) (bool, error)
	AddStudent(ctx context.Context, tx *gorm.DB, course *models.ChildCourse, student *models.User) error
	RemoveStudent(ctx context.Context, tx *gorm.DB, course *models.ChildCourse, student *models.User) error
	CountStudents(ctx context.Context, tx *gorm.DB, courseID uint) (int64, error)
}

// ===== REPOSITORY MANAGER =====

type Repository interface {
	User() UserRepository
	Course() CourseRepository
	ChildCourse() ChildCourseRepository

	// WithTransaction runs fn against a Repository whose operations are bound
	// to a single database transaction.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	Ping(ctx context.Context) error
	Close() error
}
