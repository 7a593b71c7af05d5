package services

import (
	"context"
	"time"

	"github.com/bekhruzRakhmonov/educative-platform/internal/models"
	"github.com/bekhruzRakhmonov/educative-platform/internal/validator"
)

// Request DTOs are validated at the edge; services receive them already
// shaped.
type SignupRequest = validator.SignupRequest
type LoginRequest = validator.LoginRequest
type RefreshRequest = validator.RefreshRequest
type ApprovalUpdateRequest = validator.ApprovalUpdateRequest
type CourseCreateRequest = validator.CourseCreateRequest

// ChildCourseResponse is the course payload returned from creation and
// listing endpoints.
type ChildCourseResponse struct {
	ID           uint                   `json:"id"`
	Name         string                 `json:"name"`
	Teacher      string                 `json:"teacher"`
	StudentCount int                    `json:"student_count"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
}

type CourseListResponse struct {
	Courses []ChildCourseResponse `json:"courses"`
	Total   int                   `json:"total"`
}

// CourseCount pairs a course name with its enrollment size.
type CourseCount struct {
	Name         string `json:"name"`
	StudentCount int    `json:"student_count"`
}

// AdminChildCourseView is one course as the admin sees it, flags and full
// roster included.
type AdminChildCourseView struct {
	ID           uint                   `json:"id"`
	Name         string                 `json:"name"`
	IsActive     bool                   `json:"is_active"`
	CreatedAt    time.Time              `json:"created_at"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
	StudentCount int                    `json:"student_count"`
	Students     []*models.UserResponse `json:"students"`
}

// AdminCourseView is one teacher's container as the admin sees it, with
// nothing redacted but the password hashes.
type AdminCourseView struct {
	ID      uint                      `json:"id"`
	Teacher *models.AdminUserResponse `json:"teacher"`
	Courses []AdminChildCourseView    `json:"courses"`
}

// TeacherCourseView is the teacher's own container.
type TeacherCourseView struct {
	Courses []CourseCount `json:"courses"`
}

// StudentCourseView lists, per teacher, the courses the student joined
// keyed by name with the total enrollment as value.
type StudentCourseView struct {
	Teacher string         `json:"teacher"`
	Courses map[string]int `json:"courses"`
}

// DashboardResponse shapes the course overview for the caller's role.
type DashboardResponse struct {
	Status  string      `json:"status"`
	Name    string      `json:"name"`
	Courses interface{} `json:"courses"`
}

type AuthService interface {
	Register(ctx context.Context, req *SignupRequest) (*models.UserResponse, error)
	Authenticate(ctx context.Context, req *LoginRequest) (*models.TokenPairResponse, error)
	Refresh(ctx context.Context, req *RefreshRequest) (*models.TokenPairResponse, error)
	VerifyAccessToken(ctx context.Context, token string) (*models.User, error)
}

type UserService interface {
	GetByID(ctx context.Context, id string) (*models.AdminUserResponse, error)
	UpdateApproval(ctx context.Context, actor *models.User, id string, req *ApprovalUpdateRequest) (*models.AdminUserResponse, error)
	TeacherReviewQueue(ctx context.Context, pendingOnly bool) ([]*models.AdminUserResponse, error)
}

type CourseService interface {
	Create(ctx context.Context, teacher *models.User, req *CourseCreateRequest) (*ChildCourseResponse, error)
	List(ctx context.Context) (*CourseListResponse, error)
	Join(ctx context.Context, student *models.User, courseID uint) error
	Leave(ctx context.Context, student *models.User, courseID uint) error
}

type DashboardService interface {
	GetDashboard(ctx context.Context, user *models.User) (*DashboardResponse, error)
}

// EnrollmentEventService fans domain events out to the message broker.
// Publishing failures are logged, never surfaced to the caller.
type EnrollmentEventService interface {
	PublishUserRegistered(ctx context.Context, user *models.User)
	PublishApprovalUpdated(ctx context.Context, actor *models.User, user *models.User)
	PublishCourseCreated(ctx context.Context, teacher *models.User, course *models.ChildCourse)
	PublishCourseJoined(ctx context.Context, student *models.User, courseID uint)
	PublishCourseLeft(ctx context.Context, student *models.User, courseID uint)
}

type ReportService interface {
	BuildEnrollmentWorkbook(ctx context.Context) ([]byte, error)
}

// ServiceManager wires the services together and owns their lifecycle.
type ServiceManager interface {
	Auth() AuthService
	User() UserService
	Course() CourseService
	Dashboard() DashboardService
	Report() ReportService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
