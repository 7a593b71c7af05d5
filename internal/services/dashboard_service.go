package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/bekhruzRakhmonov/educative-platform/internal/models"
	"github.com/bekhruzRakhmonov/educative-platform/internal/repositories"
)

type dashboardService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewDashboardService(repo repositories.Repository, logger *slog.Logger) DashboardService {
	return &dashboardService{repo: repo, logger: logger}
}

// GetDashboard shapes the course overview for the caller. Staff see every
// teacher's container, teachers see their own courses, students see the
// courses they joined grouped by teacher.
func (s *dashboardService) GetDashboard(ctx context.Context, user *models.User) (*DashboardResponse, error) {
	if !CanViewDashboard(user) {
		userID := ""
		if user != nil {
			userID = user.ID
		}
		return nil, NewPermissionError(userID, "dashboard", "view", "account is disabled")
	}

	response := &DashboardResponse{
		Status: string(user.Role),
		Name:   user.Name,
	}

	switch {
	case user.IsStaff:
		containers, err := s.repo.Course().ListWithDetails(ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to load courses: %w", err)
		}
		response.Status = "admin"
		response.Courses = ProjectAdminCourses(containers)

	case user.Role == models.RoleTeacher:
		container, err := s.repo.Course().GetByTeacher(ctx, nil, user.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to load courses: %w", err)
		}
		response.Courses = ProjectTeacherCourses(container)

	default:
		containers, err := s.repo.Course().ListWithDetails(ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to load courses: %w", err)
		}
		response.Courses = ProjectStudentCourses(containers, user.ID)
	}

	s.logger.Debug("Dashboard built", "user_id", user.ID, "status", response.Status)
	return response, nil
}

// ProjectAdminCourses renders every container in full: the teacher with the
// moderation flags, each course with its flags and timestamps, and the
// complete student roster. Only the password hash stays out.
func ProjectAdminCourses(containers []*models.Course) []AdminCourseView {
	views := make([]AdminCourseView, 0, len(containers))
	for _, container := range containers {
		view := AdminCourseView{
			ID:      container.ID,
			Courses: make([]AdminChildCourseView, 0, len(container.Courses)),
		}
		if container.Teacher != nil {
			view.Teacher = models.NewAdminUserResponse(container.Teacher)
		}
		for _, child := range container.Courses {
			students := make([]*models.UserResponse, 0, len(child.Students))
			for _, student := range child.Students {
				students = append(students, models.NewUserResponse(student))
			}
			view.Courses = append(view.Courses, AdminChildCourseView{
				ID:           child.ID,
				Name:         child.Name,
				IsActive:     child.IsActive,
				CreatedAt:    child.CreatedAt,
				Metadata:     decodeMetadata(child.Metadata),
				StudentCount: len(child.Students),
				Students:     students,
			})
		}
		views = append(views, view)
	}
	return views
}

// ProjectTeacherCourses renders the teacher's own container. A teacher who
// has not created anything yet has no container and gets an empty course
// list.
func ProjectTeacherCourses(container *models.Course) TeacherCourseView {
	view := TeacherCourseView{Courses: []CourseCount{}}
	if container != nil {
		view.Courses = append(view.Courses, courseCounts(container)...)
	}
	return view
}

// ProjectStudentCourses keeps only containers holding at least one course the
// student joined, and within each only those joined courses.
func ProjectStudentCourses(containers []*models.Course, studentID string) []StudentCourseView {
	views := make([]StudentCourseView, 0, len(containers))
	for _, container := range containers {
		joined := map[string]int{}
		for _, child := range container.Courses {
			if hasStudent(child, studentID) {
				joined[child.Name] = len(child.Students)
			}
		}
		if len(joined) == 0 {
			continue
		}
		views = append(views, StudentCourseView{
			Teacher: teacherName(container),
			Courses: joined,
		})
	}
	return views
}

func teacherName(container *models.Course) string {
	if container.Teacher != nil {
		return container.Teacher.Name
	}
	return ""
}

func courseCounts(container *models.Course) []CourseCount {
	counts := make([]CourseCount, 0, len(container.Courses))
	for _, child := range container.Courses {
		counts = append(counts, CourseCount{
			Name:         child.Name,
			StudentCount: len(child.Students),
		})
	}
	return counts
}

func hasStudent(child *models.ChildCourse, studentID string) bool {
	for _, student := range child.Students {
		if student.ID == studentID {
			return true
		}
	}
	return false
}
