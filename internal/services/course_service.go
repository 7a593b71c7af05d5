package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/bekhruzRakhmonov/educative-platform/internal/models"
	"github.com/bekhruzRakhmonov/educative-platform/internal/repositories"
	"github.com/bekhruzRakhmonov/educative-platform/internal/validator"
)

type courseService struct {
	repo      repositories.Repository
	events    EnrollmentEventService
	validator *validator.Validator
	logger    *slog.Logger
}

func NewCourseService(repo repositories.Repository, events EnrollmentEventService, v *validator.Validator, logger *slog.Logger) CourseService {
	return &courseService{
		repo:      repo,
		events:    events,
		validator: v,
		logger:    logger,
	}
}

// Create adds a course under the teacher's container, creating the container
// on first use.
func (s *courseService) Create(ctx context.Context, teacher *models.User, req *CourseCreateRequest) (*ChildCourseResponse, error) {
	if ok, reason := CanCreateCourse(teacher); !ok {
		teacherID := ""
		if teacher != nil {
			teacherID = teacher.ID
		}
		return nil, NewPermissionError(teacherID, "course", "create", reason)
	}

	if verrs := s.validator.GetBusinessValidator().ValidateCourseCreate(req); len(verrs) > 0 {
		return nil, verrs
	}

	child := &models.ChildCourse{
		Name:     req.Name,
		IsActive: true,
	}
	if len(req.Metadata) > 0 {
		raw, err := json.Marshal(req.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to encode course metadata: %w", err)
		}
		child.Metadata = raw
	}

	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		container, err := txRepo.Course().GetOrCreateByTeacher(ctx, nil, teacher.ID)
		if err != nil {
			return fmt.Errorf("failed to resolve course container: %w", err)
		}
		if err := txRepo.ChildCourse().Create(ctx, nil, child); err != nil {
			return fmt.Errorf("failed to create course: %w", err)
		}
		if err := txRepo.Course().AttachChild(ctx, nil, container, child); err != nil {
			return fmt.Errorf("failed to attach course to container: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.PublishCourseCreated(ctx, teacher, child)

	s.logger.Info("Course created", "course_id", child.ID, "teacher_id", teacher.ID, "name", child.Name)
	return &ChildCourseResponse{
		ID:       child.ID,
		Name:     child.Name,
		Teacher:  teacher.Name,
		Metadata: req.Metadata,
	}, nil
}

// List returns every course on the platform with its teacher and roster size.
// Roster sizes come from the cached per-course counter so browsing does not
// load full rosters.
func (s *courseService) List(ctx context.Context) (*CourseListResponse, error) {
	children, total, err := s.repo.ChildCourse().List(ctx, nil, repositories.ChildCourseFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	response := &CourseListResponse{Courses: []ChildCourseResponse{}}
	for _, child := range children {
		count, err := s.repo.ChildCourse().CountStudents(ctx, nil, child.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count students: %w", err)
		}
		response.Courses = append(response.Courses, ChildCourseResponse{
			ID:           child.ID,
			Name:         child.Name,
			Teacher:      childTeacherName(child),
			StudentCount: int(count),
			Metadata:     decodeMetadata(child.Metadata),
		})
	}
	response.Total = int(total)
	return response, nil
}

func childTeacherName(child *models.ChildCourse) string {
	for _, container := range child.Containers {
		if container.Teacher != nil {
			return container.Teacher.Name
		}
	}
	return ""
}

// Join enrolls the student. The course row is locked for the transaction so
// two concurrent joins of the same course serialize and the duplicate check
// stays accurate.
func (s *courseService) Join(ctx context.Context, student *models.User, courseID uint) error {
	if ok, reason := CanJoinCourses(student); !ok {
		studentID := ""
		if student != nil {
			studentID = student.ID
		}
		return NewPermissionError(studentID, "course", "join", reason)
	}

	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		course, err := txRepo.ChildCourse().GetByIDForUpdate(ctx, nil, courseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourseNotFound
			}
			return fmt.Errorf("failed to load course: %w", err)
		}

		enrolled, err := txRepo.ChildCourse().IsEnrolled(ctx, nil, course.ID, student.ID)
		if err != nil {
			return fmt.Errorf("failed to check enrollment: %w", err)
		}
		if enrolled {
			return ErrAlreadyJoined
		}

		return txRepo.ChildCourse().AddStudent(ctx, nil, course, student)
	})
	if err != nil {
		return err
	}

	s.events.PublishCourseJoined(ctx, student, courseID)

	s.logger.Info("Student joined course", "course_id", courseID, "student_id", student.ID)
	return nil
}

// Leave removes the student's enrollment under the same locking discipline
// as Join.
func (s *courseService) Leave(ctx context.Context, student *models.User, courseID uint) error {
	if ok, reason := CanJoinCourses(student); !ok {
		studentID := ""
		if student != nil {
			studentID = student.ID
		}
		return NewPermissionError(studentID, "course", "leave", reason)
	}

	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		course, err := txRepo.ChildCourse().GetByIDForUpdate(ctx, nil, courseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourseNotFound
			}
			return fmt.Errorf("failed to load course: %w", err)
		}

		enrolled, err := txRepo.ChildCourse().IsEnrolled(ctx, nil, course.ID, student.ID)
		if err != nil {
			return fmt.Errorf("failed to check enrollment: %w", err)
		}
		if !enrolled {
			return ErrNotJoined
		}

		return txRepo.ChildCourse().RemoveStudent(ctx, nil, course, student)
	})
	if err != nil {
		return err
	}

	s.events.PublishCourseLeft(ctx, student, courseID)

	s.logger.Info("Student left course", "course_id", courseID, "student_id", student.ID)
	return nil
}

func decodeMetadata(raw []byte) map[string]interface{} {
	if len(raw) == 0 {
		return nil
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
