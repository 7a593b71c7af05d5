package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bekhruzRakhmonov/educative-platform/internal/models"
	"github.com/bekhruzRakhmonov/educative-platform/internal/repositories"
)

// mockRepository is an in-memory Repository for service tests.
type mockRepository struct {
	mu sync.Mutex

	users       map[string]*models.User
	containers  map[string]*models.Course
	children    map[uint]*models.ChildCourse
	enrollments map[uint]map[string]bool

	nextContainerID uint
	nextCourseID    uint
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		users:       make(map[string]*models.User),
		containers:  make(map[string]*models.Course),
		children:    make(map[uint]*models.ChildCourse),
		enrollments: make(map[uint]map[string]bool),
	}
}

func (m *mockRepository) User() repositories.UserRepository { return (*mockUserRepo)(m) }

func (m *mockRepository) Course() repositories.CourseRepository { return (*mockCourseRepo)(m) }

func (m *mockRepository) ChildCourse() repositories.ChildCourseRepository {
	return (*mockChildCourseRepo)(m)
}

func (m *mockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

func (m *mockRepository) Ping(ctx context.Context) error { return nil }

func (m *mockRepository) Close() error { return nil }

// addUser seeds an account and returns it.
func (m *mockRepository) addUser(user *models.User) *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	m.users[user.ID] = user
	return user
}

// addCourse seeds a course under the teacher's container and returns it.
func (m *mockRepository) addCourse(teacher *models.User, name string, students ...*models.User) *models.ChildCourse {
	m.mu.Lock()
	defer m.mu.Unlock()

	container, ok := m.containers[teacher.ID]
	if !ok {
		m.nextContainerID++
		container = &models.Course{ID: m.nextContainerID, TeacherID: teacher.ID, Teacher: teacher}
		m.containers[teacher.ID] = container
	}

	m.nextCourseID++
	child := &models.ChildCourse{ID: m.nextCourseID, Name: name, IsActive: true, Students: students}
	child.Containers = []*models.Course{container}
	m.children[child.ID] = child
	container.Courses = append(container.Courses, child)

	roster := make(map[string]bool)
	for _, s := range students {
		roster[s.ID] = true
	}
	m.enrollments[child.ID] = roster

	return child
}

// ===== USER =====

type mockUserRepo mockRepository

func (m *mockUserRepo) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) Update(ctx context.Context, tx *gorm.DB, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.UserFilters) ([]*models.User, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.User
	for _, user := range m.users {
		if filters.Role != nil && user.Role != *filters.Role {
			continue
		}
		if filters.PendingOnly && (user.IsApproved || user.IsRejected) {
			continue
		}
		out = append(out, user)
	}
	return out, int64(len(out)), nil
}

// ===== COURSE CONTAINER =====

type mockCourseRepo mockRepository

func (m *mockCourseRepo) GetOrCreateByTeacher(ctx context.Context, tx *gorm.DB, teacherID string) (*models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if container, ok := m.containers[teacherID]; ok {
		return container, nil
	}
	m.nextContainerID++
	container := &models.Course{ID: m.nextContainerID, TeacherID: teacherID, Teacher: m.users[teacherID]}
	m.containers[teacherID] = container
	return container, nil
}

func (m *mockCourseRepo) GetByTeacher(ctx context.Context, tx *gorm.DB, teacherID string) (*models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	container, ok := m.containers[teacherID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return container, nil
}

func (m *mockCourseRepo) AttachChild(ctx context.Context, tx *gorm.DB, course *models.Course, child *models.ChildCourse) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	course.Courses = append(course.Courses, child)
	child.Containers = append(child.Containers, course)
	return nil
}

func (m *mockCourseRepo) ListWithDetails(ctx context.Context, tx *gorm.DB) ([]*models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Course
	for _, container := range m.containers {
		out = append(out, container)
	}
	return out, nil
}

// ===== CHILD COURSE =====

type mockChildCourseRepo mockRepository

func (m *mockChildCourseRepo) Create(ctx context.Context, tx *gorm.DB, course *models.ChildCourse) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextCourseID++
	course.ID = m.nextCourseID
	m.children[course.ID] = course
	m.enrollments[course.ID] = make(map[string]bool)
	return nil
}

func (m *mockChildCourseRepo) GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.ChildCourse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	course, ok := m.children[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return course, nil
}

func (m *mockChildCourseRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.ChildCourseFilters) ([]*models.ChildCourse, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.ChildCourse
	for _, course := range m.children {
		if filters.ActiveOnly && !course.IsActive {
			continue
		}
		out = append(out, course)
	}
	return out, int64(len(out)), nil
}

func (m *mockChildCourseRepo) IsEnrolled(ctx context.Context, tx *gorm.DB, courseID uint, studentID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	roster, ok := m.enrollments[courseID]
	if !ok {
		return false, fmt.Errorf("unknown course %d", courseID)
	}
	return roster[studentID], nil
}

func (m *mockChildCourseRepo) AddStudent(ctx context.Context, tx *gorm.DB, course *models.ChildCourse, student *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enrollments[course.ID][student.ID] = true
	course.Students = append(course.Students, student)
	return nil
}

func (m *mockChildCourseRepo) RemoveStudent(ctx context.Context, tx *gorm.DB, course *models.ChildCourse, student *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.enrollments[course.ID], student.ID)
	for i, s := range course.Students {
		if s.ID == student.ID {
			course.Students = append(course.Students[:i], course.Students[i+1:]...)
			break
		}
	}
	return nil
}

func (m *mockChildCourseRepo) CountStudents(ctx context.Context, tx *gorm.DB, courseID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.enrollments[courseID])), nil
}
