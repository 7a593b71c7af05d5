package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/bekhruzRakhmonov/educative-platform/internal/models"
	"github.com/bekhruzRakhmonov/educative-platform/internal/repositories"
)

type CoursePostgreSQL struct {
	db *gorm.DB
}

func NewCoursePostgreSQL(db *gorm.DB) repositories.CourseRepository {
	return &CoursePostgreSQL{db: db}
}

func (c *CoursePostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return c.db
}

// GetOrCreateByTeacher is the idempotent container upsert: the unique index
// on teacher_id guarantees at most one container per teacher even when two
// first-course creations race.
func (c *CoursePostgreSQL) GetOrCreateByTeacher(ctx context.Context, tx *gorm.DB, teacherID string) (*models.Course, error) {
	db := c.getDB(tx)
	var course models.Course
	err := db.WithContext(ctx).
		Where(models.Course{TeacherID: teacherID}).
		FirstOrCreate(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *CoursePostgreSQL) GetByTeacher(ctx context.Context, tx *gorm.DB, teacherID string) (*models.Course, error) {
	db := c.getDB(tx)
	var course models.Course
	err := db.WithContext(ctx).
		Preload("Teacher").
		Preload("Courses").
		Preload("Courses.Students").
		First(&course, "teacher_id = ?", teacherID).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *CoursePostgreSQL) AttachChild(ctx context.Context, tx *gorm.DB, course *models.Course, child *models.ChildCourse) error {
	db := c.getDB(tx)
	return db.WithContext(ctx).Model(course).Association("Courses").Append(child)
}

func (c *CoursePostgreSQL) ListWithDetails(ctx context.Context, tx *gorm.DB) ([]*models.Course, error) {
	db := c.getDB(tx)
	var courses []*models.Course

	err := db.WithContext(ctx).
		Preload("Teacher").
		Preload("Courses").
		Preload("Courses.Students").
		Order("id ASC").
		Find(&courses).Error
	if err != nil {
		return nil, err
	}

	return courses, nil
}
