package postgres

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bekhruzRakhmonov/educative-platform/internal/cache"
	"github.com/bekhruzRakhmonov/educative-platform/internal/models"
	"github.com/bekhruzRakhmonov/educative-platform/internal/repositories"
)

type ChildCoursePostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewChildCoursePostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.ChildCourseRepository {
	return &ChildCoursePostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (c *ChildCoursePostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return c.db
}

func (c *ChildCoursePostgreSQL) Create(ctx context.Context, tx *gorm.DB, course *models.ChildCourse) error {
	db := c.getDB(tx)
	if err := db.WithContext(ctx).Create(course).Error; err != nil {
		return err
	}
	cache.InvalidateCourseCache(ctx, c.cacheManager, course.ID)
	return nil
}

// GetByIDForUpdate takes a row lock; only meaningful inside a transaction.
func (c *ChildCoursePostgreSQL) GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.ChildCourse, error) {
	db := c.getDB(tx)
	var course models.ChildCourse
	if err := db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *ChildCoursePostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.ChildCourseFilters) ([]*models.ChildCourse, int64, error) {
	db := c.getDB(tx)
	var courses []*models.ChildCourse
	var total int64

	query := db.WithContext(ctx).
		Model(&models.ChildCourse{}).
		Preload("Containers.Teacher")
	if filters.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filters.Query != "" {
		query = query.Where("name ILIKE ?", "%"+filters.Query+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit).Offset(filters.Offset)
	}

	if err := query.Order("created_at DESC").Find(&courses).Error; err != nil {
		return nil, 0, err
	}

	return courses, total, nil
}

func (c *ChildCoursePostgreSQL) IsEnrolled(ctx context.Context, tx *gorm.DB, courseID uint, studentID string) (bool, error) {
	db := c.getDB(tx)
	var count int64
	err := db.WithContext(ctx).
		Table("child_course_students").
		Where("child_course_id = ? AND user_id = ?", courseID, studentID).
		Count(&count).Error
	return count > 0, err
}

func (c *ChildCoursePostgreSQL) AddStudent(ctx context.Context, tx *gorm.DB, course *models.ChildCourse, student *models.User) error {
	db := c.getDB(tx)
	if err := db.WithContext(ctx).Model(course).Association("Students").Append(student); err != nil {
		return err
	}
	cache.InvalidateCourseCache(ctx, c.cacheManager, course.ID)
	return nil
}

func (c *ChildCoursePostgreSQL) RemoveStudent(ctx context.Context, tx *gorm.DB, course *models.ChildCourse, student *models.User) error {
	db := c.getDB(tx)
	if err := db.WithContext(ctx).Model(course).Association("Students").Delete(student); err != nil {
		return err
	}
	cache.InvalidateCourseCache(ctx, c.cacheManager, course.ID)
	return nil
}

func (c *ChildCoursePostgreSQL) CountStudents(ctx context.Context, tx *gorm.DB, courseID uint) (int64, error) {
	db := c.getDB(tx)
	cacheKey := fmt.Sprintf("students:count:%d", courseID)
	var count int64

	err := c.cacheManager.Course.CacheOrExecute(ctx, cacheKey, &count, cache.ExistsCacheConfig.TTL, func() (interface{}, error) {
		var dbCount int64
		err := db.WithContext(ctx).
			Table("child_course_students").
			Where("child_course_id = ?", courseID).
			Count(&dbCount).Error
		if err != nil {
			return nil, err
		}
		return dbCount, nil
	})

	return count, err
}
