package postgres

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/bekhruzRakhmonov/educative-platform/internal/cache"
	"github.com/bekhruzRakhmonov/educative-platform/internal/repositories"
)

// PostgreSQLRepository implements the main Repository interface
type PostgreSQLRepository struct {
	db           *gorm.DB
	redisClient  *redis.Client
	cacheManager *cache.CacheManager

	user        repositories.UserRepository
	course      repositories.CourseRepository
	childCourse repositories.ChildCourseRepository
}

// RepositoryConfig holds configuration for repository initialization
type RepositoryConfig struct {
	DB          *gorm.DB
	RedisClient *redis.Client
}

// NewPostgreSQLRepository creates a new repository manager with all sub-repositories
func NewPostgreSQLRepository(config RepositoryConfig) repositories.Repository {
	return newPostgreSQLRepository(config.DB, config.RedisClient)
}

func newPostgreSQLRepository(db *gorm.DB, redisClient *redis.Client) *PostgreSQLRepository {
	repo := &PostgreSQLRepository{
		db:           db,
		redisClient:  redisClient,
		cacheManager: cache.NewCacheManager(redisClient),
	}

	repo.user = NewUserPostgreSQL(db, redisClient)
	repo.course = NewCoursePostgreSQL(db)
	repo.childCourse = NewChildCoursePostgreSQL(db, redisClient)

	return repo
}

func (r *PostgreSQLRepository) User() repositories.UserRepository {
	return r.user
}

func (r *PostgreSQLRepository) Course() repositories.CourseRepository {
	return r.course
}

func (r *PostgreSQLRepository) ChildCourse() repositories.ChildCourseRepository {
	return r.childCourse
}

// WithTransaction binds every sub-repository to a single transaction for the
// duration of fn. Membership read-check-then-write sequences depend on this.
func (r *PostgreSQLRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newPostgreSQLRepository(tx, r.redisClient))
	})
}

func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (r *PostgreSQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.Close()
}

// ===== REPOSITORY MANAGER =====

// RepositoryManager wires repository construction into the application
// lifecycle used by main.
type RepositoryManager struct {
	config RepositoryConfig
	repo   repositories.Repository
}

func NewRepositoryManager(config RepositoryConfig) *RepositoryManager {
	return &RepositoryManager{config: config}
}

func (m *RepositoryManager) Initialize() error {
	if m.config.DB == nil {
		return fmt.Errorf("repository manager requires a database connection")
	}
	m.repo = NewPostgreSQLRepository(m.config)
	return m.repo.Ping(context.Background())
}

func (m *RepositoryManager) GetRepository() repositories.Repository {
	return m.repo
}
