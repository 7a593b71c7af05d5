package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bekhruzRakhmonov/educative-platform/internal/config"
	"github.com/bekhruzRakhmonov/educative-platform/internal/events"
	"github.com/bekhruzRakhmonov/educative-platform/internal/repositories"
	"github.com/bekhruzRakhmonov/educative-platform/internal/validator"
)

// serviceManager implements ServiceManager.
type serviceManager struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
	jwtConfig config.JWTConfig

	authService      AuthService
	userService      UserService
	courseService    CourseService
	dashboardService DashboardService
	eventService     EnrollmentEventService
	reportService    ReportService

	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a service manager with all dependencies.
func NewServiceManager(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, v *validator.Validator, jwtConfig config.JWTConfig) ServiceManager {
	return &serviceManager{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: v,
		jwtConfig: jwtConfig,
	}
}

// Initialize sets up all services and their dependencies.
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	sm.eventService = NewEnrollmentEventService(sm.publisher, sm.logger)
	sm.authService = NewAuthService(sm.repo, sm.eventService, sm.validator, sm.jwtConfig, sm.logger)
	sm.userService = NewUserService(sm.repo, sm.eventService, sm.validator, sm.logger)
	sm.courseService = NewCourseService(sm.repo, sm.eventService, sm.validator, sm.logger)
	sm.dashboardService = NewDashboardService(sm.repo, sm.logger)
	sm.reportService = NewReportService(sm.repo, sm.logger)

	if err := sm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")

	return nil
}

func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.authService
}

func (sm *serviceManager) User() UserService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.userService
}

func (sm *serviceManager) Course() CourseService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.courseService
}

func (sm *serviceManager) Dashboard() DashboardService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.dashboardService
}

func (sm *serviceManager) Report() ReportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.reportService
}

// HealthCheck verifies the manager and its backing stores are usable.
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	return nil
}

// Shutdown closes the event publisher and releases repository resources.
func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if sm.publisher != nil {
		if err := sm.publisher.Close(); err != nil {
			sm.logger.Error("Failed to close event publisher", "error", err)
		}
	}

	if err := sm.repo.Close(); err != nil {
		sm.logger.Error("Failed to close repository", "error", err)
	}

	sm.shutdown = true
	sm.logger.Info("Service manager shut down completed")

	return nil
}
