package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bekhruzRakhmonov/educative-platform/internal/services"
	"github.com/bekhruzRakhmonov/educative-platform/internal/utils"
	"github.com/bekhruzRakhmonov/educative-platform/internal/validator"
)

type HandlerManager struct {
	authHandler      *AuthHandler
	userHandler      *UserHandler
	courseHandler    *CourseHandler
	dashboardHandler *DashboardHandler
	authMiddleware   *JWTAuthMiddleware
	serviceManager   services.ServiceManager
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	validator *validator.Validator,
	logger utils.Logger,
) *HandlerManager {
	authMiddleware := NewJWTAuthMiddleware(serviceManager.Auth())

	return &HandlerManager{
		authHandler:      NewAuthHandler(serviceManager.Auth(), validator, logger),
		userHandler:      NewUserHandler(serviceManager.User(), serviceManager.Report(), validator, logger),
		courseHandler:    NewCourseHandler(serviceManager.Course(), validator, logger),
		dashboardHandler: NewDashboardHandler(serviceManager.Dashboard(), logger),
		authMiddleware:   authMiddleware,
		serviceManager:   serviceManager,
	}
}

// SetupRoutes sets up all API routes.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Public routes
	router.POST("/signup", hm.authHandler.Signup)
	router.POST("/login", hm.authHandler.Login)
	router.POST("/token/refresh", hm.authHandler.Refresh)

	// Authenticated routes
	authed := router.Group("")
	authed.Use(hm.authMiddleware.AuthMiddleware())
	{
		authed.GET("/dashboard", hm.dashboardHandler.GetDashboard)

		authed.POST("/create-course", hm.courseHandler.CreateCourse)
		authed.GET("/course", hm.courseHandler.ListCourses)
		authed.POST("/course/:id", hm.courseHandler.JoinCourse)
		authed.DELETE("/course/:id", hm.courseHandler.LeaveCourse)

		// Staff-only moderation surface
		staff := authed.Group("")
		staff.Use(hm.authMiddleware.RequireStaffMiddleware())
		{
			staff.GET("/user/:id", hm.userHandler.GetUser)
			staff.PATCH("/user/:id", hm.userHandler.PatchUser)
			staff.GET("/admin-notifications", hm.userHandler.AdminNotifications)
			staff.GET("/admin/reports/enrollments", hm.userHandler.ExportEnrollments)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"service": "educative-platform",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "educative-platform",
		})
	})
}
