package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bekhruzRakhmonov/educative-platform/internal/services"
	"github.com/bekhruzRakhmonov/educative-platform/internal/utils"
	"github.com/bekhruzRakhmonov/educative-platform/internal/validator"
)

type CourseHandler struct {
	BaseHandler
	courseService services.CourseService
	validator     *validator.Validator
}

func NewCourseHandler(courseService services.CourseService, v *validator.Validator, logger utils.Logger) *CourseHandler {
	return &CourseHandler{
		BaseHandler:   NewBaseHandler(logger),
		courseService: courseService,
		validator:     v,
	}
}

// CreateCourse adds a course under the calling teacher's container.
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req services.CourseCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Creating course", "name", req.Name)

	teacher, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	course, err := h.courseService.Create(c.Request.Context(), teacher, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, course)
}

// ListCourses returns every course with teacher and enrollment size.
func (h *CourseHandler) ListCourses(c *gin.Context) {
	h.LogRequest(c, "Listing courses")

	courses, err := h.courseService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, courses)
}

// JoinCourse enrolls the calling student in the course.
func (h *CourseHandler) JoinCourse(c *gin.Context) {
	courseID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	h.LogRequest(c, "Joining course", "course_id", courseID)

	student, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	if err := h.courseService.Join(c.Request.Context(), student, courseID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Success: "You succesfully joined this course",
	})
}

// LeaveCourse removes the calling student's enrollment.
func (h *CourseHandler) LeaveCourse(c *gin.Context) {
	courseID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	h.LogRequest(c, "Leaving course", "course_id", courseID)

	student, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	if err := h.courseService.Leave(c.Request.Context(), student, courseID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: "You succesfully left this course",
	})
}
