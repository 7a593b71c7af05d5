package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bekhruzRakhmonov/educative-platform/internal/services"
	"github.com/bekhruzRakhmonov/educative-platform/internal/utils"
	"github.com/bekhruzRakhmonov/educative-platform/internal/validator"
)

// ErrorResponse is the wire shape of every failure: a single "error" key,
// optionally a "details" list for validation failures.
type ErrorResponse struct {
	Message string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

type SuccessResponse struct {
	Success string `json:"success"`
}

// BaseHandler carries the shared logging and error translation used by all
// handlers.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c, h.logger).Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	utils.FromContext(c, h.logger).Error(msg, append(args, "error", err)...)
}

func (h *BaseHandler) parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + name + " parameter",
		})
		return 0, false
	}
	return uint(id), true
}

// handleServiceError maps service errors onto HTTP responses. Unknown errors
// become a generic 500 so internals never leak to clients.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var permErr *services.PermissionError
	var conflictErr *services.ConflictError
	var validationErrs validator.ValidationErrors
	var validationErr validator.ValidationError

	switch {
	case errors.As(err, &permErr):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: permErr.Reason,
		})

	case errors.As(err, &conflictErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: conflictErr.Message,
		})

	case errors.As(err, &validationErrs):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrs,
		})

	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validator.ValidationErrors{validationErr},
		})

	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "User not found"})

	case errors.Is(err, services.ErrCourseNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "Course not found"})

	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "Not found"})

	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: services.ErrInvalidCredentials.Error()})

	case errors.Is(err, services.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: services.ErrInvalidToken.Error()})

	case errors.Is(err, services.ErrAccountDisabled):
		c.JSON(http.StatusForbidden, ErrorResponse{Message: services.ErrAccountDisabled.Error()})

	default:
		h.LogError(c, err, "Unhandled service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
