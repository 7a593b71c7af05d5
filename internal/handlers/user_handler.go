package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bekhruzRakhmonov/educative-platform/internal/services"
	"github.com/bekhruzRakhmonov/educative-platform/internal/utils"
	"github.com/bekhruzRakhmonov/educative-platform/internal/validator"
)

type UserHandler struct {
	BaseHandler
	userService   services.UserService
	reportService services.ReportService
	validator     *validator.Validator
}

func NewUserHandler(userService services.UserService, reportService services.ReportService, v *validator.Validator, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler:   NewBaseHandler(logger),
		userService:   userService,
		reportService: reportService,
		validator:     v,
	}
}

// GetUser returns a single account for the admin review screen.
func (h *UserHandler) GetUser(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "User ID is required",
		})
		return
	}

	h.LogRequest(c, "Getting user", "user_id", userID)

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// PatchUser applies a partial approval update to an account.
func (h *UserHandler) PatchUser(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "User ID is required",
		})
		return
	}

	var req services.ApprovalUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Updating user approval", "user_id", userID)

	actor, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	user, err := h.userService.UpdateApproval(c.Request.Context(), actor, userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// AdminNotifications lists teacher accounts awaiting review. With
// ?pending=true only accounts that are neither approved nor rejected are
// returned.
func (h *UserHandler) AdminNotifications(c *gin.Context) {
	pendingOnly := c.Query("pending") == "true"

	h.LogRequest(c, "Listing teacher review queue", "pending_only", pendingOnly)

	teachers, err := h.userService.TeacherReviewQueue(c.Request.Context(), pendingOnly)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"teachers": teachers,
		"total":    len(teachers),
	})
}

// ExportEnrollments streams the enrollment roster as an xlsx download.
func (h *UserHandler) ExportEnrollments(c *gin.Context) {
	h.LogRequest(c, "Exporting enrollment report")

	workbook, err := h.reportService.BuildEnrollmentWorkbook(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("enrollments-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}
