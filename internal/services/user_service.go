package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/bekhruzRakhmonov/educative-platform/internal/models"
	"github.com/bekhruzRakhmonov/educative-platform/internal/repositories"
	"github.com/bekhruzRakhmonov/educative-platform/internal/validator"
)

type userService struct {
	repo      repositories.Repository
	events    EnrollmentEventService
	validator *validator.Validator
	logger    *slog.Logger
}

func NewUserService(repo repositories.Repository, events EnrollmentEventService, v *validator.Validator, logger *slog.Logger) UserService {
	return &userService{
		repo:      repo,
		events:    events,
		validator: v,
		logger:    logger,
	}
}

func (s *userService) GetByID(ctx context.Context, id string) (*models.AdminUserResponse, error) {
	user, err := s.repo.User().GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return models.NewAdminUserResponse(user), nil
}

// UpdateApproval applies a partial approval patch. Either flag may be set
// alone; the pair may never end up both true.
func (s *userService) UpdateApproval(ctx context.Context, actor *models.User, id string, req *ApprovalUpdateRequest) (*models.AdminUserResponse, error) {
	if !CanModerateUsers(actor) {
		actorID := ""
		if actor != nil {
			actorID = actor.ID
		}
		return nil, NewPermissionError(actorID, "user", "moderate", "staff access required")
	}

	user, err := s.repo.User().GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if verrs := s.validator.GetBusinessValidator().ValidateApprovalPatch(req, user); verrs != nil {
		return nil, verrs
	}

	if req.IsApproved != nil {
		user.IsApproved = *req.IsApproved
	}
	if req.IsRejected != nil {
		user.IsRejected = *req.IsRejected
	}
	if err := s.repo.User().Update(ctx, nil, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.events.PublishApprovalUpdated(ctx, actor, user)

	s.logger.Info("User approval updated",
		"actor_id", actor.ID,
		"user_id", user.ID,
		"is_approved", user.IsApproved,
		"is_rejected", user.IsRejected,
	)
	return models.NewAdminUserResponse(user), nil
}

// TeacherReviewQueue lists teacher accounts for the admin review screen.
// With pendingOnly set, accounts already approved or rejected are omitted.
func (s *userService) TeacherReviewQueue(ctx context.Context, pendingOnly bool) ([]*models.AdminUserResponse, error) {
	role := models.RoleTeacher
	users, _, err := s.repo.User().List(ctx, nil, repositories.UserFilters{
		Role:        &role,
		PendingOnly: pendingOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list teachers: %w", err)
	}

	responses := make([]*models.AdminUserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, models.NewAdminUserResponse(user))
	}
	return responses, nil
}
