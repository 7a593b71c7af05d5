package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/bekhruzRakhmonov/educative-platform/internal/config"
	"github.com/bekhruzRakhmonov/educative-platform/internal/models"
	"github.com/bekhruzRakhmonov/educative-platform/internal/repositories"
	"github.com/bekhruzRakhmonov/educative-platform/internal/validator"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// tokenClaims embeds the user's identity in both token halves so clients
// can render the account without an extra round trip.
type tokenClaims struct {
	Email     string          `json:"email"`
	Name      string          `json:"name"`
	Status    models.UserRole `json:"status"`
	IsStaff   bool            `json:"is_staff"`
	TokenType string          `json:"token_type"`
	jwt.RegisteredClaims
}

type authService struct {
	repo      repositories.Repository
	events    EnrollmentEventService
	validator *validator.Validator
	cfg       config.JWTConfig
	logger    *slog.Logger
	now       func() time.Time
}

func NewAuthService(repo repositories.Repository, events EnrollmentEventService, v *validator.Validator, cfg config.JWTConfig, logger *slog.Logger) AuthService {
	return &authService{
		repo:      repo,
		events:    events,
		validator: v,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *authService) Register(ctx context.Context, req *SignupRequest) (*models.UserResponse, error) {
	req.Email = normalizeEmail(req.Email)

	s.logger.Info("Registering user", "email", req.Email, "status", req.Status)

	if err := s.validator.GetBusinessValidator().ValidateSignup(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.User().EmailExists(ctx, nil, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if exists {
		return nil, NewConflictError("user with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		Role:         req.Status,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := s.repo.User().Create(ctx, nil, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewConflictError("user with this email already exists")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.events.PublishUserRegistered(ctx, user)

	s.logger.Info("User registered", "user_id", user.ID, "status", user.Role)
	return models.NewUserResponse(user), nil
}

func (s *authService) Authenticate(ctx context.Context, req *LoginRequest) (*models.TokenPairResponse, error) {
	user, err := s.repo.User().GetByEmail(ctx, nil, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	s.logger.Info("User authenticated", "user_id", user.ID)
	return s.issueTokenPair(user)
}

func (s *authService) Refresh(ctx context.Context, req *RefreshRequest) (*models.TokenPairResponse, error) {
	claims, err := s.parseToken(req.Refresh)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != tokenTypeRefresh {
		return nil, ErrInvalidToken
	}

	user, err := s.repo.User().GetByID(ctx, nil, claims.Subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	return s.issueTokenPair(user)
}

// VerifyAccessToken reloads the user so approval changes take effect on the
// next request, not the next login.
func (s *authService) VerifyAccessToken(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != tokenTypeAccess {
		return nil, ErrInvalidToken
	}

	user, err := s.repo.User().GetByID(ctx, nil, claims.Subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	return user, nil
}

func (s *authService) issueTokenPair(user *models.User) (*models.TokenPairResponse, error) {
	access, err := s.signToken(user, tokenTypeAccess, s.cfg.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, err := s.signToken(user, tokenTypeRefresh, s.cfg.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return &models.TokenPairResponse{Access: access, Refresh: refresh}, nil
}

func (s *authService) signToken(user *models.User, tokenType string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := tokenClaims{
		Email:     user.Email,
		Name:      user.Name,
		Status:    user.Role,
		IsStaff:   user.IsStaff,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) parseToken(raw string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
