package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/bekhruzRakhmonov/educative-platform/internal/config"
	"github.com/bekhruzRakhmonov/educative-platform/internal/events"
	"github.com/bekhruzRakhmonov/educative-platform/internal/models"
	"github.com/bekhruzRakhmonov/educative-platform/internal/validator"
)

func newTestAuthService(repo *mockRepository) (*authService, *events.MockEventPublisher) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	mockPublisher := events.NewMockEventPublisher(logger)

	service := &authService{
		repo:      repo,
		events:    NewEnrollmentEventService(mockPublisher, logger),
		validator: validator.New(),
		cfg: config.JWTConfig{
			Secret:     "test-secret",
			Issuer:     "educative-platform-test",
			AccessTTL:  15 * time.Minute,
			RefreshTTL: 24 * time.Hour,
		},
		logger: logger,
		now:    time.Now,
	}
	return service, mockPublisher
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	return string(hash)
}

func TestAuthService_Register(t *testing.T) {
	repo := newMockRepository()
	service, mockPublisher := newTestAuthService(repo)
	ctx := context.Background()

	t.Run("creates student account", func(t *testing.T) {
		resp, err := service.Register(ctx, &SignupRequest{
			Email:    "amir@example.com",
			Name:     "Amir",
			Status:   models.RoleStudent,
			Password: "secret123",
		})
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}

		if resp.ID == "" {
			t.Error("expected generated user ID")
		}
		if resp.Status != models.RoleStudent {
			t.Errorf("Status = %v, want %v", resp.Status, models.RoleStudent)
		}
		if resp.IsApproved || resp.IsRejected {
			t.Error("new accounts must start unreviewed")
		}

		stored, err := repo.User().GetByID(ctx, nil, resp.ID)
		if err != nil {
			t.Fatalf("stored user not found: %v", err)
		}
		if stored.PasswordHash == "secret123" {
			t.Error("password must be stored hashed")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")); err != nil {
			t.Errorf("stored hash does not match password: %v", err)
		}

		published := mockPublisher.GetPublishedEvents()
		if len(published) != 1 {
			t.Fatalf("expected 1 event, got %d", len(published))
		}
		if published[0].Type != events.TypeUserRegistered {
			t.Errorf("event type = %s, want %s", published[0].Type, events.TypeUserRegistered)
		}
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		_, err := service.Register(ctx, &SignupRequest{
			Email:    "amir@example.com",
			Name:     "Other Amir",
			Status:   models.RoleTeacher,
			Password: "secret123",
		})
		var conflictErr *ConflictError
		if !errors.As(err, &conflictErr) {
			t.Fatalf("expected ConflictError, got %v", err)
		}
	})

	t.Run("rejects invalid role", func(t *testing.T) {
		_, err := service.Register(ctx, &SignupRequest{
			Email:    "eve@example.com",
			Name:     "Eve",
			Status:   "admin",
			Password: "secret123",
		})
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			t.Fatalf("expected ValidationErrors, got %v", err)
		}
	})
}

func TestAuthService_Authenticate(t *testing.T) {
	repo := newMockRepository()
	service, _ := newTestAuthService(repo)
	ctx := context.Background()

	repo.addUser(&models.User{
		Name:         "Dilnoza",
		Email:        "dilnoza@example.com",
		Role:         models.RoleTeacher,
		PasswordHash: hashPassword(t, "correct-horse"),
		IsActive:     true,
	})

	t.Run("issues token pair with identity claims", func(t *testing.T) {
		tokens, err := service.Authenticate(ctx, &LoginRequest{
			Email:    "dilnoza@example.com",
			Password: "correct-horse",
		})
		if err != nil {
			t.Fatalf("Authenticate() error = %v", err)
		}
		if tokens.Access == "" || tokens.Refresh == "" {
			t.Fatal("expected both access and refresh tokens")
		}

		claims := &tokenClaims{}
		_, err = jwt.ParseWithClaims(tokens.Access, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		if err != nil {
			t.Fatalf("failed to parse access token: %v", err)
		}
		if claims.Email != "dilnoza@example.com" {
			t.Errorf("claims.Email = %q", claims.Email)
		}
		if claims.Name != "Dilnoza" {
			t.Errorf("claims.Name = %q", claims.Name)
		}
		if claims.Status != models.RoleTeacher {
			t.Errorf("claims.Status = %q", claims.Status)
		}
		if claims.TokenType != tokenTypeAccess {
			t.Errorf("claims.TokenType = %q", claims.TokenType)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Authenticate(ctx, &LoginRequest{
			Email:    "dilnoza@example.com",
			Password: "wrong",
		})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := service.Authenticate(ctx, &LoginRequest{
			Email:    "nobody@example.com",
			Password: "whatever",
		})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("disabled account", func(t *testing.T) {
		repo.addUser(&models.User{
			Name:         "Disabled",
			Email:        "disabled@example.com",
			Role:         models.RoleStudent,
			PasswordHash: hashPassword(t, "secret123"),
			IsActive:     false,
		})
		_, err := service.Authenticate(ctx, &LoginRequest{
			Email:    "disabled@example.com",
			Password: "secret123",
		})
		if !errors.Is(err, ErrAccountDisabled) {
			t.Errorf("expected ErrAccountDisabled, got %v", err)
		}
	})
}

func TestAuthService_Refresh(t *testing.T) {
	repo := newMockRepository()
	service, _ := newTestAuthService(repo)
	ctx := context.Background()

	repo.addUser(&models.User{
		Name:         "Rustam",
		Email:        "rustam@example.com",
		Role:         models.RoleStudent,
		PasswordHash: hashPassword(t, "secret123"),
		IsActive:     true,
	})

	tokens, err := service.Authenticate(ctx, &LoginRequest{
		Email:    "rustam@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}

	t.Run("accepts refresh token", func(t *testing.T) {
		fresh, err := service.Refresh(ctx, &RefreshRequest{Refresh: tokens.Refresh})
		if err != nil {
			t.Fatalf("Refresh() error = %v", err)
		}
		if fresh.Access == "" || fresh.Refresh == "" {
			t.Error("expected a full token pair")
		}
	})

	t.Run("rejects access token", func(t *testing.T) {
		_, err := service.Refresh(ctx, &RefreshRequest{Refresh: tokens.Access})
		if !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := service.Refresh(ctx, &RefreshRequest{Refresh: "not-a-token"})
		if !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}

func TestAuthService_VerifyAccessToken(t *testing.T) {
	repo := newMockRepository()
	service, _ := newTestAuthService(repo)
	ctx := context.Background()

	teacher := repo.addUser(&models.User{
		Name:         "Teacher",
		Email:        "teacher@example.com",
		Role:         models.RoleTeacher,
		PasswordHash: hashPassword(t, "secret123"),
		IsActive:     true,
	})

	tokens, err := service.Authenticate(ctx, &LoginRequest{
		Email:    "teacher@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}

	// Approval granted after the token was issued must be visible on the
	// next verification.
	teacher.IsApproved = true

	user, err := service.VerifyAccessToken(ctx, tokens.Access)
	if err != nil {
		t.Fatalf("VerifyAccessToken() error = %v", err)
	}
	if !user.IsApproved {
		t.Error("expected reloaded user to carry fresh approval state")
	}

	if _, err := service.VerifyAccessToken(ctx, tokens.Refresh); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("refresh token must not pass access verification, got %v", err)
	}
}
