package pkg

import (
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/bekhruzRakhmonov/educative-platform/internal/config"
	"github.com/bekhruzRakhmonov/educative-platform/internal/models"
)

// SeedAdmin creates the bootstrap staff account when it does not exist yet.
// Idempotent across restarts.
func SeedAdmin(db *gorm.DB, cfg *config.Config, logger *slog.Logger) error {
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		logger.Info("Admin seed skipped, ADMIN_EMAIL or ADMIN_PASSWORD not set")
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", cfg.Admin.Email).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check for admin user: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := models.User{
		Name:         cfg.Admin.Name,
		Email:        cfg.Admin.Email,
		Role:         models.RoleTeacher,
		PasswordHash: string(hash),
		IsStaff:      true,
		IsActive:     true,
		IsApproved:   true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	logger.Info("Admin user seeded", "email", cfg.Admin.Email)
	return nil
}
