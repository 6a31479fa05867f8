package db

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	types "github.com/pawmart/pawmart-backend/internal/domain"
	pkgerrors "github.com/pawmart/pawmart-backend/internal/pkg/errors"
	"github.com/pawmart/pawmart-backend/internal/pkg/logger"
	"github.com/pawmart/pawmart-backend/internal/utils"
)

// SeedAdmin bootstraps the admin account on first start. Safe to run on every
// boot: it is a no-op when the email already exists.
func SeedAdmin(db *gorm.DB, logg *logger.Logger) error {
	email := utils.GetEnv("ADMIN_EMAIL", "admin@pawmart.local", logg)
	password := utils.GetEnv("ADMIN_PASSWORD", "", logg)
	if password == "" {
		logg.Debug("ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var count int64
	if err := db.Model(&types.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check for admin user: %w", err)
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &types.User{
		ID:       uuid.New(),
		Email:    email,
		Password: string(hashed),
		Name:     "Administrator",
		Role:     "admin",
		IsActive: true,
	}
	if err := db.Create(admin).Error; err != nil {
		// Concurrent boot of another instance may win the insert.
		if pkgerrors.IsUniqueViolation(err) {
			return nil
		}
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	logg.Info("Seeded admin user", "email", email)
	return nil
}
