package services

import (
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/breaching/moodix/internal/config"
	"github.com/breaching/moodix/internal/models"
)

var (
	// ErrInvalidCredentials covers unknown users and wrong passwords alike,
	// so responses never leak which one it was.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountDisabled signals a valid login against a deactivated account.
	ErrAccountDisabled = errors.New("account is disabled")
)

// Authenticate verifies a username/password pair against the users table.
// When the username is unknown but matches the bootstrap admin credentials
// from the environment, the admin account is created on first login.
func Authenticate(db *gorm.DB, cfg *config.Config, log *zap.Logger, username, password string) (*models.User, error) {
	var user models.User
	err := db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return bootstrapAdmin(db, cfg, log, username, password)
	}

	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// bootstrapAdmin auto-creates the environment-configured admin on its first
// successful login, mirroring the .env-driven single-user setup.
func bootstrapAdmin(db *gorm.DB, cfg *config.Config, log *zap.Logger, username, password string) (*models.User, error) {
	if cfg.AdminPasswordHash == "" || username != cfg.AdminUsername {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(cfg.AdminPasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	var admin models.User
	err := db.Where("username = ? AND is_admin = ?", cfg.AdminUsername, true).First(&admin).Error
	if err == nil {
		return &admin, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	admin = models.User{
		Username:     cfg.AdminUsername,
		PasswordHash: cfg.AdminPasswordHash,
		IsAdmin:      true,
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return nil, err
	}

	log.Info("auto-created admin user from environment",
		zap.String("username", cfg.AdminUsername))

	return &admin, nil
}

// HashPassword produces a bcrypt hash for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
