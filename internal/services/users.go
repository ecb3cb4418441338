package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/breaching/moodix/internal/models"
)

var (
	ErrUsernameTaken  = errors.New("username already exists")
	ErrEmailTaken     = errors.New("email already exists")
	ErrUsernameLength = errors.New("username must be between 3 and 100 characters")
	ErrPasswordLength = errors.New("password must be at least 8 characters")
)

// UserInput carries the mutable account fields for admin create/update.
// Pointer fields distinguish "absent" from zero values on update.
type UserInput struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Email    *string `json:"email"`
	IsAdmin  *bool   `json:"is_admin"`
	IsActive *bool   `json:"is_active"`
}

// ListUsers returns every account.
func ListUsers(db *gorm.DB) ([]models.User, error) {
	var users []models.User
	if err := db.Order("user_id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser returns one account plus its journal entry count.
func GetUser(db *gorm.DB, userID uint64) (*models.User, int64, error) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, err
	}

	var entryCount int64
	if err := db.Model(&models.JournalEntry{}).Where("user_id = ?", userID).Count(&entryCount).Error; err != nil {
		return nil, 0, err
	}

	return &user, entryCount, nil
}

// CreateUser validates and creates a new account.
func CreateUser(db *gorm.DB, in UserInput) (*models.User, error) {
	if len(in.Username) < 3 || len(in.Username) > 100 {
		return nil, ErrUsernameLength
	}
	if len(in.Password) < 8 {
		return nil, ErrPasswordLength
	}

	if taken, err := usernameTaken(db, in.Username, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrUsernameTaken
	}

	// An empty email is stored as NULL so the unique index never collides.
	if in.Email != nil && *in.Email == "" {
		in.Email = nil
	}
	if in.Email != nil {
		if taken, err := emailTaken(db, *in.Email, 0); err != nil {
			return nil, err
		} else if taken {
			return nil, ErrEmailTaken
		}
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     in.Username,
		PasswordHash: hash,
		Email:        in.Email,
		IsActive:     true,
	}
	if in.IsAdmin != nil {
		user.IsAdmin = *in.IsAdmin
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}

	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser applies the provided fields to an existing account.
func UpdateUser(db *gorm.DB, userID uint64, in UserInput) (*models.User, error) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if in.Username != "" && in.Username != user.Username {
		if len(in.Username) < 3 || len(in.Username) > 100 {
			return nil, ErrUsernameLength
		}
		if taken, err := usernameTaken(db, in.Username, userID); err != nil {
			return nil, err
		} else if taken {
			return nil, ErrUsernameTaken
		}
		user.Username = in.Username
	}

	if in.Email != nil {
		if *in.Email != "" {
			if taken, err := emailTaken(db, *in.Email, userID); err != nil {
				return nil, err
			} else if taken {
				return nil, ErrEmailTaken
			}
			user.Email = in.Email
		} else {
			user.Email = nil
		}
	}

	if in.Password != "" {
		if len(in.Password) < 8 {
			return nil, ErrPasswordLength
		}
		hash, err := HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if in.IsAdmin != nil {
		user.IsAdmin = *in.IsAdmin
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}

	if err := db.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes an account and all of its data (entries, settings) in
// one transaction. Returns the deleted username.
func DeleteUser(db *gorm.DB, userID uint64) (string, error) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.JournalEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Setting{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		return "", err
	}

	return user.Username, nil
}

// ResetPassword replaces an account's password hash.
func ResetPassword(db *gorm.DB, userID uint64, password string) (*models.User, error) {
	if len(password) < 8 {
		return nil, ErrPasswordLength
	}

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = hash
	if err := db.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func usernameTaken(db *gorm.DB, username string, excludeID uint64) (bool, error) {
	var count int64
	err := db.Model(&models.User{}).
		Where("username = ? AND user_id <> ?", username, excludeID).
		Count(&count).Error
	return count > 0, err
}

func emailTaken(db *gorm.DB, email string, excludeID uint64) (bool, error) {
	var count int64
	err := db.Model(&models.User{}).
		Where("email = ? AND user_id <> ?", email, excludeID).
		Count(&count).Error
	return count > 0, err
}
