package user

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mellowlog/core/internal/models"
	"github.com/mellowlog/core/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	errUserNotFound       = errors.New("user not found")
	errUsernameTaken      = errors.New("username is already taken")
	errInvalidCredentials = errors.New("invalid username or password")
)

const tokenTTL = 7 * 24 * time.Hour

// Service handles registration, login and account management.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Register creates a user with a bcrypt-hashed password and an attached
// profile row.
func (s *Service) Register(dto registerDTO) (*models.UserModel, error) {
	username := strings.TrimSpace(dto.Username)

	var count int64
	if err := s.db.Model(&models.UserModel{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.UserModel{
		Username: username,
		Name:     strings.TrimSpace(dto.Name),
		Mail:     strings.TrimSpace(dto.Mail),
		Password: string(hashed),
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&models.UserProfileModel{UserID: user.ID}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Login verifies credentials, stamps the login metadata and returns a
// signed JWT.
func (s *Service) Login(username, password, ip string) (string, *models.UserModel, error) {
	var user models.UserModel
	err := s.db.Where("username = ?", strings.TrimSpace(username)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, errInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", nil, errInvalidCredentials
	}

	now := time.Now()
	user.LastLoginTime = &now
	user.LastLoginIP = ip
	if err := s.db.Model(&user).Updates(map[string]interface{}{
		"last_login_time": now,
		"last_login_ip":   ip,
	}).Error; err != nil {
		return "", nil, err
	}

	token, err := jwt.Sign(user.ID, tokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, &user, nil
}

// GetMe returns the user with the profile attached.
func (s *Service) GetMe(userID string) (*models.UserModel, error) {
	var user models.UserModel
	err := s.db.Preload("Profile").First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateMe mutates display name and mail.
func (s *Service) UpdateMe(userID string, dto updateMeDTO) (*models.UserModel, error) {
	user, err := s.GetMe(userID)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		user.Name = strings.TrimSpace(*dto.Name)
	}
	if dto.Mail != nil {
		user.Mail = strings.TrimSpace(*dto.Mail)
	}
	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// MarkWelcomeSeen flips the profile onboarding flag.
func (s *Service) MarkWelcomeSeen(userID string) error {
	result := s.db.Model(&models.UserProfileModel{}).
		Where("user_id = ?", userID).
		Update("has_seen_welcome", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Older accounts may predate the profile table.
		return s.db.Create(&models.UserProfileModel{UserID: userID, HasSeenWelcome: true}).Error
	}
	return nil
}

// DeleteAccount removes the user and everything they own: journals with
// their mood stats and insights, streak, greetings and profile.
func (s *Service) DeleteAccount(userID string) error {
	if _, err := s.GetMe(userID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		entryIDs := tx.Model(&models.JournalEntryModel{}).
			Select("id").
			Where("user_id = ?", userID)

		if err := tx.Where("journal_entry_id IN (?)", entryIDs).Delete(&models.MoodStatModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.InsightModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.JournalEntryModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserStreakModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.DailyGreetingModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserProfileModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.UserModel{}, "id = ?", userID).Error
	})
}
