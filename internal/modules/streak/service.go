package streak

import (
	"errors"
	"fmt"
	"time"

	"github.com/mellowlog/core/internal/models"
	"gorm.io/gorm"
)

// Service maintains per-user journaling streaks.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// GetForUser returns the user's streak row, or a zero-valued row when the
// user has never journaled.
func (s *Service) GetForUser(userID string) (*models.UserStreakModel, error) {
	var row models.UserStreakModel
	err := s.db.Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.UserStreakModel{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// RecordJournalDate applies the streak transition for a journal entry
// created with the given logical date:
//
//	no row yet        -> streak starts at 1
//	same day again    -> unchanged
//	next calendar day -> +1
//	gap of 2+ days    -> reset to 1
//	backdated entry   -> ignored, row untouched
//
// LongestStreak is raised to CurrentStreak whenever it falls behind.
func (s *Service) RecordJournalDate(userID string, date time.Time) error {
	day := truncateToDay(date)

	var row models.UserStreakModel
	err := s.db.Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = models.UserStreakModel{
			UserID:          userID,
			CurrentStreak:   1,
			LongestStreak:   1,
			LastJournalDate: &day,
		}
		if createErr := s.db.Create(&row).Error; createErr != nil {
			return fmt.Errorf("create streak row: %w", createErr)
		}
		return nil
	}
	if err != nil {
		return err
	}

	if row.LastJournalDate == nil {
		row.CurrentStreak = 1
		row.LastJournalDate = &day
	} else {
		gap := daysBetween(truncateToDay(*row.LastJournalDate), day)
		switch {
		case gap < 0:
			return nil
		case gap == 0:
			return nil
		case gap == 1:
			row.CurrentStreak++
			row.LastJournalDate = &day
		default:
			row.CurrentStreak = 1
			row.LastJournalDate = &day
		}
	}

	if row.LongestStreak < row.CurrentStreak {
		row.LongestStreak = row.CurrentStreak
	}
	if saveErr := s.db.Save(&row).Error; saveErr != nil {
		return fmt.Errorf("update streak row: %w", saveErr)
	}
	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
