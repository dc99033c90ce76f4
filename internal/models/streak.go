package models

import "time"

// UserStreakModel tracks consecutive journaling days for one user.
// Invariant: LongestStreak >= CurrentStreak after every update.
type UserStreakModel struct {
	Base
	UserID          string     `json:"-"                 gorm:"uniqueIndex;not null"`
	CurrentStreak   int        `json:"current_streak"    gorm:"not null;default:0"`
	LongestStreak   int        `json:"longest_streak"    gorm:"not null;default:0"`
	LastJournalDate *time.Time `json:"last_journal_date" gorm:"type:date"`
}

func (UserStreakModel) TableName() string { return "user_streaks" }
