package models

import "time"

// UserModel represents a journal owner.
type UserModel struct {
	Base
	Username      string     `json:"username" gorm:"uniqueIndex;not null"`
	Name          string     `json:"name"`
	Mail          string     `json:"mail"`
	Password      string     `json:"-"        gorm:"not null"`
	LastLoginTime *time.Time `json:"last_login_time"`
	LastLoginIP   string     `json:"last_login_ip"`

	Profile *UserProfileModel `json:"profile,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (UserModel) TableName() string { return "users" }

// UserProfileModel holds per-user onboarding flags, created alongside the user.
type UserProfileModel struct {
	Base
	UserID         string `json:"-"                gorm:"uniqueIndex;not null"`
	HasSeenWelcome bool   `json:"has_seen_welcome" gorm:"default:false"`
}

func (UserProfileModel) TableName() string { return "user_profiles" }
