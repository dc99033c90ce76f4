package models

import "time"

// DailyGreetingModel holds the five greetings generated for one user, day and
// time-period bucket. The composite unique index makes concurrent generation
// racers collapse onto a single surviving row.
type DailyGreetingModel struct {
	Base
	UserID     string      `json:"user_id"     gorm:"uniqueIndex:idx_greeting_bucket;not null"`
	Date       time.Time   `json:"date"        gorm:"type:date;uniqueIndex:idx_greeting_bucket;not null"`
	TimePeriod string      `json:"time_period" gorm:"uniqueIndex:idx_greeting_bucket;not null"`
	Greetings  StringArray `json:"greetings"   gorm:"type:longtext;not null"`
}

func (DailyGreetingModel) TableName() string { return "daily_greetings" }
