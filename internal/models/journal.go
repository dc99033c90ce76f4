package models

import "time"

// JournalEntryModel is a single journal entry. At least one of title/content is
// required at the API layer. LastProcessedContent snapshots the content that the
// emotion pipeline last ran against; while it differs from Content the entry is
// considered unprocessed.
type JournalEntryModel struct {
	Base
	UserID               string    `json:"user_id" gorm:"index;not null"`
	Title                string    `json:"title"`
	Content              string    `json:"content" gorm:"type:longtext"`
	Date                 time.Time `json:"date"    gorm:"type:date;index;not null"`
	LastProcessedContent *string   `json:"-"       gorm:"type:longtext"`

	MoodStat *MoodStatModel `json:"mood_stat,omitempty" gorm:"foreignKey:JournalEntryID;constraint:OnDelete:CASCADE"`
	Insight  *InsightModel  `json:"insight,omitempty"   gorm:"foreignKey:JournalEntryID;constraint:OnDelete:CASCADE"`
}

func (JournalEntryModel) TableName() string { return "journal_entries" }

// Processed reports whether the current content has already been run through the
// emotion pipeline.
func (j *JournalEntryModel) Processed() bool {
	return j.LastProcessedContent != nil && *j.LastProcessedContent == j.Content
}
