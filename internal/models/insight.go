package models

// InsightModel stores the advice messages generated for one journal entry.
// Advice always holds exactly five entries; legacy single-text rows scan into a
// one-element list via StringArray.
type InsightModel struct {
	Base
	JournalEntryID string      `json:"-"      gorm:"uniqueIndex;not null"`
	UserID         string      `json:"-"      gorm:"index;not null"`
	Advice         StringArray `json:"advice" gorm:"type:longtext;not null"`
}

func (InsightModel) TableName() string { return "insights" }
