package models

// MoodStatModel holds the emotion percentages derived for one journal entry.
// Each percentage is in [0, 100]. DominantMood is empty when no single emotion
// strictly dominates (ties, or the all-zero fallback distribution).
// PercentSurprise is a retained legacy column; the live label set no longer
// includes surprise and the pipeline always writes 0.
type MoodStatModel struct {
	Base
	JournalEntryID   string  `json:"-"                 gorm:"uniqueIndex;not null"`
	PercentHappiness float64 `json:"percent_happiness" gorm:"not null"`
	PercentSadness   float64 `json:"percent_sadness"   gorm:"not null"`
	PercentFear      float64 `json:"percent_fear"      gorm:"not null"`
	PercentDisgust   float64 `json:"percent_disgust"   gorm:"not null"`
	PercentAnger     float64 `json:"percent_anger"     gorm:"not null"`
	PercentSurprise  float64 `json:"percent_surprise"  gorm:"not null;default:0"`
	DominantMood     string  `json:"dominant_mood"`
}

func (MoodStatModel) TableName() string { return "mood_stats" }
