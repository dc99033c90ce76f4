package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mellowlog/core/internal/models"
	"github.com/mellowlog/core/internal/modules/advice"
	"github.com/mellowlog/core/internal/modules/emotion"
	"github.com/mellowlog/core/internal/modules/streak"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	errEntryNotFound    = errors.New("journal entry not found")
	errTitleOrContent   = errors.New("either title or content is required")
	errInvalidDate      = errors.New("date must be formatted as YYYY-MM-DD")
	errMoodStatMissing  = errors.New("entry has not been processed yet")
	errInsightMissing   = errors.New("entry has no insight yet")
	errProcessingFailed = errors.New("emotion processing failed")
)

const dateLayout = "2006-01-02"

// Service owns journal CRUD and the emotion processing pipeline.
type Service struct {
	db        *gorm.DB
	extractor *emotion.Extractor
	advisor   *advice.Generator
	streaks   *streak.Service
	loc       *time.Location
	log       *zap.Logger
}

func NewService(db *gorm.DB, extractor *emotion.Extractor, advisor *advice.Generator, streaks *streak.Service, loc *time.Location, log *zap.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		db:        db,
		extractor: extractor,
		advisor:   advisor,
		streaks:   streaks,
		loc:       loc,
		log:       log,
	}
}

// Create stores a new entry for the user. The entry date defaults to the
// current local day; the streak advances from the entry's logical date.
func (s *Service) Create(userID string, dto createJournalDTO) (*models.JournalEntryModel, error) {
	title := strings.TrimSpace(dto.Title)
	content := dto.Content
	if title == "" && strings.TrimSpace(content) == "" {
		return nil, errTitleOrContent
	}

	date, err := s.resolveDate(dto.Date)
	if err != nil {
		return nil, err
	}

	entry := models.JournalEntryModel{
		UserID:  userID,
		Title:   title,
		Content: content,
		Date:    date,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("create journal entry: %w", err)
	}

	if s.streaks != nil {
		if err := s.streaks.RecordJournalDate(userID, date); err != nil {
			s.log.Warn("streak update failed", zap.String("user_id", userID), zap.Error(err))
		}
	}

	return &entry, nil
}

// List returns the user's entries, newest date first, with processing
// results attached.
func (s *Service) List(userID string) ([]models.JournalEntryModel, error) {
	var entries []models.JournalEntryModel
	err := s.db.Where("user_id = ?", userID).
		Preload("MoodStat").
		Preload("Insight").
		Order("date DESC, created_at DESC").
		Find(&entries).Error
	return entries, err
}

// Get returns one owned entry with processing results attached.
func (s *Service) Get(userID, entryID string) (*models.JournalEntryModel, error) {
	var entry models.JournalEntryModel
	err := s.db.Where("id = ? AND user_id = ?", entryID, userID).
		Preload("MoodStat").
		Preload("Insight").
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Update mutates title/content/date of an owned entry. Changing content
// does not reprocess; the stale snapshot marks the entry unprocessed.
func (s *Service) Update(userID, entryID string, dto updateJournalDTO) (*models.JournalEntryModel, error) {
	entry, err := s.Get(userID, entryID)
	if err != nil {
		return nil, err
	}

	if dto.Title != nil {
		entry.Title = strings.TrimSpace(*dto.Title)
	}
	if dto.Content != nil {
		entry.Content = *dto.Content
	}
	if entry.Title == "" && strings.TrimSpace(entry.Content) == "" {
		return nil, errTitleOrContent
	}
	if dto.Date != nil {
		date, err := parseDate(*dto.Date)
		if err != nil {
			return nil, err
		}
		entry.Date = date
	}

	if err := s.db.Save(entry).Error; err != nil {
		return nil, fmt.Errorf("update journal entry: %w", err)
	}
	return entry, nil
}

// Delete removes an owned entry and its satellite records.
func (s *Service) Delete(userID, entryID string) error {
	entry, err := s.Get(userID, entryID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("journal_entry_id = ?", entry.ID).Delete(&models.MoodStatModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("journal_entry_id = ?", entry.ID).Delete(&models.InsightModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.JournalEntryModel{}, "id = ?", entry.ID).Error
	})
}

// ProcessEmotions runs the pipeline for one owned entry: classify the
// content, resolve the dominant mood, generate advice, then write the
// mood stat, insight and content snapshot in a single transaction.
//
// When the stored snapshot already matches the current content the call
// is a no-op: no model calls, no writes.
func (s *Service) ProcessEmotions(ctx context.Context, userID, entryID string) (*models.JournalEntryModel, error) {
	entry, err := s.Get(userID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Processed() {
		return entry, nil
	}

	content := entry.Content
	dist := s.extractor.Classify(ctx, content)
	dominant := emotion.Dominant(dist)
	adviceItems := s.advisor.Generate(ctx, content, dominant)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := upsertMoodStat(tx, entry.ID, dist, dominant); err != nil {
			return err
		}
		if err := upsertInsight(tx, entry.ID, userID, adviceItems); err != nil {
			return err
		}
		entry.LastProcessedContent = &content
		return tx.Model(&models.JournalEntryModel{}).
			Where("id = ?", entry.ID).
			Update("last_processed_content", content).Error
	})
	if err != nil {
		entry.LastProcessedContent = nil
		return nil, fmt.Errorf("%w: %v", errProcessingFailed, err)
	}

	return s.Get(userID, entryID)
}

func upsertMoodStat(tx *gorm.DB, entryID string, dist emotion.Distribution, dominant string) error {
	var stat models.MoodStatModel
	err := tx.Where("journal_entry_id = ?", entryID).First(&stat).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	stat.JournalEntryID = entryID
	stat.PercentHappiness = dist.Happy
	stat.PercentSadness = dist.Sad
	stat.PercentFear = dist.Fear
	stat.PercentDisgust = dist.Disgust
	stat.PercentAnger = dist.Anger
	stat.PercentSurprise = 0
	stat.DominantMood = dominant
	return tx.Save(&stat).Error
}

func upsertInsight(tx *gorm.DB, entryID, userID string, items []string) error {
	var insight models.InsightModel
	err := tx.Where("journal_entry_id = ?", entryID).First(&insight).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	insight.JournalEntryID = entryID
	insight.UserID = userID
	insight.Advice = items
	return tx.Save(&insight).Error
}

// GetMoodStat returns the mood stat for an owned entry.
func (s *Service) GetMoodStat(userID, entryID string) (*models.MoodStatModel, error) {
	entry, err := s.Get(userID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.MoodStat == nil {
		return nil, errMoodStatMissing
	}
	return entry.MoodStat, nil
}

// GetInsight returns the insight for an owned entry.
func (s *Service) GetInsight(userID, entryID string) (*models.InsightModel, error) {
	entry, err := s.Get(userID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Insight == nil {
		return nil, errInsightMissing
	}
	return entry.Insight, nil
}

// ListMoodStats returns every mood stat belonging to the user's entries,
// newest first.
func (s *Service) ListMoodStats(userID string) ([]models.MoodStatModel, error) {
	var items []models.MoodStatModel
	err := s.db.
		Joins("JOIN journal_entries ON journal_entries.id = mood_stats.journal_entry_id").
		Where("journal_entries.user_id = ? AND journal_entries.deleted_at IS NULL", userID).
		Order("mood_stats.created_at DESC").
		Find(&items).Error
	return items, err
}

// ListInsights returns every insight belonging to the user, newest first.
func (s *Service) ListInsights(userID string) ([]models.InsightModel, error) {
	var items []models.InsightModel
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (s *Service) resolveDate(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		now := time.Now().In(s.loc)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return parseDate(raw)
}

func parseDate(raw string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, errInvalidDate
	}
	return parsed, nil
}
