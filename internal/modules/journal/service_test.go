package journal

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mellowlog/core/internal/database"
	"github.com/mellowlog/core/internal/models"
	"github.com/mellowlog/core/internal/modules/advice"
	"github.com/mellowlog/core/internal/modules/emotion"
	"github.com/mellowlog/core/internal/modules/streak"
	"github.com/mellowlog/core/internal/pkg/completion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// pipelineStub answers both the emotion and the advice prompts, keyed on
// the system prompt, and counts how many model calls happened.
type pipelineStub struct {
	emotionResp string
	adviceResp  string
	calls       int
}

func (s *pipelineStub) Complete(_ context.Context, req completion.Request) (string, error) {
	s.calls++
	if strings.Contains(req.System, "Emotion classification") {
		return s.emotionResp, nil
	}
	return s.adviceResp, nil
}

func (s *pipelineStub) Model() string { return "stub" }

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	return db
}

func newTestService(t *testing.T, stub *pipelineStub) (*Service, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	var client completion.Client
	if stub != nil {
		client = stub
	}
	svc := NewService(
		db,
		emotion.NewExtractor(client, zap.NewNop()),
		advice.NewGenerator(client, zap.NewNop()),
		streak.NewService(db),
		time.UTC,
		zap.NewNop(),
	)
	return svc, db
}

func happyStub() *pipelineStub {
	return &pipelineStub{
		emotionResp: `{"happy":0.6,"sad":0.1,"fear":0.1,"disgust":0.05,"anger":0.15}`,
		adviceResp:  `{"advice":["a1","a2","a3","a4","a5"]}`,
	}
}

func TestCreateRequiresTitleOrContent(t *testing.T) {
	svc, _ := newTestService(t, nil)
	_, err := svc.Create("user-1", createJournalDTO{})
	assert.ErrorIs(t, err, errTitleOrContent)
}

func TestCreateTitleOnlyIsEnough(t *testing.T) {
	svc, _ := newTestService(t, nil)
	entry, err := svc.Create("user-1", createJournalDTO{Title: "Short note"})
	require.NoError(t, err)
	assert.Equal(t, "Short note", entry.Title)
}

func TestCreateDefaultsDateToToday(t *testing.T) {
	svc, _ := newTestService(t, nil)
	entry, err := svc.Create("user-1", createJournalDTO{Content: "hello"})
	require.NoError(t, err)

	now := time.Now().UTC()
	assert.Equal(t, now.Year(), entry.Date.Year())
	assert.Equal(t, now.YearDay(), entry.Date.YearDay())
}

func TestCreateRejectsBadDate(t *testing.T) {
	svc, _ := newTestService(t, nil)
	_, err := svc.Create("user-1", createJournalDTO{Content: "hello", Date: "28-08-2026"})
	assert.ErrorIs(t, err, errInvalidDate)
}

func TestCreateAdvancesStreak(t *testing.T) {
	svc, db := newTestService(t, nil)
	_, err := svc.Create("user-1", createJournalDTO{Content: "day one", Date: "2026-08-27"})
	require.NoError(t, err)
	_, err = svc.Create("user-1", createJournalDTO{Content: "day two", Date: "2026-08-28"})
	require.NoError(t, err)

	row, err := streak.NewService(db).GetForUser("user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, row.CurrentStreak)
}

func TestProcessEmotionsWritesAllThreeRecords(t *testing.T) {
	stub := happyStub()
	svc, _ := newTestService(t, stub)

	entry, err := svc.Create("user-1", createJournalDTO{Content: "a lovely afternoon"})
	require.NoError(t, err)

	processed, err := svc.ProcessEmotions(context.Background(), "user-1", entry.ID)
	require.NoError(t, err)

	require.NotNil(t, processed.MoodStat)
	assert.InDelta(t, 60, processed.MoodStat.PercentHappiness, 1e-9)
	assert.Equal(t, "happy", processed.MoodStat.DominantMood)
	assert.Zero(t, processed.MoodStat.PercentSurprise)

	require.NotNil(t, processed.Insight)
	assert.Equal(t, models.StringArray{"a1", "a2", "a3", "a4", "a5"}, processed.Insight.Advice)

	assert.True(t, processed.Processed())
	assert.Equal(t, 2, stub.calls) // one classify, one advice
}

func TestProcessEmotionsIsIdempotentOnUnchangedContent(t *testing.T) {
	stub := happyStub()
	svc, _ := newTestService(t, stub)

	entry, err := svc.Create("user-1", createJournalDTO{Content: "same words"})
	require.NoError(t, err)

	_, err = svc.ProcessEmotions(context.Background(), "user-1", entry.ID)
	require.NoError(t, err)
	callsAfterFirst := stub.calls

	_, err = svc.ProcessEmotions(context.Background(), "user-1", entry.ID)
	require.NoError(t, err)
	assert.Equal(t, callsAfterFirst, stub.calls, "second run must not call the model")
}

func TestProcessEmotionsReprocessesAfterEdit(t *testing.T) {
	stub := happyStub()
	svc, _ := newTestService(t, stub)

	entry, err := svc.Create("user-1", createJournalDTO{Content: "draft one"})
	require.NoError(t, err)

	first, err := svc.ProcessEmotions(context.Background(), "user-1", entry.ID)
	require.NoError(t, err)
	firstStatID := first.MoodStat.ID

	newContent := "a completely rewritten entry"
	_, err = svc.Update("user-1", entry.ID, updateJournalDTO{Content: &newContent})
	require.NoError(t, err)

	stub.emotionResp = `{"happy":0.1,"sad":0.7,"fear":0.1,"disgust":0.05,"anger":0.05}`
	second, err := svc.ProcessEmotions(context.Background(), "user-1", entry.ID)
	require.NoError(t, err)

	assert.Equal(t, firstStatID, second.MoodStat.ID, "mood stat updated in place")
	assert.Equal(t, "sad", second.MoodStat.DominantMood)
	assert.Equal(t, 4, stub.calls)
}

func TestProcessEmotionsTieYieldsEmptyDominant(t *testing.T) {
	stub := happyStub()
	stub.emotionResp = `{"happy":0.4,"sad":0.4,"fear":0.1,"disgust":0.05,"anger":0.05}`
	svc, _ := newTestService(t, stub)

	entry, err := svc.Create("user-1", createJournalDTO{Content: "mixed feelings"})
	require.NoError(t, err)

	processed, err := svc.ProcessEmotions(context.Background(), "user-1", entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "", processed.MoodStat.DominantMood)
}

func TestProcessEmotionsFallsBackToDefaults(t *testing.T) {
	stub := &pipelineStub{
		emotionResp: "sorry, I cannot help with that",
		adviceResp:  "also not json",
	}
	svc, _ := newTestService(t, stub)

	entry, err := svc.Create("user-1", createJournalDTO{Content: "gibberish"})
	require.NoError(t, err)

	processed, err := svc.ProcessEmotions(context.Background(), "user-1", entry.ID)
	require.NoError(t, err)

	assert.Zero(t, processed.MoodStat.PercentHappiness)
	assert.Equal(t, "", processed.MoodStat.DominantMood)
	assert.Equal(t, models.StringArray(advice.DefaultAdvice), processed.Insight.Advice)
	assert.True(t, processed.Processed(), "fallback results still advance the snapshot")
}

func TestProcessEmotionsUnknownEntry(t *testing.T) {
	svc, _ := newTestService(t, happyStub())
	_, err := svc.ProcessEmotions(context.Background(), "user-1", "nope")
	assert.ErrorIs(t, err, errEntryNotFound)
}

func TestProcessEmotionsOwnerScoped(t *testing.T) {
	svc, _ := newTestService(t, happyStub())
	entry, err := svc.Create("user-1", createJournalDTO{Content: "mine"})
	require.NoError(t, err)

	_, err = svc.ProcessEmotions(context.Background(), "user-2", entry.ID)
	assert.ErrorIs(t, err, errEntryNotFound)
}

func TestDeleteRemovesSatellites(t *testing.T) {
	svc, db := newTestService(t, happyStub())
	entry, err := svc.Create("user-1", createJournalDTO{Content: "to be removed"})
	require.NoError(t, err)
	_, err = svc.ProcessEmotions(context.Background(), "user-1", entry.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete("user-1", entry.ID))

	var statCount, insightCount int64
	db.Model(&models.MoodStatModel{}).Where("journal_entry_id = ?", entry.ID).Count(&statCount)
	db.Model(&models.InsightModel{}).Where("journal_entry_id = ?", entry.ID).Count(&insightCount)
	assert.Zero(t, statCount)
	assert.Zero(t, insightCount)

	_, err = svc.Get("user-1", entry.ID)
	assert.ErrorIs(t, err, errEntryNotFound)
}

func TestGetMoodStatBeforeProcessing(t *testing.T) {
	svc, _ := newTestService(t, nil)
	entry, err := svc.Create("user-1", createJournalDTO{Content: "unprocessed"})
	require.NoError(t, err)

	_, err = svc.GetMoodStat("user-1", entry.ID)
	assert.ErrorIs(t, err, errMoodStatMissing)

	_, err = svc.GetInsight("user-1", entry.ID)
	assert.ErrorIs(t, err, errInsightMissing)
}

func TestUpdateCannotBlankBothFields(t *testing.T) {
	svc, _ := newTestService(t, nil)
	entry, err := svc.Create("user-1", createJournalDTO{Title: "keep", Content: "text"})
	require.NoError(t, err)

	empty := ""
	_, err = svc.Update("user-1", entry.ID, updateJournalDTO{Title: &empty, Content: &empty})
	assert.ErrorIs(t, err, errTitleOrContent)
}

func TestListInsightsScopedToUser(t *testing.T) {
	svc, _ := newTestService(t, happyStub())
	mine, err := svc.Create("user-1", createJournalDTO{Content: "mine"})
	require.NoError(t, err)
	theirs, err := svc.Create("user-2", createJournalDTO{Content: "theirs"})
	require.NoError(t, err)

	_, err = svc.ProcessEmotions(context.Background(), "user-1", mine.ID)
	require.NoError(t, err)
	_, err = svc.ProcessEmotions(context.Background(), "user-2", theirs.ID)
	require.NoError(t, err)

	items, err := svc.ListInsights("user-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
}
