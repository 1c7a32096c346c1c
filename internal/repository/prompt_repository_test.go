package repository

import (
	"path/filepath"
	"testing"
	"time"

	"pref-go/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 创建测试数据库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Prompt{}))

	return db
}

// newTestPrompt 构造一条待评判记录
func newTestPrompt(promptText string) *models.Prompt {
	now := time.Now().UTC()
	return &models.Prompt{
		ID:                   uuid.NewString(),
		PromptText:           promptText,
		ResponseA:            "回答A",
		ResponseB:            "回答B",
		ModelName:            "gpt-3.5-turbo",
		Temperature:          0.8,
		TemperatureA:         0.7,
		MaxTokensA:           500,
		TopPA:                1.0,
		TemperatureB:         0.9,
		MaxTokensB:           500,
		TopPB:                1.0,
		ResponseAGeneratedAt: now,
		ResponseBGeneratedAt: now,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

func TestCreateAndGetByID(t *testing.T) {
	repo := NewPromptRepository(newTestDB(t))

	prompt := newTestPrompt("你好")
	require.NoError(t, repo.Create(prompt))

	got, err := repo.GetByID(prompt.ID)
	require.NoError(t, err)
	assert.Equal(t, prompt.ID, got.ID)
	assert.Equal(t, "你好", got.PromptText)
	assert.Equal(t, "回答A", got.ResponseA)
	assert.Equal(t, "回答B", got.ResponseB)
	assert.Equal(t, 0.8, got.Temperature)
	assert.Nil(t, got.Preference)
	assert.Nil(t, got.PreferenceRecordedAt)
}

func TestGetByIDNotFound(t *testing.T) {
	repo := NewPromptRepository(newTestDB(t))

	_, err := repo.GetByID(uuid.NewString())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdatePreference(t *testing.T) {
	repo := NewPromptRepository(newTestDB(t))

	prompt := newTestPrompt("你好")
	require.NoError(t, repo.Create(prompt))

	now := time.Now().UTC()
	matched, err := repo.UpdatePreference(prompt.ID, models.PreferenceA, now)
	require.NoError(t, err)
	assert.True(t, matched)

	got, err := repo.GetByID(prompt.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Preference)
	assert.Equal(t, models.PreferenceA, *got.Preference)
	require.NotNil(t, got.PreferenceRecordedAt)
	assert.WithinDuration(t, now, *got.PreferenceRecordedAt, time.Second)
	assert.WithinDuration(t, now, got.UpdatedAt, time.Second)
}

func TestUpdatePreferenceNotMatched(t *testing.T) {
	repo := NewPromptRepository(newTestDB(t))

	matched, err := repo.UpdatePreference(uuid.NewString(), models.PreferenceA, time.Now().UTC())
	require.NoError(t, err)
	assert.False(t, matched)
}

// 重复评判直接覆盖
func TestUpdatePreferenceOverwrite(t *testing.T) {
	repo := NewPromptRepository(newTestDB(t))

	prompt := newTestPrompt("你好")
	require.NoError(t, repo.Create(prompt))

	first := time.Now().UTC()
	_, err := repo.UpdatePreference(prompt.ID, models.PreferenceA, first)
	require.NoError(t, err)

	second := first.Add(time.Minute)
	matched, err := repo.UpdatePreference(prompt.ID, models.PreferenceB, second)
	require.NoError(t, err)
	assert.True(t, matched)

	got, err := repo.GetByID(prompt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PreferenceB, *got.Preference)
	assert.WithinDuration(t, second, *got.PreferenceRecordedAt, time.Second)
}

// 仅A/B参与导出扫描，TIE和未评判不参与
func TestListJudged(t *testing.T) {
	repo := NewPromptRepository(newTestDB(t))

	judgedA := newTestPrompt("记录A")
	judgedB := newTestPrompt("记录B")
	tie := newTestPrompt("平局")
	pending := newTestPrompt("未评判")
	for _, p := range []*models.Prompt{judgedA, judgedB, tie, pending} {
		require.NoError(t, repo.Create(p))
	}

	now := time.Now().UTC()
	_, err := repo.UpdatePreference(judgedA.ID, models.PreferenceA, now)
	require.NoError(t, err)
	_, err = repo.UpdatePreference(judgedB.ID, models.PreferenceB, now)
	require.NoError(t, err)
	_, err = repo.UpdatePreference(tie.ID, models.PreferenceTie, now)
	require.NoError(t, err)

	judged, err := repo.ListJudged()
	require.NoError(t, err)
	require.Len(t, judged, 2)
	ids := []string{judged[0].ID, judged[1].ID}
	assert.Contains(t, ids, judgedA.ID)
	assert.Contains(t, ids, judgedB.ID)
}

func TestCounts(t *testing.T) {
	repo := NewPromptRepository(newTestDB(t))

	judged := newTestPrompt("已评判")
	tie := newTestPrompt("平局")
	pending := newTestPrompt("未评判")
	for _, p := range []*models.Prompt{judged, tie, pending} {
		require.NoError(t, repo.Create(p))
	}

	now := time.Now().UTC()
	_, err := repo.UpdatePreference(judged.ID, models.PreferenceA, now)
	require.NoError(t, err)
	_, err = repo.UpdatePreference(tie.ID, models.PreferenceTie, now)
	require.NoError(t, err)

	total, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	withPreference, err := repo.CountWithPreference()
	require.NoError(t, err)
	assert.Equal(t, int64(2), withPreference)

	countA, err := repo.CountByPreference(models.PreferenceA)
	require.NoError(t, err)
	assert.Equal(t, int64(1), countA)

	countB, err := repo.CountByPreference(models.PreferenceB)
	require.NoError(t, err)
	assert.Equal(t, int64(0), countB)

	ties, err := repo.CountByPreference(models.PreferenceTie)
	require.NoError(t, err)
	assert.Equal(t, int64(1), ties)
}

// 列表按创建时间倒序
func TestListOrder(t *testing.T) {
	repo := NewPromptRepository(newTestDB(t))

	older := newTestPrompt("旧记录")
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	newer := newTestPrompt("新记录")
	require.NoError(t, repo.Create(older))
	require.NoError(t, repo.Create(newer))

	prompts, total, err := repo.List(0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, prompts, 2)
	assert.Equal(t, newer.ID, prompts[0].ID)
	assert.Equal(t, older.ID, prompts[1].ID)
}

func TestDelete(t *testing.T) {
	repo := NewPromptRepository(newTestDB(t))

	prompt := newTestPrompt("待删除")
	require.NoError(t, repo.Create(prompt))

	matched, err := repo.Delete(prompt.ID)
	require.NoError(t, err)
	assert.True(t, matched)

	matched, err = repo.Delete(prompt.ID)
	require.NoError(t, err)
	assert.False(t, matched)

	_, err = repo.GetByID(prompt.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
