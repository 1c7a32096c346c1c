package utils

import (
	"encoding/json"
	"strings"
	"testing"

	"pref-go/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePairs() []dto.TrainingPair {
	recordedAt := "2024-01-02T03:04:05Z"
	return []dto.TrainingPair{
		{
			Prompt:   "你好",
			Chosen:   "回答A",
			Rejected: "回答B",
			Metadata: dto.TrainingPairMetadata{
				Model:                "gpt-3.5-turbo",
				Temperature:          0.8,
				TemperatureA:         0.7,
				TemperatureB:         0.9,
				CreatedAt:            "2024-01-01T00:00:00Z",
				PreferenceRecordedAt: &recordedAt,
			},
		},
		{
			Prompt:   "再见",
			Chosen:   "B面",
			Rejected: "A面",
			Metadata: dto.TrainingPairMetadata{
				Model:        "gpt-3.5-turbo",
				Temperature:  0.8,
				TemperatureA: 0.7,
				TemperatureB: 0.9,
				CreatedAt:    "2024-01-01T00:00:00Z",
			},
		},
	}
}

func TestRenderTrainingPairsJSONL(t *testing.T) {
	content, err := RenderTrainingPairsJSONL(samplePairs())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	require.Len(t, lines, 2)

	var pair dto.TrainingPair
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &pair))
	assert.Equal(t, "你好", pair.Prompt)
	assert.Equal(t, "回答A", pair.Chosen)
	assert.Equal(t, "回答B", pair.Rejected)
	assert.Equal(t, "gpt-3.5-turbo", pair.Metadata.Model)
}

func TestRenderTrainingPairsJSONLEmpty(t *testing.T) {
	content, err := RenderTrainingPairsJSONL(nil)
	require.NoError(t, err)
	assert.Empty(t, content)
}

func TestRenderTrainingPairsCSV(t *testing.T) {
	content, err := RenderTrainingPairsCSV(samplePairs())
	require.NoError(t, err)

	text := string(content)
	// 带UTF-8 BOM
	assert.True(t, strings.HasPrefix(text, "\xEF\xBB\xBF"))
	assert.Contains(t, text, "prompt,chosen,rejected")
	assert.Contains(t, text, "你好")
	assert.Contains(t, text, "0.7")

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	// 表头加两行数据
	assert.Len(t, lines, 3)
}
