package utils

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"

	"pref-go/internal/dto"
)

// RenderTrainingPairsJSONL 将训练数据对渲染为JSONL内容，每行一个对象
func RenderTrainingPairsJSONL(pairs []dto.TrainingPair) ([]byte, error) {
	var buf bytes.Buffer

	for i := range pairs {
		line, err := json.Marshal(&pairs[i])
		if err != nil {
			return nil, err
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}

	return buf.Bytes(), nil
}

// RenderTrainingPairsCSV 将训练数据对渲染为CSV内容。
// 带UTF-8 BOM，保证Excel正确识别中文
func RenderTrainingPairsCSV(pairs []dto.TrainingPair) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("\xEF\xBB\xBF")

	writer := csv.NewWriter(&buf)
	header := []string{
		"prompt", "chosen", "rejected",
		"model", "temperature", "temperature_a", "temperature_b",
		"created_at", "preference_recorded_at",
	}
	if err := writer.Write(header); err != nil {
		return nil, err
	}

	for i := range pairs {
		pair := &pairs[i]
		recordedAt := ""
		if pair.Metadata.PreferenceRecordedAt != nil {
			recordedAt = *pair.Metadata.PreferenceRecordedAt
		}

		row := []string{
			pair.Prompt,
			pair.Chosen,
			pair.Rejected,
			pair.Metadata.Model,
			strconv.FormatFloat(pair.Metadata.Temperature, 'f', -1, 64),
			strconv.FormatFloat(pair.Metadata.TemperatureA, 'f', -1, 64),
			strconv.FormatFloat(pair.Metadata.TemperatureB, 'f', -1, 64),
			pair.Metadata.CreatedAt,
			recordedAt,
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
