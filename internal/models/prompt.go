package models

import (
	"time"
)

// 偏好取值
const (
	PreferenceA   = "A"
	PreferenceB   = "B"
	PreferenceTie = "TIE"
)

// Prompt 一次成对生成的记录：一个提示词、两份回答、一个可选的人工偏好
type Prompt struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	PromptText string `gorm:"type:text;not null" json:"prompt_text"`
	ResponseA  string `gorm:"type:text;not null" json:"response_a"`
	ResponseB  string `gorm:"type:text;not null" json:"response_b"`

	ModelName string `gorm:"size:100;default:'gpt-3.5-turbo'" json:"model_name"`
	// Temperature 两侧温度的均值，创建时冗余存储，便于展示和过滤
	Temperature float64 `gorm:"default:0.7" json:"temperature"`

	TemperatureA      float64 `gorm:"default:0.7" json:"temperature_a"`
	MaxTokensA        int     `gorm:"default:500" json:"max_tokens_a"`
	TopPA             float64 `gorm:"default:1.0" json:"top_p_a"`
	FrequencyPenaltyA float64 `gorm:"default:0.0" json:"frequency_penalty_a"`
	PresencePenaltyA  float64 `gorm:"default:0.0" json:"presence_penalty_a"`

	TemperatureB      float64 `gorm:"default:0.9" json:"temperature_b"`
	MaxTokensB        int     `gorm:"default:500" json:"max_tokens_b"`
	TopPB             float64 `gorm:"default:1.0" json:"top_p_b"`
	FrequencyPenaltyB float64 `gorm:"default:0.0" json:"frequency_penalty_b"`
	PresencePenaltyB  float64 `gorm:"default:0.0" json:"presence_penalty_b"`

	ResponseAGeneratedAt time.Time `json:"response_a_generated_at"`
	ResponseBGeneratedAt time.Time `json:"response_b_generated_at"`

	// Preference 为空表示待评判；A/B/TIE 表示已评判
	Preference           *string    `gorm:"size:10;index" json:"preference"`
	PreferenceRecordedAt *time.Time `json:"preference_recorded_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 指定表名
func (Prompt) TableName() string {
	return "prompts"
}

// IsJudged 是否已记录偏好
func (p *Prompt) IsJudged() bool {
	return p.Preference != nil
}

// ChosenRejected 根据偏好返回被选中和被拒绝的回答；
// 未评判或平局时返回 false
func (p *Prompt) ChosenRejected() (chosen, rejected string, ok bool) {
	if p.Preference == nil {
		return "", "", false
	}
	switch *p.Preference {
	case PreferenceA:
		return p.ResponseA, p.ResponseB, true
	case PreferenceB:
		return p.ResponseB, p.ResponseA, true
	default:
		return "", "", false
	}
}
