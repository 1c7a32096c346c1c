package dto

// 生成参数默认值（A侧/B侧除温度外一致）
const (
	DefaultTemperatureA     = 0.7
	DefaultTemperatureB     = 0.9
	DefaultMaxTokens        = 500
	DefaultTopP             = 1.0
	DefaultFrequencyPenalty = 0.0
	DefaultPresencePenalty  = 0.0
)

// SamplingParams 单侧采样参数
type SamplingParams struct {
	Temperature      float64 `json:"temperature"`
	MaxTokens        int     `json:"max_tokens"`
	TopP             float64 `json:"top_p"`
	FrequencyPenalty float64 `json:"frequency_penalty"`
	PresencePenalty  float64 `json:"presence_penalty"`
}

// GenerateRequest 成对生成请求。采样参数均可省略，
// 省略时使用默认值；边界在绑定阶段校验，越界直接400
type GenerateRequest struct {
	Prompt    string `json:"prompt" binding:"required"`
	ModelName string `json:"model_name"`

	TemperatureA      *float64 `json:"temperature_a" binding:"omitempty,gte=0,lte=2"`
	MaxTokensA        *int     `json:"max_tokens_a" binding:"omitempty,gte=10,lte=2000"`
	TopPA             *float64 `json:"top_p_a" binding:"omitempty,gte=0,lte=1"`
	FrequencyPenaltyA *float64 `json:"frequency_penalty_a" binding:"omitempty,gte=-2,lte=2"`
	PresencePenaltyA  *float64 `json:"presence_penalty_a" binding:"omitempty,gte=-2,lte=2"`

	TemperatureB      *float64 `json:"temperature_b" binding:"omitempty,gte=0,lte=2"`
	MaxTokensB        *int     `json:"max_tokens_b" binding:"omitempty,gte=10,lte=2000"`
	TopPB             *float64 `json:"top_p_b" binding:"omitempty,gte=0,lte=1"`
	FrequencyPenaltyB *float64 `json:"frequency_penalty_b" binding:"omitempty,gte=-2,lte=2"`
	PresencePenaltyB  *float64 `json:"presence_penalty_b" binding:"omitempty,gte=-2,lte=2"`
}

// ParamsA 解析A侧采样参数（应用默认值）
func (r *GenerateRequest) ParamsA() SamplingParams {
	return SamplingParams{
		Temperature:      floatOrDefault(r.TemperatureA, DefaultTemperatureA),
		MaxTokens:        intOrDefault(r.MaxTokensA, DefaultMaxTokens),
		TopP:             floatOrDefault(r.TopPA, DefaultTopP),
		FrequencyPenalty: floatOrDefault(r.FrequencyPenaltyA, DefaultFrequencyPenalty),
		PresencePenalty:  floatOrDefault(r.PresencePenaltyA, DefaultPresencePenalty),
	}
}

// ParamsB 解析B侧采样参数（应用默认值）
func (r *GenerateRequest) ParamsB() SamplingParams {
	return SamplingParams{
		Temperature:      floatOrDefault(r.TemperatureB, DefaultTemperatureB),
		MaxTokens:        intOrDefault(r.MaxTokensB, DefaultMaxTokens),
		TopP:             floatOrDefault(r.TopPB, DefaultTopP),
		FrequencyPenalty: floatOrDefault(r.FrequencyPenaltyB, DefaultFrequencyPenalty),
		PresencePenalty:  floatOrDefault(r.PresencePenaltyB, DefaultPresencePenalty),
	}
}

func floatOrDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func intOrDefault(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

// GenerateResponse 成对生成响应
type GenerateResponse struct {
	ID           string  `json:"id"`
	Prompt       string  `json:"prompt"`
	ResponseA    string  `json:"response_a"`
	ResponseB    string  `json:"response_b"`
	ModelName    string  `json:"model_name"`
	Temperature  float64 `json:"temperature"`
	TemperatureA float64 `json:"temperature_a"`
	TemperatureB float64 `json:"temperature_b"`
	CreatedAt    string  `json:"created_at"`
}

// RecordPreferenceRequest 记录偏好请求
type RecordPreferenceRequest struct {
	Preference string `json:"preference" binding:"required,oneof=A B TIE"`
}

// RecordPreferenceResponse 记录偏好响应
type RecordPreferenceResponse struct {
	ID                   string `json:"id"`
	Preference           string `json:"preference"`
	PreferenceRecordedAt string `json:"preference_recorded_at"`
}

// PromptResponse 记录完整视图
type PromptResponse struct {
	ID                   string  `json:"id"`
	PromptText           string  `json:"prompt_text"`
	ResponseA            string  `json:"response_a"`
	ResponseB            string  `json:"response_b"`
	ModelName            string  `json:"model_name"`
	Temperature          float64 `json:"temperature"`
	TemperatureA         float64 `json:"temperature_a"`
	MaxTokensA           int     `json:"max_tokens_a"`
	TopPA                float64 `json:"top_p_a"`
	FrequencyPenaltyA    float64 `json:"frequency_penalty_a"`
	PresencePenaltyA     float64 `json:"presence_penalty_a"`
	TemperatureB         float64 `json:"temperature_b"`
	MaxTokensB           int     `json:"max_tokens_b"`
	TopPB                float64 `json:"top_p_b"`
	FrequencyPenaltyB    float64 `json:"frequency_penalty_b"`
	PresencePenaltyB     float64 `json:"presence_penalty_b"`
	Preference           *string `json:"preference"`
	PreferenceRecordedAt *string `json:"preference_recorded_at"`
	CreatedAt            string  `json:"created_at"`
	UpdatedAt            string  `json:"updated_at"`
}

// TrainingPairMetadata 训练数据对的元信息
type TrainingPairMetadata struct {
	Model                string  `json:"model"`
	Temperature          float64 `json:"temperature"`
	TemperatureA         float64 `json:"temperature_a"`
	TemperatureB         float64 `json:"temperature_b"`
	CreatedAt            string  `json:"created_at"`
	PreferenceRecordedAt *string `json:"preference_recorded_at"`
}

// TrainingPair 训练数据对
type TrainingPair struct {
	Prompt   string               `json:"prompt"`
	Chosen   string               `json:"chosen"`
	Rejected string               `json:"rejected"`
	Metadata TrainingPairMetadata `json:"metadata"`
}

// TrainingDataResponse 训练数据导出响应
type TrainingDataResponse struct {
	Count int            `json:"count"`
	Data  []TrainingPair `json:"data"`
}

// StatsResponse 统计响应
type StatsResponse struct {
	Total             int64 `json:"total"`
	WithPreference    int64 `json:"with_preference"`
	WithoutPreference int64 `json:"without_preference"`
	PreferenceA       int64 `json:"preference_a"`
	PreferenceB       int64 `json:"preference_b"`
	Ties              int64 `json:"ties"`
	TrainingPairs     int64 `json:"training_pairs"`
}
