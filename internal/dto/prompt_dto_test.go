package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// 省略全部参数时使用默认值，两侧仅温度不同
func TestParamsDefaults(t *testing.T) {
	req := &GenerateRequest{Prompt: "Say hi"}

	paramsA := req.ParamsA()
	assert.Equal(t, 0.7, paramsA.Temperature)
	assert.Equal(t, 500, paramsA.MaxTokens)
	assert.Equal(t, 1.0, paramsA.TopP)
	assert.Equal(t, 0.0, paramsA.FrequencyPenalty)
	assert.Equal(t, 0.0, paramsA.PresencePenalty)

	paramsB := req.ParamsB()
	assert.Equal(t, 0.9, paramsB.Temperature)
	assert.Equal(t, 500, paramsB.MaxTokens)
	assert.Equal(t, 1.0, paramsB.TopP)
}

// 显式传0不会被默认值覆盖
func TestParamsExplicitZero(t *testing.T) {
	zero := 0.0
	req := &GenerateRequest{
		Prompt:       "Say hi",
		TemperatureA: &zero,
		TopPB:        &zero,
	}

	assert.Equal(t, 0.0, req.ParamsA().Temperature)
	assert.Equal(t, 0.0, req.ParamsB().TopP)
	// 未指定的字段仍用默认值
	assert.Equal(t, 0.9, req.ParamsB().Temperature)
	assert.Equal(t, 1.0, req.ParamsA().TopP)
}

func TestParamsOverride(t *testing.T) {
	temperature := 1.5
	maxTokens := 64
	penalty := -1.0
	req := &GenerateRequest{
		Prompt:            "Say hi",
		TemperatureA:      &temperature,
		MaxTokensA:        &maxTokens,
		FrequencyPenaltyB: &penalty,
	}

	paramsA := req.ParamsA()
	assert.Equal(t, 1.5, paramsA.Temperature)
	assert.Equal(t, 64, paramsA.MaxTokens)

	paramsB := req.ParamsB()
	assert.Equal(t, -1.0, paramsB.FrequencyPenalty)
	assert.Equal(t, 500, paramsB.MaxTokens)
}
