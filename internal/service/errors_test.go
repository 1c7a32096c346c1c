package service

import (
	"errors"
	"strings"
	"testing"

	"pref-go/pkg/llm_caller"

	"github.com/stretchr/testify/assert"
)

// 上游错误按顺序做子串匹配分类
func TestClassifyGenerationError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "无效密钥",
			err:      errors.New("Incorrect API key provided: sk-xxx"),
			expected: "Invalid API key. Please check your OpenAI API key configuration.",
		},
		{
			name:     "未授权",
			err:      errors.New("401 Unauthorized"),
			expected: "Invalid API key. Please check your OpenAI API key configuration.",
		},
		{
			name:     "配额不足",
			err:      errors.New("You exceeded your current quota, please check your plan and billing details"),
			expected: "OpenAI API quota exceeded. Please check your billing status.",
		},
		{
			name:     "限流",
			err:      errors.New("Rate limit reached for requests"),
			expected: "Rate limit exceeded. Please try again in a moment.",
		},
		{
			name:     "模型不可用",
			err:      errors.New("The model `gpt-5` does not exist"),
			expected: "Model error: gpt-3.5-turbo may not be available.",
		},
		{
			name:     "其他错误",
			err:      errors.New("connection refused"),
			expected: "Error generating responses: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyGenerationError(tt.err, "gpt-3.5-turbo"))
		})
	}
}

// 认证关键字优先于model关键字（规则顺序生效）
func TestClassifyGenerationErrorOrder(t *testing.T) {
	err := errors.New("authentication failed for model gpt-4")
	assert.Equal(t,
		"Invalid API key. Please check your OpenAI API key configuration.",
		ClassifyGenerationError(err, "gpt-4"))
}

func TestClassifyGenerationErrorMissingKey(t *testing.T) {
	message := ClassifyGenerationError(llm_caller.ErrAPIKeyNotConfigured, "gpt-3.5-turbo")
	assert.Equal(t, llm_caller.ErrAPIKeyNotConfigured.Error(), message)
}

// 通用错误截断到100个字符
func TestClassifyGenerationErrorTruncates(t *testing.T) {
	err := errors.New(strings.Repeat("x", 300))
	message := ClassifyGenerationError(err, "gpt-3.5-turbo")
	assert.Equal(t, "Error generating responses: "+strings.Repeat("x", 100), message)
}
