package service

import (
	"errors"
	"fmt"
	"strings"

	"pref-go/pkg/llm_caller"
)

// ErrNotFound 记录不存在
var ErrNotFound = errors.New("记录不存在")

// ErrStore 存储层失败
var ErrStore = errors.New("存储服务异常")

// generationErrorRule 上游错误分类规则：按顺序做大小写不敏感的子串匹配，
// 首个命中的规则生效。上游错误体系不受本服务控制，只用于生成可读提示，
// 所以保持为规则列表而不是错误类型体系
type generationErrorRule struct {
	keywords []string
	message  string
}

var generationErrorRules = []generationErrorRule{
	{[]string{"authentication", "api key", "unauthorized"},
		"Invalid API key. Please check your OpenAI API key configuration."},
	{[]string{"quota", "billing"},
		"OpenAI API quota exceeded. Please check your billing status."},
	{[]string{"rate limit"},
		"Rate limit exceeded. Please try again in a moment."},
}

// ClassifyGenerationError 将生成失败映射为对外的错误提示
func ClassifyGenerationError(err error, modelName string) string {
	// 缺失密钥属于配置错误，原样返回提示
	if errors.Is(err, llm_caller.ErrAPIKeyNotConfigured) {
		return err.Error()
	}

	raw := err.Error()
	lower := strings.ToLower(raw)

	for _, rule := range generationErrorRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.message
			}
		}
	}

	if strings.Contains(lower, "model") {
		return fmt.Sprintf("Model error: %s may not be available.", modelName)
	}

	if len(raw) > 100 {
		raw = raw[:100]
	}
	return "Error generating responses: " + raw
}
