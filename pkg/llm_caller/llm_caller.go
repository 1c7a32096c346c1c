package llm_caller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"pref-go/internal/dto"
)

// ErrAPIKeyNotConfigured 未配置API密钥。错误文本直接返回给客户端，
// 与原接口的提示保持一致
var ErrAPIKeyNotConfigured = errors.New("OpenAI API key is not configured. Please set OPENAI_API_KEY environment variable.")

// APIError 上游接口返回的错误，保留状态码和原始响应体供上层分类
type APIError struct {
	StatusCode int
	Body       string
}

// Error 实现error接口
func (e *APIError) Error() string {
	return fmt.Sprintf("API返回错误: status=%d, body=%s", e.StatusCode, e.Body)
}

// Caller 补全服务调用客户端
type Caller struct {
	client     *http.Client
	apiBase    string
	apiKey     string
	maxRetries int
}

// NewCaller 创建补全服务调用客户端
func NewCaller(apiBase, apiKey string, timeout time.Duration, maxRetries int) *Caller {
	return &Caller{
		client: &http.Client{
			Timeout: timeout,
		},
		apiBase:    apiBase,
		apiKey:     apiKey,
		maxRetries: maxRetries,
	}
}

// Complete 执行一次补全调用，返回第一个choice的文本。
// 瞬时失败（网络错误、429、5xx）在maxRetries次内重试
func (c *Caller) Complete(ctx context.Context, prompt, model string, params dto.SamplingParams) (string, error) {
	if c.apiKey == "" {
		return "", ErrAPIKeyNotConfigured
	}

	reqBody := dto.ChatCompletionRequest{
		Model: model,
		Messages: []dto.Message{
			{Role: "user", Content: prompt},
		},
		Temperature:      params.Temperature,
		MaxTokens:        params.MaxTokens,
		TopP:             params.TopP,
		FrequencyPenalty: params.FrequencyPenalty,
		PresencePenalty:  params.PresencePenalty,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("序列化请求失败: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// 简单退避后重试
			select {
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		text, retryable, err := c.doOnce(ctx, jsonBody)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !retryable {
			return "", err
		}
	}

	return "", lastErr
}

// doOnce 发送一次补全请求
func (c *Caller) doOnce(ctx context.Context, jsonBody []byte) (text string, retryable bool, err error) {
	url := c.apiBase + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", false, fmt.Errorf("创建请求失败: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", true, fmt.Errorf("请求失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, fmt.Errorf("读取响应失败: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(body)}
		// 429和5xx视为瞬时失败，其余状态码直接返回
		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return "", retryable, apiErr
	}

	var result dto.ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", false, fmt.Errorf("解析响应失败: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", false, fmt.Errorf("模型未返回任何choice")
	}

	return result.Choices[0].Message.Content, false, nil
}

// CompletePair 对同一提示词顺序执行两次补全（A侧在前）。
// A侧失败时不再调用B侧，两侧都成功才返回，保证上层不会落半条记录
func (c *Caller) CompletePair(ctx context.Context, prompt, model string, paramsA, paramsB dto.SamplingParams) (string, string, error) {
	responseA, err := c.Complete(ctx, prompt, model, paramsA)
	if err != nil {
		return "", "", err
	}

	responseB, err := c.Complete(ctx, prompt, model, paramsB)
	if err != nil {
		return "", "", err
	}

	return responseA, responseB, nil
}
