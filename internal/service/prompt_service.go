package service

import (
	"context"
	"fmt"
	"time"

	"pref-go/internal/dto"
	"pref-go/internal/models"
	"pref-go/internal/repository"
	"pref-go/internal/utils"

	"github.com/google/uuid"
)

// PairCompleter 成对补全客户端
type PairCompleter interface {
	CompletePair(ctx context.Context, prompt, model string, paramsA, paramsB dto.SamplingParams) (string, string, error)
}

// PromptService 偏好记录服务：生成、评判、导出、统计
type PromptService struct {
	promptRepo   *repository.PromptRepository
	caller       PairCompleter
	defaultModel string
}

// NewPromptService 创建偏好记录服务
func NewPromptService(promptRepo *repository.PromptRepository, caller PairCompleter, defaultModel string) *PromptService {
	return &PromptService{
		promptRepo:   promptRepo,
		caller:       caller,
		defaultModel: defaultModel,
	}
}

// ResolveModel 解析请求使用的模型名
func (s *PromptService) ResolveModel(modelName string) string {
	if modelName == "" {
		return s.defaultModel
	}
	return modelName
}

// Generate 为一个提示词生成A/B两份回答并落库。
// 两次调用顺序执行，任意一次失败则整体失败，不写入任何记录
func (s *PromptService) Generate(ctx context.Context, req *dto.GenerateRequest) (*dto.GenerateResponse, error) {
	modelName := s.ResolveModel(req.ModelName)
	paramsA := req.ParamsA()
	paramsB := req.ParamsB()

	responseA, responseB, err := s.caller.CompletePair(ctx, req.Prompt, modelName, paramsA, paramsB)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	prompt := &models.Prompt{
		ID:         uuid.NewString(),
		PromptText: req.Prompt,
		ResponseA:  responseA,
		ResponseB:  responseB,
		ModelName:  modelName,
		// 冗余存储两侧温度均值
		Temperature: (paramsA.Temperature + paramsB.Temperature) / 2,

		TemperatureA:      paramsA.Temperature,
		MaxTokensA:        paramsA.MaxTokens,
		TopPA:             paramsA.TopP,
		FrequencyPenaltyA: paramsA.FrequencyPenalty,
		PresencePenaltyA:  paramsA.PresencePenalty,

		TemperatureB:      paramsB.Temperature,
		MaxTokensB:        paramsB.MaxTokens,
		TopPB:             paramsB.TopP,
		FrequencyPenaltyB: paramsB.FrequencyPenalty,
		PresencePenaltyB:  paramsB.PresencePenalty,

		ResponseAGeneratedAt: now,
		ResponseBGeneratedAt: now,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.promptRepo.Create(prompt); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	return &dto.GenerateResponse{
		ID:           prompt.ID,
		Prompt:       prompt.PromptText,
		ResponseA:    prompt.ResponseA,
		ResponseB:    prompt.ResponseB,
		ModelName:    prompt.ModelName,
		Temperature:  prompt.Temperature,
		TemperatureA: prompt.TemperatureA,
		TemperatureB: prompt.TemperatureB,
		CreatedAt:    prompt.CreatedAt.Format(time.RFC3339),
	}, nil
}

// RecordPreference 记录人工偏好。重复评判会直接覆盖（最后写入者生效）
func (s *PromptService) RecordPreference(id string, preference string) (*dto.RecordPreferenceResponse, error) {
	// 非法格式的ID等同于不存在，不暴露为服务器错误
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	now := time.Now().UTC()
	matched, err := s.promptRepo.UpdatePreference(id, preference, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	if !matched {
		return nil, ErrNotFound
	}

	return &dto.RecordPreferenceResponse{
		ID:                   id,
		Preference:           preference,
		PreferenceRecordedAt: now.Format(time.RFC3339),
	}, nil
}

// ExportTrainingData 导出训练数据对。
// 仅偏好为A或B的记录参与导出，平局和未评判记录不导出
func (s *PromptService) ExportTrainingData() (*dto.TrainingDataResponse, error) {
	prompts, err := s.promptRepo.ListJudged()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	pairs := make([]dto.TrainingPair, 0, len(prompts))
	for i := range prompts {
		if pair, ok := buildTrainingPair(&prompts[i]); ok {
			pairs = append(pairs, pair)
		}
	}

	return &dto.TrainingDataResponse{
		Count: len(pairs),
		Data:  pairs,
	}, nil
}

// ExportTrainingFile 将训练数据渲染为可下载文件（jsonl或csv，默认jsonl）
func (s *PromptService) ExportTrainingFile(format string) ([]byte, string, error) {
	export, err := s.ExportTrainingData()
	if err != nil {
		return nil, "", err
	}

	if format == "csv" {
		content, err := utils.RenderTrainingPairsCSV(export.Data)
		if err != nil {
			return nil, "", err
		}
		return content, "training_data.csv", nil
	}

	content, err := utils.RenderTrainingPairsJSONL(export.Data)
	if err != nil {
		return nil, "", err
	}
	return content, "training_data.jsonl", nil
}

// Stats 统计记录分布
func (s *PromptService) Stats() (*dto.StatsResponse, error) {
	total, err := s.promptRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	withPreference, err := s.promptRepo.CountWithPreference()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	preferenceA, err := s.promptRepo.CountByPreference(models.PreferenceA)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	preferenceB, err := s.promptRepo.CountByPreference(models.PreferenceB)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	ties, err := s.promptRepo.CountByPreference(models.PreferenceTie)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	return &dto.StatsResponse{
		Total:             total,
		WithPreference:    withPreference,
		WithoutPreference: total - withPreference,
		PreferenceA:       preferenceA,
		PreferenceB:       preferenceB,
		Ties:              ties,
		TrainingPairs:     preferenceA + preferenceB,
	}, nil
}

// Get 获取单条记录
func (s *PromptService) Get(id string) (*dto.PromptResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	prompt, err := s.promptRepo.GetByID(id)
	if err != nil {
		return nil, ErrNotFound
	}

	resp := toPromptResponse(prompt)
	return &resp, nil
}

// List 分页获取记录列表（创建时间倒序）
func (s *PromptService) List(page, perPage int) ([]dto.PromptResponse, int64, error) {
	offset := (page - 1) * perPage
	prompts, total, err := s.promptRepo.List(offset, perPage)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrStore, err)
	}

	responses := make([]dto.PromptResponse, len(prompts))
	for i := range prompts {
		responses[i] = toPromptResponse(&prompts[i])
	}
	return responses, total, nil
}

// Delete 删除记录
func (s *PromptService) Delete(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}

	matched, err := s.promptRepo.Delete(id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}
	if !matched {
		return ErrNotFound
	}
	return nil
}

// buildTrainingPair 从已评判记录构建训练数据对
func buildTrainingPair(prompt *models.Prompt) (dto.TrainingPair, bool) {
	chosen, rejected, ok := prompt.ChosenRejected()
	if !ok {
		return dto.TrainingPair{}, false
	}

	var recordedAt *string
	if prompt.PreferenceRecordedAt != nil {
		formatted := prompt.PreferenceRecordedAt.Format(time.RFC3339)
		recordedAt = &formatted
	}

	return dto.TrainingPair{
		Prompt:   prompt.PromptText,
		Chosen:   chosen,
		Rejected: rejected,
		Metadata: dto.TrainingPairMetadata{
			Model:                prompt.ModelName,
			Temperature:          prompt.Temperature,
			TemperatureA:         prompt.TemperatureA,
			TemperatureB:         prompt.TemperatureB,
			CreatedAt:            prompt.CreatedAt.Format(time.RFC3339),
			PreferenceRecordedAt: recordedAt,
		},
	}, true
}

// toPromptResponse 转换为记录完整视图
func toPromptResponse(prompt *models.Prompt) dto.PromptResponse {
	var recordedAt *string
	if prompt.PreferenceRecordedAt != nil {
		formatted := prompt.PreferenceRecordedAt.Format(time.RFC3339)
		recordedAt = &formatted
	}

	return dto.PromptResponse{
		ID:                   prompt.ID,
		PromptText:           prompt.PromptText,
		ResponseA:            prompt.ResponseA,
		ResponseB:            prompt.ResponseB,
		ModelName:            prompt.ModelName,
		Temperature:          prompt.Temperature,
		TemperatureA:         prompt.TemperatureA,
		MaxTokensA:           prompt.MaxTokensA,
		TopPA:                prompt.TopPA,
		FrequencyPenaltyA:    prompt.FrequencyPenaltyA,
		PresencePenaltyA:     prompt.PresencePenaltyA,
		TemperatureB:         prompt.TemperatureB,
		MaxTokensB:           prompt.MaxTokensB,
		TopPB:                prompt.TopPB,
		FrequencyPenaltyB:    prompt.FrequencyPenaltyB,
		PresencePenaltyB:     prompt.PresencePenaltyB,
		Preference:           prompt.Preference,
		PreferenceRecordedAt: recordedAt,
		CreatedAt:            prompt.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            prompt.UpdatedAt.Format(time.RFC3339),
	}
}
