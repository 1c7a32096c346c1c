package handler

import (
	"errors"
	"net/http"
	"strconv"

	"pref-go/internal/dto"
	"pref-go/internal/service"
	"pref-go/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// PromptHandler 偏好记录处理器
type PromptHandler struct {
	promptService *service.PromptService
	logger        *logrus.Logger
}

// NewPromptHandler 创建偏好记录处理器
func NewPromptHandler(promptService *service.PromptService, logger *logrus.Logger) *PromptHandler {
	return &PromptHandler{
		promptService: promptService,
		logger:        logger,
	}
}

// Generate 为提示词生成A/B两份回答
func (h *PromptHandler) Generate(c *gin.Context) {
	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, utils.FormatBindingError(err))
		return
	}

	resp, err := h.promptService.Generate(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrStore) {
			h.logger.WithError(err).Error("保存生成记录失败")
			utils.InternalError(c, "保存生成记录失败")
			return
		}

		message := service.ClassifyGenerationError(err, h.promptService.ResolveModel(req.ModelName))
		h.logger.WithError(err).Error("生成回答失败")
		utils.InternalError(c, message)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// RecordPreference 记录人工偏好
func (h *PromptHandler) RecordPreference(c *gin.Context) {
	var req dto.RecordPreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, utils.FormatBindingError(err))
		return
	}

	resp, err := h.promptService.RecordPreference(c.Param("id"), req.Preference)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			utils.NotFound(c, "记录不存在")
			return
		}
		h.logger.WithError(err).Error("记录偏好失败")
		utils.InternalError(c, "记录偏好失败")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ExportTrainingData 导出训练数据
func (h *PromptHandler) ExportTrainingData(c *gin.Context) {
	resp, err := h.promptService.ExportTrainingData()
	if err != nil {
		h.logger.WithError(err).Error("导出训练数据失败")
		utils.InternalError(c, "导出训练数据失败")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DownloadTrainingData 下载训练数据文件（jsonl或csv）
func (h *PromptHandler) DownloadTrainingData(c *gin.Context) {
	format := c.DefaultQuery("format", "jsonl")
	if format != "jsonl" && format != "csv" {
		utils.BadRequest(c, "format必须是jsonl或csv")
		return
	}

	content, filename, err := h.promptService.ExportTrainingFile(format)
	if err != nil {
		h.logger.WithError(err).Error("导出训练数据文件失败")
		utils.InternalError(c, "导出训练数据文件失败")
		return
	}

	contentType := "application/jsonl"
	if format == "csv" {
		contentType = "text/csv"
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, content)
}

// Stats 统计记录分布
func (h *PromptHandler) Stats(c *gin.Context) {
	resp, err := h.promptService.Stats()
	if err != nil {
		h.logger.WithError(err).Error("统计失败")
		utils.InternalError(c, "统计失败")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetPrompt 获取单条记录
func (h *PromptHandler) GetPrompt(c *gin.Context) {
	resp, err := h.promptService.Get(c.Param("id"))
	if err != nil {
		utils.NotFound(c, "记录不存在")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListPrompts 分页获取记录列表
func (h *PromptHandler) ListPrompts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	responses, total, err := h.promptService.List(page, perPage)
	if err != nil {
		h.logger.WithError(err).Error("获取记录列表失败")
		utils.InternalError(c, "获取记录列表失败")
		return
	}

	utils.PaginatedResponse(c, responses, total, page, perPage)
}

// DeletePrompt 删除记录
func (h *PromptHandler) DeletePrompt(c *gin.Context) {
	if err := h.promptService.Delete(c.Param("id")); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			utils.NotFound(c, "记录不存在")
			return
		}
		h.logger.WithError(err).Error("删除记录失败")
		utils.InternalError(c, "删除记录失败")
		return
	}

	utils.SuccessWithMessage(c, "删除成功", gin.H{"success": true})
}
