package repository

import (
	"time"

	"pref-go/internal/models"

	"gorm.io/gorm"
)

// PromptRepository 偏好记录数据访问层
type PromptRepository struct {
	db *gorm.DB
}

// NewPromptRepository 创建偏好记录Repository
func NewPromptRepository(db *gorm.DB) *PromptRepository {
	return &PromptRepository{db: db}
}

// Create 创建记录
func (r *PromptRepository) Create(prompt *models.Prompt) error {
	return r.db.Create(prompt).Error
}

// GetByID 根据ID获取记录
func (r *PromptRepository) GetByID(id string) (*models.Prompt, error) {
	var prompt models.Prompt
	err := r.db.First(&prompt, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &prompt, nil
}

// UpdatePreference 原子更新偏好字段，返回是否命中记录。
// 单条UPDATE语句同时写入preference、preference_recorded_at和updated_at，
// 不存在的ID不会创建记录
func (r *PromptRepository) UpdatePreference(id string, preference string, now time.Time) (bool, error) {
	result := r.db.Model(&models.Prompt{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"preference":             preference,
			"preference_recorded_at": now,
			"updated_at":             now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListJudged 获取已评判且非平局的记录（按创建时间升序，导出顺序稳定）
func (r *PromptRepository) ListJudged() ([]models.Prompt, error) {
	var prompts []models.Prompt
	err := r.db.
		Where("preference IN ?", []string{models.PreferenceA, models.PreferenceB}).
		Order("created_at ASC").
		Find(&prompts).Error
	return prompts, err
}

// List 获取记录列表（按创建时间倒序）
func (r *PromptRepository) List(offset, limit int) ([]models.Prompt, int64, error) {
	var prompts []models.Prompt
	var total int64

	if err := r.db.Model(&models.Prompt{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&prompts).Error
	return prompts, total, err
}

// Delete 删除记录，返回是否命中
func (r *PromptRepository) Delete(id string) (bool, error) {
	result := r.db.Delete(&models.Prompt{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Count 记录总数
func (r *PromptRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Prompt{}).Count(&count).Error
	return count, err
}

// CountWithPreference 已评判记录数
func (r *PromptRepository) CountWithPreference() (int64, error) {
	var count int64
	err := r.db.Model(&models.Prompt{}).Where("preference IS NOT NULL").Count(&count).Error
	return count, err
}

// CountByPreference 指定偏好的记录数
func (r *PromptRepository) CountByPreference(preference string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Prompt{}).Where("preference = ?", preference).Count(&count).Error
	return count, err
}
