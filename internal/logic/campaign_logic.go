package logic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sasamaylina/responsi-paw/internal/logger"
	"github.com/sasamaylina/responsi-paw/internal/model"
	"github.com/sasamaylina/responsi-paw/internal/storage"
	"gorm.io/gorm"
)

// CampaignLogic 募捐活动业务逻辑
type CampaignLogic struct {
	db    *gorm.DB
	store storage.ImageStore
}

// NewCampaignLogic 创建活动业务逻辑
func NewCampaignLogic(db *gorm.DB, store storage.ImageStore) *CampaignLogic {
	return &CampaignLogic{db: db, store: store}
}

// CreateCampaign 创建活动
func (p *CampaignLogic) CreateCampaign(campaign *model.CampaignModel) error {
	if err := p.validateCampaign(campaign); err != nil {
		return err
	}

	// 已筹金额从0开始
	campaign.CollectedAmount = 0

	if err := p.db.Create(campaign).Error; err != nil {
		return fmt.Errorf("创建活动失败: %w", err)
	}
	return nil
}

// GetCampaigns 获取活动列表，按创建时间倒序
func (p *CampaignLogic) GetCampaigns(activeOnly bool) ([]model.CampaignModel, error) {
	var campaigns []model.CampaignModel
	query := p.db.Order("created_at DESC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&campaigns).Error; err != nil {
		return nil, fmt.Errorf("获取活动列表失败: %w", err)
	}
	return campaigns, nil
}

// GetCampaign 获取活动详情
func (p *CampaignLogic) GetCampaign(id int64) (*model.CampaignModel, error) {
	var campaign model.CampaignModel
	if err := p.db.First(&campaign, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("获取活动详情失败: %w", err)
	}
	return &campaign, nil
}

// UpdateCampaign 更新活动字段。更换封面图片时，新图保存成功后释放旧图。
func (p *CampaignLogic) UpdateCampaign(id int64, updates map[string]interface{}) (*model.CampaignModel, error) {
	campaign, err := p.GetCampaign(id)
	if err != nil {
		return nil, err
	}

	if title, ok := updates["title"].(string); ok && strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: 活动标题不能为空", ErrValidation)
	}
	if target, ok := updates["target_amount"].(int64); ok && target <= 0 {
		return nil, fmt.Errorf("%w: 目标金额必须大于0", ErrValidation)
	}

	oldImage := campaign.Image
	if err := p.db.Model(campaign).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("更新活动失败: %w", err)
	}

	// 旧图已被替换，释放文件
	if newImage, ok := updates["image"].(string); ok && oldImage != "" && newImage != oldImage {
		if err := p.store.Delete(oldImage); err != nil {
			logger.Warn("释放活动 %d 的旧图片 %s 失败: %v", id, oldImage, err)
		}
	}

	return p.GetCampaign(id)
}

// DeleteCampaign 删除活动及其全部捐款记录。
// 捐款记录和活动在同一个事务内删除，活动连同已筹金额一起
// 丢弃，无需回填；事务提交后再释放封面图片。
func (p *CampaignLogic) DeleteCampaign(id int64) error {
	campaign, err := p.GetCampaign(id)
	if err != nil {
		return err
	}

	err = p.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("campaign_id = ?", id).Delete(&model.DonationModel{}).Error; err != nil {
			return fmt.Errorf("删除活动捐款记录失败: %w", err)
		}
		if err := tx.Delete(&model.CampaignModel{}, id).Error; err != nil {
			return fmt.Errorf("删除活动失败: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if campaign.Image != "" {
		if err := p.store.Delete(campaign.Image); err != nil {
			logger.Warn("释放活动 %d 的图片 %s 失败: %v", id, campaign.Image, err)
		}
	}

	return nil
}

// validateCampaign 校验活动数据
func (p *CampaignLogic) validateCampaign(campaign *model.CampaignModel) error {
	if strings.TrimSpace(campaign.Title) == "" {
		return fmt.Errorf("%w: 活动标题不能为空", ErrValidation)
	}
	if campaign.TargetAmount <= 0 {
		return fmt.Errorf("%w: 目标金额必须大于0", ErrValidation)
	}
	return nil
}
