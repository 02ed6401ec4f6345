package model

import (
	"time"
)

// CampaignModel 募捐活动模型
type CampaignModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	Title       string `json:"title" gorm:"size:200;not null" binding:"required"`
	Description string `json:"description" gorm:"type:text"`
	Image       string `json:"image" gorm:"size:255"` // 封面图片文件名

	// 募捐信息
	TargetAmount    int64 `json:"target_amount" gorm:"not null" binding:"required,min=1"`
	CollectedAmount int64 `json:"collected_amount" gorm:"default:0"`

	// 状态
	IsActive bool `json:"is_active" gorm:"default:true"`
}

// ProgressPercentage 募捐进度百分比，范围 [0, 100]
func (c *CampaignModel) ProgressPercentage() float64 {
	if c.TargetAmount == 0 {
		return 0
	}
	progress := float64(c.CollectedAmount) / float64(c.TargetAmount) * 100
	if progress > 100 {
		return 100
	}
	return progress
}

// TableName 自定义表名
func (CampaignModel) TableName() string {
	return "campaign"
}
