package logic

import (
	"fmt"

	"github.com/sasamaylina/responsi-paw/internal/model"
	"gorm.io/gorm"
)

// DashboardLogic 管理后台统计
type DashboardLogic struct {
	db *gorm.DB
}

// NewDashboardLogic 创建后台统计逻辑
func NewDashboardLogic(db *gorm.DB) *DashboardLogic {
	return &DashboardLogic{db: db}
}

// GetAdminStats 获取后台首页统计信息
func (d *DashboardLogic) GetAdminStats() (map[string]interface{}, error) {
	var totalUsers int64
	if err := d.db.Model(&model.UserModel{}).Count(&totalUsers).Error; err != nil {
		return nil, fmt.Errorf("统计用户总数失败: %w", err)
	}

	var totalCampaigns int64
	if err := d.db.Model(&model.CampaignModel{}).Count(&totalCampaigns).Error; err != nil {
		return nil, fmt.Errorf("统计活动总数失败: %w", err)
	}

	var totalDonations int64
	if err := d.db.Model(&model.DonationModel{}).Count(&totalDonations).Error; err != nil {
		return nil, fmt.Errorf("统计捐款总数失败: %w", err)
	}

	// 累计捐款金额
	var totalCollected int64
	if err := d.db.Model(&model.DonationModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalCollected).Error; err != nil {
		return nil, fmt.Errorf("统计累计捐款金额失败: %w", err)
	}

	// 最近5笔捐款
	var recentDonations []model.DonationModel
	if err := d.db.Order("created_at DESC").Limit(5).Find(&recentDonations).Error; err != nil {
		return nil, fmt.Errorf("获取最近捐款失败: %w", err)
	}

	// 进行中的活动
	var activeCampaigns []model.CampaignModel
	if err := d.db.Where("is_active = ?", true).Limit(5).Find(&activeCampaigns).Error; err != nil {
		return nil, fmt.Errorf("获取进行中活动失败: %w", err)
	}

	return map[string]interface{}{
		"totalUsers":      totalUsers,
		"totalCampaigns":  totalCampaigns,
		"totalDonations":  totalDonations,
		"totalCollected":  totalCollected,
		"recentDonations": recentDonations,
		"activeCampaigns": activeCampaigns,
	}, nil
}
