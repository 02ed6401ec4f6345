package logic

import (
	"errors"
	"fmt"

	"github.com/sasamaylina/responsi-paw/internal/model"
	"gorm.io/gorm"
)

// DonationLogic 捐款账本业务逻辑。
// 任何改变捐款金额或条数的操作，都必须在同一个事务内
// 同步更新对应活动的已筹金额。
type DonationLogic struct {
	db        *gorm.DB
	minAmount int64
}

// NewDonationLogic 创建捐款业务逻辑
func NewDonationLogic(db *gorm.DB, minAmount int64) *DonationLogic {
	return &DonationLogic{db: db, minAmount: minAmount}
}

// Donate 向活动捐款
func (d *DonationLogic) Donate(userId, campaignId, amount int64, message string) (*model.DonationModel, error) {
	if amount < d.minAmount {
		return nil, fmt.Errorf("%w: 捐款金额不能低于 %d", ErrValidation, d.minAmount)
	}

	// 检查活动是否存在且在进行中
	var campaign model.CampaignModel
	if err := d.db.First(&campaign, campaignId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("查询活动失败: %w", err)
	}
	if !campaign.IsActive {
		return nil, ErrCampaignInactive
	}

	donation := &model.DonationModel{
		UserId:     userId,
		CampaignId: campaignId,
		Amount:     amount,
		Message:    message,
	}

	// 开始事务
	tx := d.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// 创建捐款记录
	if err := tx.Create(donation).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("创建捐款记录失败: %w", err)
	}

	// 更新活动已筹金额
	if err := tx.Model(&campaign).Update("collected_amount", gorm.Expr("collected_amount + ?", amount)).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("更新活动已筹金额失败: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return donation, nil
}

// EditDonation 修改捐款金额和留言，仅限本人。
// 已筹金额按新旧金额的差值调整。
func (d *DonationLogic) EditDonation(donationId, requestingUserId, newAmount int64, newMessage string) (*model.DonationModel, error) {
	donation, err := d.getDonation(donationId)
	if err != nil {
		return nil, err
	}
	if donation.UserId != requestingUserId {
		return nil, ErrForbidden
	}
	if newAmount < d.minAmount {
		return nil, fmt.Errorf("%w: 捐款金额不能低于 %d", ErrValidation, d.minAmount)
	}

	delta := newAmount - donation.Amount

	tx := d.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Model(donation).Updates(map[string]interface{}{
		"amount":  newAmount,
		"message": newMessage,
	}).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("更新捐款记录失败: %w", err)
	}

	if err := tx.Model(&model.CampaignModel{}).
		Where("id = ?", donation.CampaignId).
		Update("collected_amount", gorm.Expr("collected_amount + ?", delta)).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("更新活动已筹金额失败: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	donation.Amount = newAmount
	donation.Message = newMessage
	return donation, nil
}

// DeleteDonation 删除捐款记录，仅限本人。
// 先从活动已筹金额中扣除，再删除记录。
func (d *DonationLogic) DeleteDonation(donationId, requestingUserId int64) error {
	donation, err := d.getDonation(donationId)
	if err != nil {
		return err
	}
	if donation.UserId != requestingUserId {
		return ErrForbidden
	}

	tx := d.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Model(&model.CampaignModel{}).
		Where("id = ?", donation.CampaignId).
		Update("collected_amount", gorm.Expr("collected_amount - ?", donation.Amount)).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("更新活动已筹金额失败: %w", err)
	}

	if err := tx.Delete(donation).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("删除捐款记录失败: %w", err)
	}

	return tx.Commit().Error
}

// GetUserDonations 获取用户的捐款历史，按时间倒序
func (d *DonationLogic) GetUserDonations(userId int64) ([]model.DonationModel, error) {
	var donations []model.DonationModel
	if err := d.db.Where("user_id = ?", userId).
		Order("created_at DESC").
		Find(&donations).Error; err != nil {
		return nil, fmt.Errorf("获取捐款历史失败: %w", err)
	}
	return donations, nil
}

// GetTotalDonated 获取用户的累计捐款金额
func (d *DonationLogic) GetTotalDonated(userId int64) (int64, error) {
	var total int64
	if err := d.db.Model(&model.DonationModel{}).
		Where("user_id = ?", userId).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("获取累计捐款金额失败: %w", err)
	}
	return total, nil
}

// GetAllDonations 获取全部捐款记录，按时间倒序
func (d *DonationLogic) GetAllDonations() ([]model.DonationModel, error) {
	var donations []model.DonationModel
	if err := d.db.Order("created_at DESC").Find(&donations).Error; err != nil {
		return nil, fmt.Errorf("获取捐款记录失败: %w", err)
	}
	return donations, nil
}

// ReconcileCampaign 核对活动已筹金额与捐款记录之和，
// 不一致时在事务内修复并返回偏差值。
func (d *DonationLogic) ReconcileCampaign(campaignId int64) (int64, error) {
	var drift int64
	err := d.db.Transaction(func(tx *gorm.DB) error {
		var campaign model.CampaignModel
		if err := tx.First(&campaign, campaignId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCampaignNotFound
			}
			return fmt.Errorf("查询活动失败: %w", err)
		}

		var total int64
		if err := tx.Model(&model.DonationModel{}).
			Where("campaign_id = ?", campaignId).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&total).Error; err != nil {
			return fmt.Errorf("汇总活动捐款失败: %w", err)
		}

		drift = campaign.CollectedAmount - total
		if drift == 0 {
			return nil
		}

		if err := tx.Model(&campaign).Update("collected_amount", total).Error; err != nil {
			return fmt.Errorf("修复活动已筹金额失败: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return drift, nil
}

// getDonation 查询捐款记录
func (d *DonationLogic) getDonation(id int64) (*model.DonationModel, error) {
	var donation model.DonationModel
	if err := d.db.First(&donation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonationNotFound
		}
		return nil, fmt.Errorf("查询捐款记录失败: %w", err)
	}
	return &donation, nil
}
