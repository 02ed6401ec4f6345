package logic

import (
	"testing"
	"time"

	"github.com/sasamaylina/responsi-paw/internal/database"
	"github.com/sasamaylina/responsi-paw/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB 创建内存数据库并迁移业务表
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "Failed to open test database")

	// 内存库只允许单连接，避免各连接看到不同的数据库
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db), "Failed to migrate test database")
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *model.UserModel {
	t.Helper()
	user := &model.UserModel{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashed",
		Role:         model.RoleDonor,
	}
	require.NoError(t, db.Create(user).Error, "Failed to create test user")
	return user
}

func createTestCampaign(t *testing.T, db *gorm.DB, title string, target int64, active bool) *model.CampaignModel {
	t.Helper()
	campaign := &model.CampaignModel{
		Title:        title,
		Description:  "test campaign",
		TargetAmount: target,
		IsActive:     active,
	}
	require.NoError(t, db.Create(campaign).Error, "Failed to create test campaign")
	return campaign
}

func createTestDonation(t *testing.T, db *gorm.DB, userId, campaignId, amount int64, createdAt time.Time) *model.DonationModel {
	t.Helper()
	donation := &model.DonationModel{
		UserId:     userId,
		CampaignId: campaignId,
		Amount:     amount,
		CreatedAt:  createdAt,
	}
	require.NoError(t, db.Create(donation).Error, "Failed to create test donation")
	// 直接写入的记录同步到活动已筹金额
	require.NoError(t, db.Model(&model.CampaignModel{}).
		Where("id = ?", campaignId).
		Update("collected_amount", gorm.Expr("collected_amount + ?", amount)).Error)
	return donation
}

// collectedAmount 读取活动当前的已筹金额
func collectedAmount(t *testing.T, db *gorm.DB, campaignId int64) int64 {
	t.Helper()
	var campaign model.CampaignModel
	require.NoError(t, db.First(&campaign, campaignId).Error)
	return campaign.CollectedAmount
}

// donationSum 汇总活动捐款记录的金额之和
func donationSum(t *testing.T, db *gorm.DB, campaignId int64) int64 {
	t.Helper()
	var total int64
	require.NoError(t, db.Model(&model.DonationModel{}).
		Where("campaign_id = ?", campaignId).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error)
	return total
}
