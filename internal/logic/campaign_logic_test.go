package logic

import (
	"mime/multipart"
	"testing"
	"time"

	"github.com/sasamaylina/responsi-paw/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeImageStore 记录删除调用的测试替身
type fakeImageStore struct {
	saved   int
	deleted []string
}

func (f *fakeImageStore) Save(file *multipart.FileHeader) (string, error) {
	f.saved++
	return "fake.png", nil
}

func (f *fakeImageStore) Delete(name string) error {
	f.deleted = append(f.deleted, name)
	return nil
}

func TestProgressPercentage(t *testing.T) {
	campaign := &model.CampaignModel{TargetAmount: 100000, CollectedAmount: 25000}
	assert.InDelta(t, 25.0, campaign.ProgressPercentage(), 0.001)

	// 超过目标时封顶100
	campaign.CollectedAmount = 150000
	assert.Equal(t, 100.0, campaign.ProgressPercentage())

	// 目标为0时报告0，避免除零
	campaign = &model.CampaignModel{TargetAmount: 0, CollectedAmount: 500}
	assert.Equal(t, 0.0, campaign.ProgressPercentage())
}

func TestCreateCampaignValidation(t *testing.T) {
	db := setupTestDB(t)
	campaignLogic := NewCampaignLogic(db, &fakeImageStore{})

	err := campaignLogic.CreateCampaign(&model.CampaignModel{Title: "  ", TargetAmount: 1000})
	assert.ErrorIs(t, err, ErrValidation)

	err = campaignLogic.CreateCampaign(&model.CampaignModel{Title: "募捐", TargetAmount: 0})
	assert.ErrorIs(t, err, ErrValidation)

	// 已筹金额强制从0开始
	campaign := &model.CampaignModel{Title: "募捐", TargetAmount: 1000, CollectedAmount: 999}
	require.NoError(t, campaignLogic.CreateCampaign(campaign))
	assert.Equal(t, int64(0), campaign.CollectedAmount)
}

func TestGetCampaignsActiveOnlyNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	campaignLogic := NewCampaignLogic(db, &fakeImageStore{})

	base := time.Now().Add(-time.Hour)
	old := &model.CampaignModel{Title: "旧活动", TargetAmount: 1000, IsActive: true, CreatedAt: base}
	require.NoError(t, db.Create(old).Error)
	inactive := &model.CampaignModel{Title: "停止的活动", TargetAmount: 1000, IsActive: false, CreatedAt: base.Add(time.Minute)}
	require.NoError(t, db.Create(inactive).Error)
	fresh := &model.CampaignModel{Title: "新活动", TargetAmount: 1000, IsActive: true, CreatedAt: base.Add(2 * time.Minute)}
	require.NoError(t, db.Create(fresh).Error)

	active, err := campaignLogic.GetCampaigns(true)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "新活动", active[0].Title)
	assert.Equal(t, "旧活动", active[1].Title)

	all, err := campaignLogic.GetCampaigns(false)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestUpdateCampaignReplacesImage(t *testing.T) {
	db := setupTestDB(t)
	store := &fakeImageStore{}
	campaignLogic := NewCampaignLogic(db, store)

	campaign := &model.CampaignModel{Title: "募捐", TargetAmount: 1000, Image: "old.png"}
	require.NoError(t, campaignLogic.CreateCampaign(campaign))

	updated, err := campaignLogic.UpdateCampaign(campaign.Id, map[string]interface{}{
		"image": "new.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "new.png", updated.Image)

	// 旧图在新图保存后被释放
	assert.Equal(t, []string{"old.png"}, store.deleted)
}

func TestUpdateCampaignValidation(t *testing.T) {
	db := setupTestDB(t)
	campaignLogic := NewCampaignLogic(db, &fakeImageStore{})

	campaign := &model.CampaignModel{Title: "募捐", TargetAmount: 1000}
	require.NoError(t, campaignLogic.CreateCampaign(campaign))

	_, err := campaignLogic.UpdateCampaign(campaign.Id, map[string]interface{}{"title": " "})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = campaignLogic.UpdateCampaign(campaign.Id, map[string]interface{}{"target_amount": int64(-5)})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = campaignLogic.UpdateCampaign(9999, map[string]interface{}{"title": "x"})
	assert.ErrorIs(t, err, ErrCampaignNotFound)
}

func TestDeleteCampaignCascadesDonations(t *testing.T) {
	db := setupTestDB(t)
	store := &fakeImageStore{}
	campaignLogic := NewCampaignLogic(db, store)

	user := createTestUser(t, db, "donor")
	campaign := &model.CampaignModel{Title: "募捐", TargetAmount: 100000, IsActive: true, Image: "cover.png"}
	require.NoError(t, campaignLogic.CreateCampaign(campaign))

	now := time.Now()
	for i := 0; i < 3; i++ {
		createTestDonation(t, db, user.Id, campaign.Id, 1000, now)
	}

	require.NoError(t, campaignLogic.DeleteCampaign(campaign.Id))

	_, err := campaignLogic.GetCampaign(campaign.Id)
	assert.ErrorIs(t, err, ErrCampaignNotFound)

	// 全部捐款记录随活动删除
	var count int64
	require.NoError(t, db.Model(&model.DonationModel{}).Where("campaign_id = ?", campaign.Id).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	// 封面图片被释放
	assert.Equal(t, []string{"cover.png"}, store.deleted)
}

func TestDeleteUnknownCampaign(t *testing.T) {
	db := setupTestDB(t)
	campaignLogic := NewCampaignLogic(db, &fakeImageStore{})

	err := campaignLogic.DeleteCampaign(9999)
	assert.ErrorIs(t, err, ErrCampaignNotFound)
}
