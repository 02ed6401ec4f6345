package logic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMinAmount = 1000

func TestDonateUpdatesCampaignAggregate(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "donor1")
	campaign := createTestCampaign(t, db, "救灾募捐", 100000, true)

	donationLogic := NewDonationLogic(db, testMinAmount)

	donation, err := donationLogic.Donate(user.Id, campaign.Id, 5000, "加油")
	require.NoError(t, err)
	assert.Equal(t, int64(5000), donation.Amount)
	assert.Equal(t, "加油", donation.Message)

	assert.Equal(t, int64(5000), collectedAmount(t, db, campaign.Id))
	assert.Equal(t, donationSum(t, db, campaign.Id), collectedAmount(t, db, campaign.Id))
}

func TestDonateMinimumBoundary(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "donor1")
	campaign := createTestCampaign(t, db, "助学募捐", 100000, true)

	donationLogic := NewDonationLogic(db, testMinAmount)

	// 低于最低金额
	_, err := donationLogic.Donate(user.Id, campaign.Id, 999, "")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, int64(0), collectedAmount(t, db, campaign.Id))

	// 恰好等于最低金额
	_, err = donationLogic.Donate(user.Id, campaign.Id, 1000, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), collectedAmount(t, db, campaign.Id))
}

func TestDonateInactiveCampaign(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "donor1")
	campaign := createTestCampaign(t, db, "已结束的募捐", 100000, false)

	donationLogic := NewDonationLogic(db, testMinAmount)

	_, err := donationLogic.Donate(user.Id, campaign.Id, 5000, "")
	assert.ErrorIs(t, err, ErrCampaignInactive)
	assert.Equal(t, int64(0), collectedAmount(t, db, campaign.Id))
}

func TestDonateUnknownCampaign(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "donor1")

	donationLogic := NewDonationLogic(db, testMinAmount)

	_, err := donationLogic.Donate(user.Id, 9999, 5000, "")
	assert.ErrorIs(t, err, ErrCampaignNotFound)
}

// 端到端账本场景：捐款5000，改为7000，再删除，
// 已筹金额依次为5000、7000、0。
func TestDonationLifecycleKeepsLedgerConsistent(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "donorA")
	campaign := createTestCampaign(t, db, "医院重建", 100000, true)

	donationLogic := NewDonationLogic(db, testMinAmount)

	donation, err := donationLogic.Donate(user.Id, campaign.Id, 5000, "")
	require.NoError(t, err)
	assert.Equal(t, int64(5000), collectedAmount(t, db, campaign.Id))

	_, err = donationLogic.EditDonation(donation.Id, user.Id, 7000, "改捐7000")
	require.NoError(t, err)
	assert.Equal(t, int64(7000), collectedAmount(t, db, campaign.Id))

	require.NoError(t, donationLogic.DeleteDonation(donation.Id, user.Id))
	assert.Equal(t, int64(0), collectedAmount(t, db, campaign.Id))
	assert.Equal(t, int64(0), donationSum(t, db, campaign.Id))
}

func TestEditDonationSameAmountIsNoop(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "donor1")
	campaign := createTestCampaign(t, db, "图书馆募捐", 100000, true)

	donationLogic := NewDonationLogic(db, testMinAmount)

	donation, err := donationLogic.Donate(user.Id, campaign.Id, 3000, "")
	require.NoError(t, err)

	_, err = donationLogic.EditDonation(donation.Id, user.Id, 3000, "只改留言")
	require.NoError(t, err)
	assert.Equal(t, int64(3000), collectedAmount(t, db, campaign.Id))
}

func TestEditDonationBelowMinimum(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "donor1")
	campaign := createTestCampaign(t, db, "募捐", 100000, true)

	donationLogic := NewDonationLogic(db, testMinAmount)

	donation, err := donationLogic.Donate(user.Id, campaign.Id, 3000, "")
	require.NoError(t, err)

	_, err = donationLogic.EditDonation(donation.Id, user.Id, 500, "")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, int64(3000), collectedAmount(t, db, campaign.Id))
}

func TestEditOthersDonationForbidden(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner")
	intruder := createTestUser(t, db, "intruder")
	campaign := createTestCampaign(t, db, "募捐", 100000, true)

	donationLogic := NewDonationLogic(db, testMinAmount)

	donation, err := donationLogic.Donate(owner.Id, campaign.Id, 5000, "")
	require.NoError(t, err)

	_, err = donationLogic.EditDonation(donation.Id, intruder.Id, 9000, "")
	assert.ErrorIs(t, err, ErrForbidden)

	err = donationLogic.DeleteDonation(donation.Id, intruder.Id)
	assert.ErrorIs(t, err, ErrForbidden)

	// 账本不受影响
	assert.Equal(t, int64(5000), collectedAmount(t, db, campaign.Id))
	assert.Equal(t, int64(5000), donationSum(t, db, campaign.Id))
}

func TestDeleteUnknownDonation(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "donor1")

	donationLogic := NewDonationLogic(db, testMinAmount)

	err := donationLogic.DeleteDonation(9999, user.Id)
	assert.ErrorIs(t, err, ErrDonationNotFound)
}

func TestGetUserDonationsNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "donor1")
	campaign := createTestCampaign(t, db, "募捐", 100000, true)

	base := time.Now().Add(-time.Hour)
	createTestDonation(t, db, user.Id, campaign.Id, 1000, base)
	createTestDonation(t, db, user.Id, campaign.Id, 2000, base.Add(time.Minute))
	createTestDonation(t, db, user.Id, campaign.Id, 3000, base.Add(2*time.Minute))

	donationLogic := NewDonationLogic(db, testMinAmount)

	donations, err := donationLogic.GetUserDonations(user.Id)
	require.NoError(t, err)
	require.Len(t, donations, 3)
	assert.Equal(t, int64(3000), donations[0].Amount)
	assert.Equal(t, int64(2000), donations[1].Amount)
	assert.Equal(t, int64(1000), donations[2].Amount)

	total, err := donationLogic.GetTotalDonated(user.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(6000), total)
}

func TestGetTotalDonatedZeroWithoutDonations(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "donor1")

	donationLogic := NewDonationLogic(db, testMinAmount)

	total, err := donationLogic.GetTotalDonated(user.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestReconcileCampaignRepairsDrift(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "donor1")
	campaign := createTestCampaign(t, db, "募捐", 100000, true)

	donationLogic := NewDonationLogic(db, testMinAmount)

	_, err := donationLogic.Donate(user.Id, campaign.Id, 5000, "")
	require.NoError(t, err)

	// 绕过账本直接篡改已筹金额，制造偏差
	require.NoError(t, db.Model(campaign).Update("collected_amount", 8000).Error)

	drift, err := donationLogic.ReconcileCampaign(campaign.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), drift)
	assert.Equal(t, int64(5000), collectedAmount(t, db, campaign.Id))

	// 再次核对应无偏差
	drift, err = donationLogic.ReconcileCampaign(campaign.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(0), drift)
}

func TestReconcileUnknownCampaign(t *testing.T) {
	db := setupTestDB(t)

	donationLogic := NewDonationLogic(db, testMinAmount)

	_, err := donationLogic.ReconcileCampaign(404)
	assert.ErrorIs(t, err, ErrCampaignNotFound)
}
