package services

import (
	"strings"
	"testing"

	"kudos/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedeemDebitsStockAndCreatesPendingRedemption(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRewardService(db)
	user := createTestUser(t, db, "a@test.local", "Ada", "Byron", 100)
	reward := createTestReward(t, db, "Coffee Voucher", 50, intPtr(3))

	redemption, err := svc.Redeem(user.ID, reward.ID)
	require.NoError(t, err)

	assert.Equal(t, models.RedemptionStatusPending, redemption.Status)
	assert.Equal(t, 50, redemption.PointsSpent)
	assert.Len(t, redemption.RedemptionCode, 8)
	assert.Equal(t, strings.ToUpper(redemption.RedemptionCode), redemption.RedemptionCode)

	assert.Equal(t, 50, userBalance(t, db, user.ID))

	var fresh models.Reward
	require.NoError(t, db.First(&fresh, reward.ID).Error)
	require.NotNil(t, fresh.StockQuantity)
	assert.Equal(t, 2, *fresh.StockQuantity)

	var entry models.PointsTransaction
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&entry).Error)
	assert.Equal(t, models.TransactionTypeSpent, entry.Type)
	assert.Equal(t, -50, entry.Amount)
	assert.Equal(t, reward.ID, entry.RelatedID)
}

func TestRedeemInsufficientBalanceRollsBack(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRewardService(db)
	user := createTestUser(t, db, "a@test.local", "Ada", "Byron", 20)
	reward := createTestReward(t, db, "Team Lunch", 200, intPtr(5))

	_, err := svc.Redeem(user.ID, reward.ID)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	assert.Equal(t, 20, userBalance(t, db, user.ID))

	var fresh models.Reward
	require.NoError(t, db.First(&fresh, reward.ID).Error)
	assert.Equal(t, 5, *fresh.StockQuantity)

	var count int64
	require.NoError(t, db.Model(&models.RewardRedemption{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestRedeemInactiveReward(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRewardService(db)
	user := createTestUser(t, db, "a@test.local", "Ada", "Byron", 100)
	reward := createTestReward(t, db, "Retired Perk", 10, nil)
	require.NoError(t, db.Model(reward).Update("is_active", false).Error)

	_, err := svc.Redeem(user.ID, reward.ID)
	assert.ErrorIs(t, err, ErrRewardInactive)
	assert.Equal(t, 100, userBalance(t, db, user.ID))
}

func TestRedeemOutOfStock(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRewardService(db)
	user := createTestUser(t, db, "a@test.local", "Ada", "Byron", 100)
	reward := createTestReward(t, db, "Sold Out", 10, intPtr(0))

	_, err := svc.Redeem(user.ID, reward.ID)
	assert.ErrorIs(t, err, ErrOutOfStock)
	assert.Equal(t, 100, userBalance(t, db, user.ID))
}

func TestRedeemUnlimitedRewardIgnoresStock(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRewardService(db)
	user := createTestUser(t, db, "a@test.local", "Ada", "Byron", 100)
	reward := createTestReward(t, db, "Charity Donation", 25, nil)

	for i := 0; i < 3; i++ {
		_, err := svc.Redeem(user.ID, reward.ID)
		require.NoError(t, err)
	}

	assert.Equal(t, 25, userBalance(t, db, user.ID))

	var fresh models.Reward
	require.NoError(t, db.First(&fresh, reward.ID).Error)
	assert.Nil(t, fresh.StockQuantity)
}

func TestRedeemMissingReward(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRewardService(db)
	user := createTestUser(t, db, "a@test.local", "Ada", "Byron", 100)

	_, err := svc.Redeem(user.ID, 999)
	assert.ErrorIs(t, err, ErrRewardNotFound)
}

func TestCancelPendingRefundsPointsAndStock(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRewardService(db)
	user := createTestUser(t, db, "a@test.local", "Ada", "Byron", 100)
	reward := createTestReward(t, db, "Coffee Voucher", 60, intPtr(1))

	redemption, err := svc.Redeem(user.ID, reward.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, userBalance(t, db, user.ID))

	cancelled, err := svc.UpdateStatus(redemption.ID, models.RedemptionStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.RedemptionStatusCancelled, cancelled.Status)

	assert.Equal(t, 100, userBalance(t, db, user.ID))

	var fresh models.Reward
	require.NoError(t, db.First(&fresh, reward.ID).Error)
	assert.Equal(t, 1, *fresh.StockQuantity)

	var refunds []models.PointsTransaction
	require.NoError(t, db.Where("user_id = ? AND amount > 0", user.ID).Find(&refunds).Error)
	require.Len(t, refunds, 1)
	assert.Equal(t, models.TransactionTypeEarned, refunds[0].Type)
	assert.Equal(t, 60, refunds[0].Amount)
	assert.Contains(t, refunds[0].Description, "Refund for cancelled redemption")
}

func TestCancelLosingTheStatusRaceDoesNotRefund(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRewardService(db)
	user := createTestUser(t, db, "a@test.local", "Ada", "Byron", 100)
	reward := createTestReward(t, db, "Coffee Voucher", 60, intPtr(1))

	redemption, err := svc.Redeem(user.ID, reward.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, userBalance(t, db, user.ID))

	// The row leaves PENDING between this request's read and its guarded
	// status flip, as when a parallel cancel got there first.
	err = db.Model(&models.RewardRedemption{}).
		Where("id = ?", redemption.ID).
		Update("status", models.RedemptionStatusCancelled).Error
	require.NoError(t, err)

	cancelled, err := svc.UpdateStatus(redemption.ID, models.RedemptionStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.RedemptionStatusCancelled, cancelled.Status)

	// No second refund, no second stock restore.
	assert.Equal(t, 40, userBalance(t, db, user.ID))

	var refunds int64
	require.NoError(t, db.Model(&models.PointsTransaction{}).
		Where("user_id = ? AND amount > 0", user.ID).
		Count(&refunds).Error)
	assert.EqualValues(t, 0, refunds)

	var fresh models.Reward
	require.NoError(t, db.First(&fresh, reward.ID).Error)
	assert.Equal(t, 0, *fresh.StockQuantity)
}

func TestCancelTwiceRefundsOnce(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRewardService(db)
	user := createTestUser(t, db, "a@test.local", "Ada", "Byron", 100)
	reward := createTestReward(t, db, "Coffee Voucher", 60, nil)

	redemption, err := svc.Redeem(user.ID, reward.ID)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(redemption.ID, models.RedemptionStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, 100, userBalance(t, db, user.ID))

	// Cancelling an already cancelled redemption is a plain status write.
	_, err = svc.UpdateStatus(redemption.ID, models.RedemptionStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, 100, userBalance(t, db, user.ID))
}

func TestApproveAndFulfillHaveNoSideEffects(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRewardService(db)
	user := createTestUser(t, db, "a@test.local", "Ada", "Byron", 100)
	reward := createTestReward(t, db, "Coffee Voucher", 60, nil)

	redemption, err := svc.Redeem(user.ID, reward.ID)
	require.NoError(t, err)

	approved, err := svc.UpdateStatus(redemption.ID, models.RedemptionStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.RedemptionStatusApproved, approved.Status)
	assert.Equal(t, 40, userBalance(t, db, user.ID))

	fulfilled, err := svc.UpdateStatus(redemption.ID, models.RedemptionStatusFulfilled)
	require.NoError(t, err)
	assert.Equal(t, models.RedemptionStatusFulfilled, fulfilled.Status)
	assert.Equal(t, 40, userBalance(t, db, user.ID))

	// Cancelling after approval does not refund either.
	_, err = svc.UpdateStatus(redemption.ID, models.RedemptionStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, 40, userBalance(t, db, user.ID))
}

func TestUpdateStatusMissingRedemption(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRewardService(db)

	_, err := svc.UpdateStatus(999, models.RedemptionStatusApproved)
	assert.ErrorIs(t, err, ErrRedemptionNotFound)
}

func TestDeleteBlockedByPendingRedemptions(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRewardService(db)
	user := createTestUser(t, db, "a@test.local", "Ada", "Byron", 100)
	reward := createTestReward(t, db, "Coffee Voucher", 60, nil)

	redemption, err := svc.Redeem(user.ID, reward.ID)
	require.NoError(t, err)

	err = svc.Delete(reward.ID)
	assert.ErrorIs(t, err, ErrPendingRedemptions)

	// Once the pending redemption resolves, the delete goes through.
	_, err = svc.UpdateStatus(redemption.ID, models.RedemptionStatusFulfilled)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(reward.ID))

	_, err = svc.Get(reward.ID)
	assert.ErrorIs(t, err, ErrRewardNotFound)
}

func TestListFiltersInactive(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRewardService(db)
	createTestReward(t, db, "Active Perk", 10, nil)
	retired := createTestReward(t, db, "Retired Perk", 10, nil)
	require.NoError(t, db.Model(retired).Update("is_active", false).Error)

	active, err := svc.List(true)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := svc.List(false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUserRedemptionsNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRewardService(db)
	user := createTestUser(t, db, "a@test.local", "Ada", "Byron", 100)
	other := createTestUser(t, db, "b@test.local", "Bob", "Other", 100)
	reward := createTestReward(t, db, "Coffee Voucher", 10, nil)

	for i := 0; i < 2; i++ {
		_, err := svc.Redeem(user.ID, reward.ID)
		require.NoError(t, err)
	}
	_, err := svc.Redeem(other.ID, reward.ID)
	require.NoError(t, err)

	mine, err := svc.UserRedemptions(user.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	all, err := svc.AllRedemptions()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRewardStatistics(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRewardService(db)
	user := createTestUser(t, db, "a@test.local", "Ada", "Byron", 100)
	reward := createTestReward(t, db, "Coffee Voucher", 10, nil)
	retired := createTestReward(t, db, "Retired Perk", 10, nil)
	require.NoError(t, db.Model(retired).Update("is_active", false).Error)

	_, err := svc.Redeem(user.ID, reward.ID)
	require.NoError(t, err)

	stats, err := svc.Statistics()
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalRewards)
	assert.EqualValues(t, 1, stats.ActiveRewards)
	assert.EqualValues(t, 1, stats.TotalRedemptions)
	assert.EqualValues(t, 1, stats.PendingRedemptions)
	assert.NotEmpty(t, stats.CategoryStats)
	assert.NotEmpty(t, stats.RedemptionStats)
}
