package services

import (
	"testing"

	"kudos/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRecognitionTransfersPoints(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecognitionService(db)
	sender := createTestUser(t, db, "s@test.local", "Sam", "Sender", 100)
	recipient := createTestUser(t, db, "r@test.local", "Rae", "Recipient", 10)

	recognition, err := svc.Create(sender.ID, CreateRecognitionInput{
		RecipientID:  recipient.ID,
		Message:      "Shipped the migration without downtime",
		PointsAmount: 30,
	})
	require.NoError(t, err)

	assert.Equal(t, sender.ID, recognition.SenderID)
	assert.Equal(t, recipient.ID, recognition.RecipientID)
	assert.Equal(t, "Sam Sender", recognition.Sender.DisplayName())

	assert.Equal(t, 70, userBalance(t, db, sender.ID))
	assert.Equal(t, 40, userBalance(t, db, recipient.ID))

	// Both ledger rows point back at the recognition.
	var entries []models.PointsTransaction
	require.NoError(t, db.Where("related_id = ?", recognition.ID).Find(&entries).Error)
	assert.Len(t, entries, 2)
}

func TestCreateRecognitionInsufficientBalanceRollsBack(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecognitionService(db)
	sender := createTestUser(t, db, "s@test.local", "Sam", "Sender", 5)
	recipient := createTestUser(t, db, "r@test.local", "Rae", "Recipient", 0)

	_, err := svc.Create(sender.ID, CreateRecognitionInput{
		RecipientID:  recipient.ID,
		Message:      "thanks",
		PointsAmount: 50,
	})
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	// The recognition row rolled back with the transfer.
	var count int64
	require.NoError(t, db.Model(&models.Recognition{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	assert.Equal(t, 5, userBalance(t, db, sender.ID))
	assert.Equal(t, 0, userBalance(t, db, recipient.ID))
}

func TestCreateRecognitionRejectsSelfAndBadAmount(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecognitionService(db)
	user := createTestUser(t, db, "a@test.local", "Ada", "Byron", 100)
	other := createTestUser(t, db, "b@test.local", "Bob", "Other", 0)

	_, err := svc.Create(user.ID, CreateRecognitionInput{RecipientID: user.ID, Message: "me", PointsAmount: 10})
	assert.ErrorIs(t, err, ErrSelfRecognition)

	_, err = svc.Create(user.ID, CreateRecognitionInput{RecipientID: other.ID, Message: "zero", PointsAmount: 0})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.Create(user.ID, CreateRecognitionInput{RecipientID: 999, Message: "ghost", PointsAmount: 10})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFeedExcludesPrivateAndPaginates(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecognitionService(db)
	sender := createTestUser(t, db, "s@test.local", "Sam", "Sender", 1000)
	recipient := createTestUser(t, db, "r@test.local", "Rae", "Recipient", 0)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(sender.ID, CreateRecognitionInput{
			RecipientID:  recipient.ID,
			Message:      "public",
			PointsAmount: 10,
		})
		require.NoError(t, err)
	}
	_, err := svc.Create(sender.ID, CreateRecognitionInput{
		RecipientID:  recipient.ID,
		Message:      "private",
		PointsAmount: 10,
		IsPrivate:    true,
	})
	require.NoError(t, err)

	page, err := svc.Feed(2, 0)
	require.NoError(t, err)
	assert.Len(t, page.Recognitions, 2)
	assert.EqualValues(t, 3, page.TotalCount)
	assert.True(t, page.HasMore)

	last, err := svc.Feed(2, 2)
	require.NoError(t, err)
	assert.Len(t, last.Recognitions, 1)
	assert.False(t, last.HasMore)

	for _, r := range append(page.Recognitions, last.Recognitions...) {
		assert.False(t, r.IsPrivate)
	}
}

func TestForUserFiltersByDirection(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecognitionService(db)
	a := createTestUser(t, db, "a@test.local", "Ada", "Byron", 100)
	b := createTestUser(t, db, "b@test.local", "Bob", "Other", 100)
	c := createTestUser(t, db, "c@test.local", "Cam", "Third", 100)

	_, err := svc.Create(a.ID, CreateRecognitionInput{RecipientID: b.ID, Message: "a to b", PointsAmount: 5})
	require.NoError(t, err)
	_, err = svc.Create(b.ID, CreateRecognitionInput{RecipientID: a.ID, Message: "b to a", PointsAmount: 5})
	require.NoError(t, err)
	_, err = svc.Create(b.ID, CreateRecognitionInput{RecipientID: c.ID, Message: "b to c", PointsAmount: 5})
	require.NoError(t, err)

	sent, err := svc.ForUser(a.ID, "sent", 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, sent.TotalCount)

	received, err := svc.ForUser(a.ID, "received", 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, received.TotalCount)

	both, err := svc.ForUser(a.ID, "", 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, both.TotalCount)
}

func TestGetPrivateRecognitionVisibility(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecognitionService(db)
	sender := createTestUser(t, db, "s@test.local", "Sam", "Sender", 100)
	recipient := createTestUser(t, db, "r@test.local", "Rae", "Recipient", 0)
	outsider := createTestUser(t, db, "o@test.local", "Odd", "One", 0)

	recognition, err := svc.Create(sender.ID, CreateRecognitionInput{
		RecipientID:  recipient.ID,
		Message:      "between us",
		PointsAmount: 10,
		IsPrivate:    true,
	})
	require.NoError(t, err)

	_, err = svc.Get(recognition.ID, sender.ID)
	assert.NoError(t, err)
	_, err = svc.Get(recognition.ID, recipient.ID)
	assert.NoError(t, err)
	_, err = svc.Get(recognition.ID, outsider.ID)
	assert.ErrorIs(t, err, ErrNotRecognitionOwner)

	_, err = svc.Get(999, sender.ID)
	assert.ErrorIs(t, err, ErrRecognitionNotFound)
}

func TestUpdatePrivacySenderOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecognitionService(db)
	sender := createTestUser(t, db, "s@test.local", "Sam", "Sender", 100)
	recipient := createTestUser(t, db, "r@test.local", "Rae", "Recipient", 0)

	recognition, err := svc.Create(sender.ID, CreateRecognitionInput{
		RecipientID:  recipient.ID,
		Message:      "nice",
		PointsAmount: 10,
	})
	require.NoError(t, err)

	_, err = svc.UpdatePrivacy(recognition.ID, recipient.ID, true)
	assert.ErrorIs(t, err, ErrNotRecognitionOwner)

	updated, err := svc.UpdatePrivacy(recognition.ID, sender.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.IsPrivate)
}

func TestDeleteKeepsLedgerAndBalances(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecognitionService(db)
	sender := createTestUser(t, db, "s@test.local", "Sam", "Sender", 100)
	recipient := createTestUser(t, db, "r@test.local", "Rae", "Recipient", 0)

	recognition, err := svc.Create(sender.ID, CreateRecognitionInput{
		RecipientID:  recipient.ID,
		Message:      "nice",
		PointsAmount: 10,
	})
	require.NoError(t, err)

	err = svc.Delete(recognition.ID, recipient.ID)
	assert.ErrorIs(t, err, ErrNotRecognitionOwner)

	require.NoError(t, svc.Delete(recognition.ID, sender.ID))

	_, err = svc.Get(recognition.ID, sender.ID)
	assert.ErrorIs(t, err, ErrRecognitionNotFound)

	// The transfer is not reversed: ledger rows and balances survive.
	assert.Equal(t, 90, userBalance(t, db, sender.ID))
	assert.Equal(t, 10, userBalance(t, db, recipient.ID))
	assert.EqualValues(t, 1, ledgerCount(t, db, sender.ID))
	assert.EqualValues(t, 1, ledgerCount(t, db, recipient.ID))
}

func TestRecognitionStatistics(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecognitionService(db)
	a := createTestUser(t, db, "a@test.local", "Ada", "Byron", 100)
	b := createTestUser(t, db, "b@test.local", "Bob", "Other", 100)
	c := createTestUser(t, db, "c@test.local", "Cam", "Third", 100)

	_, err := svc.Create(a.ID, CreateRecognitionInput{RecipientID: b.ID, Message: "one", PointsAmount: 5})
	require.NoError(t, err)
	_, err = svc.Create(a.ID, CreateRecognitionInput{RecipientID: c.ID, Message: "two", PointsAmount: 5})
	require.NoError(t, err)
	_, err = svc.Create(b.ID, CreateRecognitionInput{RecipientID: c.ID, Message: "three", PointsAmount: 5})
	require.NoError(t, err)

	global, err := svc.Statistics(0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, global.TotalRecognitions)
	assert.EqualValues(t, 3, global.ThisMonthRecognitions)
	require.NotEmpty(t, global.TopRecognizers)
	assert.Equal(t, a.ID, global.TopRecognizers[0].UserID)
	require.NotEmpty(t, global.TopRecipients)
	assert.Equal(t, c.ID, global.TopRecipients[0].UserID)

	scoped, err := svc.Statistics(b.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, scoped.TotalRecognitions)
}
