package services

import (
	"errors"
	"log"

	"kudos/models"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// PointsService is the ledger engine. Every balance mutation runs inside a
// DB transaction that updates the balance and appends the matching
// PointsTransaction row together, so the ledger and the balances can never
// drift apart.
//
// Debits are guarded conditional updates (WHERE points_balance >= amount),
// so two concurrent debits against the same user resolve to exactly one
// success: the database serializes the row writes.
type PointsService struct {
	Db *gorm.DB
}

// NewPointsService creates a points service on top of a gorm connection.
func NewPointsService(db *gorm.DB) *PointsService {
	return &PointsService{Db: db}
}

// BalanceResult is the response of GetBalance.
type BalanceResult struct {
	PointsBalance           int `json:"pointsBalance"`
	MonthlyPointsAllocation int `json:"monthlyPointsAllocation"`
}

// LedgerResult is the response of a credit or debit.
type LedgerResult struct {
	NewBalance        int `json:"newBalance"`
	TransactionAmount int `json:"transactionAmount"`
}

// TransferResult is the response of a transfer.
type TransferResult struct {
	SenderNewBalance    int `json:"senderNewBalance"`
	RecipientNewBalance int `json:"recipientNewBalance"`
	TransactionAmount   int `json:"transactionAmount"`
}

// MonthlyTypeStat aggregates the current month's transactions per type.
type MonthlyTypeStat struct {
	Type        models.TransactionType `json:"type"`
	TotalAmount int64                  `json:"totalAmount"`
	Count       int64                  `json:"count"`
}

// PointsStatistics is the admin analytics payload.
type PointsStatistics struct {
	TotalPointsInSystem int64             `json:"totalPointsInSystem"`
	TotalTransactions   int64             `json:"totalTransactions"`
	MonthlyStats        []MonthlyTypeStat `json:"monthlyStats"`
}

// GetBalance returns the current balance and monthly allocation of an
// active user.
func (s *PointsService) GetBalance(userID uint) (*BalanceResult, error) {
	var user models.User
	err := s.Db.Where("id = ? AND is_active = ?", userID, true).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &BalanceResult{
		PointsBalance:           user.PointsBalance,
		MonthlyPointsAllocation: user.MonthlyPointsAllocation,
	}, nil
}

// Add credits points to an active user and appends one EARNED/ALLOCATED
// ledger row, atomically.
func (s *PointsService) Add(userID uint, amount int, description string, txType models.TransactionType, relatedID uint) (*LedgerResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var result *LedgerResult
	err := s.Db.Transaction(func(tx *gorm.DB) error {
		var err error
		result, err = s.AddTx(tx, userID, amount, description, txType, relatedID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AddTx is Add running inside an existing transaction scope. Sibling
// services use it to couple a credit to their own writes.
func (s *PointsService) AddTx(tx *gorm.DB, userID uint, amount int, description string, txType models.TransactionType, relatedID uint) (*LedgerResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	res := tx.Model(&models.User{}).
		Where("id = ? AND is_active = ?", userID, true).
		Update("points_balance", gorm.Expr("points_balance + ?", amount))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}

	entry := models.PointsTransaction{
		UserID:      userID,
		Type:        txType,
		Amount:      amount,
		Description: description,
		RelatedID:   relatedID,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return nil, err
	}

	balance, err := currentBalance(tx, userID)
	if err != nil {
		return nil, err
	}
	return &LedgerResult{NewBalance: balance, TransactionAmount: amount}, nil
}

// Spend debits points from an active user and appends one SPENT ledger row,
// atomically. No overdraft: the debit fails whole when the balance is short.
func (s *PointsService) Spend(userID uint, amount int, description string, relatedID uint) (*LedgerResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var result *LedgerResult
	err := s.Db.Transaction(func(tx *gorm.DB) error {
		var err error
		result, err = s.SpendTx(tx, userID, amount, description, relatedID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SpendTx is Spend running inside an existing transaction scope.
func (s *PointsService) SpendTx(tx *gorm.DB, userID uint, amount int, description string, relatedID uint) (*LedgerResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	// Guarded debit: the balance check and the decrement are one statement,
	// so a stale read can never overdraw the account.
	res := tx.Model(&models.User{}).
		Where("id = ? AND is_active = ? AND points_balance >= ?", userID, true, amount).
		Update("points_balance", gorm.Expr("points_balance - ?", amount))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, spendFailure(tx, userID)
	}

	entry := models.PointsTransaction{
		UserID:      userID,
		Type:        models.TransactionTypeSpent,
		Amount:      -amount,
		Description: description,
		RelatedID:   relatedID,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return nil, err
	}

	balance, err := currentBalance(tx, userID)
	if err != nil {
		return nil, err
	}
	return &LedgerResult{NewBalance: balance, TransactionAmount: amount}, nil
}

// Transfer moves points from one active user to another and appends the
// paired SPENT/EARNED ledger rows, all inside one transaction.
func (s *PointsService) Transfer(fromUserID, toUserID uint, amount int, description string, relatedID uint) (*TransferResult, error) {
	var result *TransferResult
	err := s.Db.Transaction(func(tx *gorm.DB) error {
		var err error
		result, err = s.TransferTx(tx, fromUserID, toUserID, amount, description, relatedID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// TransferTx is Transfer running inside an existing transaction scope.
// The recognition service uses it to make "recognition row + transfer"
// all-or-nothing.
func (s *PointsService) TransferTx(tx *gorm.DB, fromUserID, toUserID uint, amount int, description string, relatedID uint) (*TransferResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if fromUserID == toUserID {
		return nil, ErrSelfTransfer
	}

	var sender, recipient models.User
	if err := tx.Where("id = ? AND is_active = ?", fromUserID, true).First(&sender).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if err := tx.Where("id = ? AND is_active = ?", toUserID, true).First(&recipient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// Debit the sender with the guarded update, then credit the recipient.
	res := tx.Model(&models.User{}).
		Where("id = ? AND is_active = ? AND points_balance >= ?", fromUserID, true, amount).
		Update("points_balance", gorm.Expr("points_balance - ?", amount))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrInsufficientBalance
	}

	res = tx.Model(&models.User{}).
		Where("id = ?", toUserID).
		Update("points_balance", gorm.Expr("points_balance + ?", amount))
	if res.Error != nil {
		return nil, res.Error
	}

	// Paired ledger rows share RelatedID so the transfer stays traceable
	// from either side.
	entries := []models.PointsTransaction{
		{
			UserID:      fromUserID,
			Type:        models.TransactionTypeSpent,
			Amount:      -amount,
			Description: "Sent to " + recipient.DisplayName() + ": " + description,
			RelatedID:   relatedID,
		},
		{
			UserID:      toUserID,
			Type:        models.TransactionTypeEarned,
			Amount:      amount,
			Description: "Received from " + sender.DisplayName() + ": " + description,
			RelatedID:   relatedID,
		},
	}
	if err := tx.Create(&entries).Error; err != nil {
		return nil, err
	}

	senderBalance, err := currentBalance(tx, fromUserID)
	if err != nil {
		return nil, err
	}
	recipientBalance, err := currentBalance(tx, toUserID)
	if err != nil {
		return nil, err
	}

	return &TransferResult{
		SenderNewBalance:    senderBalance,
		RecipientNewBalance: recipientBalance,
		TransactionAmount:   amount,
	}, nil
}

// History returns the user's most recent ledger entries, newest first.
func (s *PointsService) History(userID uint, limit int) ([]models.PointsTransaction, error) {
	if limit <= 0 {
		limit = 50
	}

	var transactions []models.PointsTransaction
	err := s.Db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

// UpdateMonthlyAllocation sets a user's monthly points allocation (admin).
func (s *PointsService) UpdateMonthlyAllocation(userID uint, allocation int) (*models.User, error) {
	if allocation < 0 {
		return nil, ErrInvalidAllocation
	}

	res := s.Db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("monthly_points_allocation", allocation)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}

	var user models.User
	if err := s.Db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// RunMonthlyAllocation credits every active user their configured monthly
// allocation. This is a batch job, not one transaction: a failure for one
// user is logged and must not block the rest of the batch. Returns the
// number of users credited.
func (s *PointsService) RunMonthlyAllocation() (int, error) {
	log.Println("[ALLOCATION] Starting monthly points allocation...")

	var users []models.User
	if err := s.Db.Where("is_active = ?", true).Find(&users).Error; err != nil {
		return 0, err
	}

	credited := 0
	for _, user := range users {
		// A zero allocation is a valid configuration, not a failure.
		if user.MonthlyPointsAllocation == 0 {
			continue
		}

		_, err := s.Add(user.ID, user.MonthlyPointsAllocation, "Monthly points allocation", models.TransactionTypeAllocated, 0)
		if err != nil {
			log.Printf("[ALLOCATION] Failed to credit user %d (%s): %v", user.ID, user.Email, err)
			continue
		}
		credited++
	}

	log.Printf("[ALLOCATION] Monthly points allocation completed for %d of %d users", credited, len(users))
	return credited, nil
}

// Statistics returns system-wide points analytics.
func (s *PointsService) Statistics() (*PointsStatistics, error) {
	stats := &PointsStatistics{}

	err := s.Db.Model(&models.User{}).
		Where("is_active = ?", true).
		Select("COALESCE(SUM(points_balance), 0)").
		Scan(&stats.TotalPointsInSystem).Error
	if err != nil {
		return nil, err
	}

	if err := s.Db.Model(&models.PointsTransaction{}).Count(&stats.TotalTransactions).Error; err != nil {
		return nil, err
	}

	err = s.Db.Model(&models.PointsTransaction{}).
		Select("type, COALESCE(SUM(amount), 0) AS total_amount, COUNT(id) AS count").
		Where("created_at >= ?", now.BeginningOfMonth()).
		Group("type").
		Scan(&stats.MonthlyStats).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// spendFailure tells a short balance apart from a missing user after a
// guarded debit matched no row.
func spendFailure(tx *gorm.DB, userID uint) error {
	var count int64
	if err := tx.Model(&models.User{}).
		Where("id = ? AND is_active = ?", userID, true).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrUserNotFound
	}
	return ErrInsufficientBalance
}

func currentBalance(tx *gorm.DB, userID uint) (int, error) {
	var balance int
	err := tx.Model(&models.User{}).
		Where("id = ?", userID).
		Select("points_balance").
		Scan(&balance).Error
	return balance, err
}
