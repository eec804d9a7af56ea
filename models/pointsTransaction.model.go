package models

import (
	"gorm.io/gorm"
)

// TransactionType defines the type of points transaction
type TransactionType string

const (
	TransactionTypeEarned    TransactionType = "EARNED"
	TransactionTypeSpent     TransactionType = "SPENT"
	TransactionTypeAllocated TransactionType = "ALLOCATED"
)

// PointsTransaction is one immutable entry in the points ledger.
// Rows are append-only: they are never updated or deleted, so the sum of a
// user's amounts always reconciles with the current balance.
type PointsTransaction struct {
	gorm.Model
	UserID      uint            `gorm:"not null;index" json:"userId"`
	Type        TransactionType `gorm:"type:varchar(20);not null" json:"type"`
	Amount      int             `gorm:"not null" json:"amount"` // positive for credit, negative for debit
	Description string          `gorm:"type:text" json:"description"`

	// RelatedID links the entry to the recognition or redemption that caused
	// it (0 when the entry stands alone, e.g. monthly allocations).
	RelatedID uint `gorm:"default:0;index" json:"relatedId"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (PointsTransaction) TableName() string {
	return "points_transactions"
}
