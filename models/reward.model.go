package models

import (
	"gorm.io/gorm"
)

// Reward is a catalog item redeemable for points.
type Reward struct {
	gorm.Model
	Title       string `gorm:"type:varchar(100);not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	PointsCost  int    `gorm:"not null" json:"pointsCost"`
	Category    string `gorm:"type:varchar(50);not null;index" json:"category"`
	ImageURL    string `gorm:"default:''" json:"imageUrl"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`

	// StockQuantity is nil for unlimited rewards. Limited rewards are
	// decremented/restored only inside redemption transactions.
	StockQuantity *int `json:"stockQuantity"`
}
