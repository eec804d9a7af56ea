package models

import (
	"gorm.io/gorm"
)

// RedemptionStatus defines the lifecycle state of a redemption
type RedemptionStatus string

const (
	RedemptionStatusPending   RedemptionStatus = "PENDING"
	RedemptionStatusApproved  RedemptionStatus = "APPROVED"
	RedemptionStatusFulfilled RedemptionStatus = "FULFILLED"
	RedemptionStatusCancelled RedemptionStatus = "CANCELLED"
)

// RewardRedemption tracks one exchange of points for a reward.
// PointsSpent snapshots the cost at redemption time so later price changes
// never affect refunds.
type RewardRedemption struct {
	gorm.Model
	UserID      uint             `gorm:"not null;index" json:"userId"`
	RewardID    uint             `gorm:"not null;index" json:"rewardId"`
	PointsSpent int              `gorm:"not null" json:"pointsSpent"`
	Status      RedemptionStatus `gorm:"type:varchar(20);default:'PENDING'" json:"status"`

	// RedemptionCode is the short token the employee presents to collect
	// the reward.
	RedemptionCode string `gorm:"type:varchar(8);unique;not null" json:"redemptionCode"`

	User   User   `gorm:"foreignKey:UserID" json:"user"`
	Reward Reward `gorm:"foreignKey:RewardID" json:"reward"`
}

func (RewardRedemption) TableName() string {
	return "reward_redemptions"
}
