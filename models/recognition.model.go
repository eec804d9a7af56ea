package models

import (
	"gorm.io/gorm"
)

// Recognition is a peer-to-peer message carrying a points transfer from
// sender to recipient. The row and its transfer are created atomically.
type Recognition struct {
	gorm.Model
	SenderID     uint   `gorm:"not null;index" json:"senderId"`
	RecipientID  uint   `gorm:"not null;index" json:"recipientId"`
	Message      string `gorm:"type:text;not null" json:"message"`
	PointsAmount int    `gorm:"not null" json:"pointsAmount"`
	IsPrivate    bool   `gorm:"default:false" json:"isPrivate"`

	Sender    User `gorm:"foreignKey:SenderID" json:"sender"`
	Recipient User `gorm:"foreignKey:RecipientID" json:"recipient"`
}
