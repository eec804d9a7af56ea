package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleEmployee = "EMPLOYEE"
	RoleManager  = "MANAGER"
	RoleAdmin    = "ADMIN"
)

type User struct {
	gorm.Model
	Email      string `gorm:"unique;not null" json:"email"`
	Password   string `gorm:"not null" json:"-"`
	FirstName  string `gorm:"not null" json:"firstName"`
	LastName   string `gorm:"not null" json:"lastName"`
	Department string `gorm:"default:''" json:"department"`
	Role       string `gorm:"default:'EMPLOYEE'" json:"role"` // EMPLOYEE, MANAGER, ADMIN
	AvatarURL  string `gorm:"default:''" json:"avatarUrl"`

	// Points balance is mutated only by the points service, always inside
	// the same DB transaction that appends the matching ledger row.
	PointsBalance           int `gorm:"default:0" json:"pointsBalance"`
	MonthlyPointsAllocation int `gorm:"default:100" json:"monthlyPointsAllocation"`

	IsActive  bool       `gorm:"default:true" json:"isActive"`
	LastLogin *time.Time `json:"lastLogin"`
}

// DisplayName returns the user's full name for transaction descriptions.
func (u *User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}
