package services

import (
	"testing"

	"kudos/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory SQLite database per test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.PointsTransaction{},
		&models.Recognition{},
		&models.Reward{},
		&models.RewardRedemption{},
	)
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email, firstName, lastName string, balance int) *models.User {
	t.Helper()

	user := models.User{
		Email:                   email,
		Password:                "hashed",
		FirstName:               firstName,
		LastName:                lastName,
		Role:                    models.RoleEmployee,
		PointsBalance:           balance,
		MonthlyPointsAllocation: 100,
		IsActive:                true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createTestReward(t *testing.T, db *gorm.DB, title string, cost int, stock *int) *models.Reward {
	t.Helper()

	reward := models.Reward{
		Title:         title,
		Description:   "test reward",
		PointsCost:    cost,
		Category:      "Test",
		IsActive:      true,
		StockQuantity: stock,
	}
	require.NoError(t, db.Create(&reward).Error)
	return &reward
}

func userBalance(t *testing.T, db *gorm.DB, userID uint) int {
	t.Helper()

	var user models.User
	require.NoError(t, db.First(&user, userID).Error)
	return user.PointsBalance
}

func ledgerCount(t *testing.T, db *gorm.DB, userID uint) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&models.PointsTransaction{}).Where("user_id = ?", userID).Count(&count).Error)
	return count
}

func intPtr(v int) *int {
	return &v
}
