package main

import (
	"log"

	"kudos/config"
	"kudos/database"
	"kudos/models"

	"golang.org/x/crypto/bcrypt"
)

// Seeds a fresh database with demo accounts and a starter reward catalog.
// Run with: go run scripts/seed.go
func main() {
	config.LoadConfig()
	database.ConnectDb()

	db := database.Database.Db

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), config.AppConfig.SaltRound)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}
	password := string(hashed)

	users := []models.User{
		{
			Email:                   "admin@kudos.local",
			Password:                password,
			FirstName:               "Ava",
			LastName:                "Stone",
			Department:              "Operations",
			Role:                    models.RoleAdmin,
			PointsBalance:           500,
			MonthlyPointsAllocation: 100,
			IsActive:                true,
		},
		{
			Email:                   "manager@kudos.local",
			Password:                password,
			FirstName:               "Marcus",
			LastName:                "Lee",
			Department:              "Engineering",
			Role:                    models.RoleManager,
			PointsBalance:           200,
			MonthlyPointsAllocation: 150,
			IsActive:                true,
		},
		{
			Email:                   "dana@kudos.local",
			Password:                password,
			FirstName:               "Dana",
			LastName:                "Ortiz",
			Department:              "Engineering",
			Role:                    models.RoleEmployee,
			PointsBalance:           100,
			MonthlyPointsAllocation: 100,
			IsActive:                true,
		},
		{
			Email:                   "sam@kudos.local",
			Password:                password,
			FirstName:               "Sam",
			LastName:                "Patel",
			Department:              "Design",
			Role:                    models.RoleEmployee,
			PointsBalance:           100,
			MonthlyPointsAllocation: 100,
			IsActive:                true,
		},
	}

	for i := range users {
		var existing models.User
		if err := db.Where("email = ?", users[i].Email).First(&existing).Error; err == nil {
			log.Printf("User %s already exists, skipping", users[i].Email)
			continue
		}
		if err := db.Create(&users[i]).Error; err != nil {
			log.Fatalf("Failed to seed user %s: %v", users[i].Email, err)
		}
		log.Printf("Seeded user %s (%s)", users[i].Email, users[i].Role)
	}

	coffeeStock := 50
	lunchStock := 20

	rewards := []models.Reward{
		{
			Title:         "Coffee Voucher",
			Description:   "A voucher for any drink at the office cafe.",
			PointsCost:    50,
			Category:      "Food & Drink",
			IsActive:      true,
			StockQuantity: &coffeeStock,
		},
		{
			Title:         "Team Lunch",
			Description:   "Lunch with your team on the company.",
			PointsCost:    200,
			Category:      "Food & Drink",
			IsActive:      true,
			StockQuantity: &lunchStock,
		},
		{
			Title:         "Day Off",
			Description:   "One extra paid day off, any day you like.",
			PointsCost:    500,
			Category:      "Time Off",
			IsActive:      true,
		},
		{
			Title:         "Charity Donation",
			Description:   "We donate 25 EUR to a charity of your choice.",
			PointsCost:    100,
			Category:      "Giving",
			IsActive:      true,
		},
	}

	for i := range rewards {
		var existing models.Reward
		if err := db.Where("title = ?", rewards[i].Title).First(&existing).Error; err == nil {
			log.Printf("Reward %q already exists, skipping", rewards[i].Title)
			continue
		}
		if err := db.Create(&rewards[i]).Error; err != nil {
			log.Fatalf("Failed to seed reward %q: %v", rewards[i].Title, err)
		}
		log.Printf("Seeded reward %q (%d points)", rewards[i].Title, rewards[i].PointsCost)
	}

	log.Println("Seeding completed")
}
