package main

import (
	"log"

	"kudos/config"
	"kudos/database"
	authRoutes "kudos/routers/authRoutes"
	pointsRoutes "kudos/routers/pointsRoutes"
	recognitionRoutes "kudos/routers/recognitionRoutes"
	rewardRoutes "kudos/routers/rewardRoutes"
	userRoutes "kudos/routers/userRoutes"
	"kudos/services"
	"kudos/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	// Monthly points allocation runs on the 1st of every month
	if config.AppConfig.EnableAllocationCron {
		utils.InitializeAllocationScheduler(services.NewPointsService(database.Database.Db))
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PATCH,PUT,DELETE",  // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded avatar images
	app.Static("/uploads", config.AppConfig.UploadDir)

	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)
	pointsRoutes.SetupPointsRoutes(app)
	recognitionRoutes.SetupRecognitionRoutes(app)
	rewardRoutes.SetupRewardRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
