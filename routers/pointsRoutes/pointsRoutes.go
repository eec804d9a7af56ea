package pointsRoutes

import (
	pointsController "kudos/controllers/points"
	"kudos/middleware"
	"kudos/models"
	pointsValidator "kudos/validators/points"

	"github.com/gofiber/fiber/v2"
)

func SetupPointsRoutes(app *fiber.App) {
	pointsGroup := app.Group("/points")

	// User routes
	pointsGroup.Get("/balance", middleware.JWTMiddleware, pointsController.Balance)
	pointsGroup.Get("/history", middleware.JWTMiddleware, pointsController.History)

	// Admin routes
	pointsGroup.Get("/statistics", middleware.JWTMiddleware, middleware.RequireRoles(models.RoleAdmin, models.RoleManager), pointsController.Statistics)
	pointsGroup.Post("/allocate", middleware.JWTMiddleware, middleware.RequireRoles(models.RoleAdmin), pointsController.Allocate)
	pointsGroup.Post("/users/:userId/add", pointsValidator.AddPoints(), middleware.JWTMiddleware, middleware.RequireRoles(models.RoleAdmin), pointsController.AddPoints)
	pointsGroup.Put("/users/:userId/allocation", pointsValidator.UpdateAllocation(), middleware.JWTMiddleware, middleware.RequireRoles(models.RoleAdmin), pointsController.UpdateAllocation)
}
