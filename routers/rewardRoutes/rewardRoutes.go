package rewardRoutes

import (
	rewardController "kudos/controllers/reward"
	"kudos/middleware"
	"kudos/models"
	rewardValidator "kudos/validators/reward"

	"github.com/gofiber/fiber/v2"
)

func SetupRewardRoutes(app *fiber.App) {
	rewardGroup := app.Group("/rewards")

	// User routes
	rewardGroup.Get("/", middleware.JWTMiddleware, rewardController.List)
	rewardGroup.Get("/redemptions/mine", middleware.JWTMiddleware, rewardController.MyRedemptions)
	rewardGroup.Post("/:id/redeem", middleware.JWTMiddleware, rewardController.Redeem)

	// Admin routes
	rewardGroup.Post("/", rewardValidator.Create(), middleware.JWTMiddleware, middleware.RequireRoles(models.RoleAdmin), rewardController.Create)
	rewardGroup.Get("/statistics", middleware.JWTMiddleware, middleware.RequireRoles(models.RoleAdmin, models.RoleManager), rewardController.Statistics)
	rewardGroup.Get("/redemptions", middleware.JWTMiddleware, middleware.RequireRoles(models.RoleAdmin, models.RoleManager), rewardController.AllRedemptions)
	rewardGroup.Patch("/redemptions/:id/status", rewardValidator.UpdateRedemptionStatus(), middleware.JWTMiddleware, middleware.RequireRoles(models.RoleAdmin, models.RoleManager), rewardController.UpdateRedemptionStatus)
	rewardGroup.Get("/:id", middleware.JWTMiddleware, rewardController.Get)
	rewardGroup.Put("/:id", rewardValidator.Update(), middleware.JWTMiddleware, middleware.RequireRoles(models.RoleAdmin), rewardController.Update)
	rewardGroup.Delete("/:id", middleware.JWTMiddleware, middleware.RequireRoles(models.RoleAdmin), rewardController.Delete)
}
