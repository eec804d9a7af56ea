package recognitionRoutes

import (
	recognitionController "kudos/controllers/recognition"
	"kudos/middleware"
	"kudos/models"
	recognitionValidator "kudos/validators/recognition"

	"github.com/gofiber/fiber/v2"
)

func SetupRecognitionRoutes(app *fiber.App) {
	recognitionGroup := app.Group("/recognitions")

	recognitionGroup.Post("/", recognitionValidator.Create(), middleware.JWTMiddleware, recognitionController.Create)
	recognitionGroup.Get("/feed", middleware.JWTMiddleware, recognitionController.Feed)
	recognitionGroup.Get("/mine", middleware.JWTMiddleware, recognitionController.Mine)
	recognitionGroup.Get("/statistics", middleware.JWTMiddleware, middleware.RequireRoles(models.RoleAdmin, models.RoleManager), recognitionController.Statistics)
	recognitionGroup.Get("/:id", middleware.JWTMiddleware, recognitionController.Get)
	recognitionGroup.Patch("/:id/privacy", recognitionValidator.UpdatePrivacy(), middleware.JWTMiddleware, recognitionController.UpdatePrivacy)
	recognitionGroup.Delete("/:id", middleware.JWTMiddleware, recognitionController.Delete)
}
