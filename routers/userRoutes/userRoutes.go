package userRoutes

import (
	userController "kudos/controllers/user"
	"kudos/middleware"
	userValidator "kudos/validators/user"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/users")

	userGroup.Get("/", middleware.JWTMiddleware, userController.List)
	userGroup.Get("/search", middleware.JWTMiddleware, userController.Search)
	userGroup.Get("/analytics", middleware.JWTMiddleware, userController.Analytics)
	userGroup.Put("/profile", userValidator.UpdateProfile(), middleware.JWTMiddleware, userController.UpdateProfile)
	userGroup.Post("/avatar", middleware.JWTMiddleware, userController.UploadAvatar)
	userGroup.Get("/:id", middleware.JWTMiddleware, userController.Get)
}
