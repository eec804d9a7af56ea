package authRoutes

import (
	authController "kudos/controllers/auth"
	"kudos/middleware"
	authValidator "kudos/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidator.Signup(), authController.Signup)
	authGroup.Post("/login", authValidator.Login(), authController.Login)
	authGroup.Post("/refresh", authValidator.Refresh(), authController.Refresh)
	authGroup.Get("/me", middleware.JWTMiddleware, authController.Me)
}
