package userValidator

import (
	"kudos/middleware"
	"kudos/validators"

	"github.com/gofiber/fiber/v2"
)

type UpdateProfileRequest struct {
	Email      *string `json:"email" validate:"omitempty,email"`
	FirstName  *string `json:"firstName" validate:"omitempty,max=50"`
	LastName   *string `json:"lastName" validate:"omitempty,max=50"`
	Department *string `json:"department" validate:"omitempty,max=50"`
}

// UpdateProfile validates profile updates
func UpdateProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateProfileRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.Check(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProfile", reqData)
		return c.Next()
	}
}
