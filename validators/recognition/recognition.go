package recognitionValidator

import (
	"kudos/middleware"
	"kudos/validators"

	"github.com/gofiber/fiber/v2"
)

type CreateRecognitionRequest struct {
	RecipientID  uint   `json:"recipientId" validate:"required"`
	Message      string `json:"message" validate:"required,max=500"`
	PointsAmount int    `json:"pointsAmount" validate:"required,gte=1,lte=100"`
	IsPrivate    bool   `json:"isPrivate"`
}

type UpdatePrivacyRequest struct {
	IsPrivate *bool `json:"isPrivate" validate:"required"`
}

// Create validates new recognition requests
func Create() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateRecognitionRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.Check(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedRecognition", reqData)
		return c.Next()
	}
}

// UpdatePrivacy validates privacy toggle requests
func UpdatePrivacy() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdatePrivacyRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.Check(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPrivacy", reqData)
		return c.Next()
	}
}
