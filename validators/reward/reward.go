package rewardValidator

import (
	"kudos/middleware"
	"kudos/validators"

	"github.com/gofiber/fiber/v2"
)

type CreateRewardRequest struct {
	Title         string `json:"title" validate:"required,max=100"`
	Description   string `json:"description" validate:"required,max=500"`
	PointsCost    int    `json:"pointsCost" validate:"required,gte=1"`
	Category      string `json:"category" validate:"required,max=50"`
	ImageURL      string `json:"imageUrl" validate:"omitempty,max=255"`
	IsActive      *bool  `json:"isActive"`
	StockQuantity *int   `json:"stockQuantity" validate:"omitempty,gte=0"`
}

type UpdateRewardRequest struct {
	Title         *string `json:"title" validate:"omitempty,max=100"`
	Description   *string `json:"description" validate:"omitempty,max=500"`
	PointsCost    *int    `json:"pointsCost" validate:"omitempty,gte=1"`
	Category      *string `json:"category" validate:"omitempty,max=50"`
	ImageURL      *string `json:"imageUrl" validate:"omitempty,max=255"`
	IsActive      *bool   `json:"isActive"`
	StockQuantity *int    `json:"stockQuantity" validate:"omitempty,gte=0"`
}

type UpdateRedemptionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING APPROVED FULFILLED CANCELLED"`
}

// Create validates new reward catalog entries
func Create() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateRewardRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.Check(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedReward", reqData)
		return c.Next()
	}
}

// Update validates partial reward updates
func Update() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateRewardRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.Check(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedRewardUpdate", reqData)
		return c.Next()
	}
}

// UpdateRedemptionStatus validates redemption status transitions
func UpdateRedemptionStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateRedemptionStatusRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.Check(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedStatus", reqData)
		return c.Next()
	}
}
