package pointsValidator

import (
	"kudos/middleware"
	"kudos/validators"

	"github.com/gofiber/fiber/v2"
)

type AddPointsRequest struct {
	Amount      int    `json:"amount" validate:"required,gte=1"`
	Description string `json:"description" validate:"required,max=255"`
}

type UpdateAllocationRequest struct {
	MonthlyAllocation *int `json:"monthlyAllocation" validate:"required,gte=0"`
}

// AddPoints validates manual admin credits
func AddPoints() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(AddPointsRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.Check(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAddPoints", reqData)
		return c.Next()
	}
}

// UpdateAllocation validates monthly allocation changes
func UpdateAllocation() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateAllocationRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.Check(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAllocation", reqData)
		return c.Next()
	}
}
