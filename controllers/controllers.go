package controllers

import (
	"errors"

	"kudos/middleware"
	"kudos/services"

	"github.com/gofiber/fiber/v2"
)

// ServiceErrorResponse maps a service error onto the matching HTTP status.
func ServiceErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotRecognitionOwner):
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, err.Error(), nil)
	case services.IsNotFound(err):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, err.Error(), nil)
	case services.IsClientError(err):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	default:
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
	}
}
