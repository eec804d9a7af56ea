package recognitionController

import (
	"kudos/controllers"
	"kudos/database"
	"kudos/middleware"
	"kudos/services"
	"kudos/utils"
	recognitionValidator "kudos/validators/recognition"

	"github.com/gofiber/fiber/v2"
)

// Create sends a recognition with points to a colleague.
func Create(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedRecognition").(*recognitionValidator.CreateRecognitionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	recognitionService := services.NewRecognitionService(database.Database.Db)
	recognition, err := recognitionService.Create(userID, services.CreateRecognitionInput{
		RecipientID:  reqData.RecipientID,
		Message:      reqData.Message,
		PointsAmount: reqData.PointsAmount,
		IsPrivate:    reqData.IsPrivate,
	})
	if err != nil {
		return controllers.ServiceErrorResponse(c, err)
	}

	utils.SendRecognitionEmail(
		recognition.Recipient.Email,
		recognition.Recipient.DisplayName(),
		recognition.Sender.DisplayName(),
		recognition.PointsAmount,
	)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Recognition sent successfully!", recognition)
}

// Feed returns the public recognition feed, newest first.
func Feed(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	recognitionService := services.NewRecognitionService(database.Database.Db)
	page, err := recognitionService.Feed(limit, offset)
	if err != nil {
		return controllers.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Feed fetched successfully!", page)
}

// Mine returns recognitions the authenticated user sent or received.
// ?type=sent|received narrows the listing, default is both.
func Mine(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	kind := c.Query("type")
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	recognitionService := services.NewRecognitionService(database.Database.Db)
	page, err := recognitionService.ForUser(userID, kind, limit, offset)
	if err != nil {
		return controllers.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Recognitions fetched successfully!", page)
}

// Statistics returns platform-wide recognition analytics. Admin and
// manager only.
func Statistics(c *fiber.Ctx) error {
	recognitionService := services.NewRecognitionService(database.Database.Db)
	stats, err := recognitionService.Statistics(0)
	if err != nil {
		return controllers.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Statistics fetched successfully!", stats)
}

// Get returns one recognition. Private recognitions stay hidden from
// everyone but their sender and recipient.
func Get(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid recognition ID!", nil)
	}

	recognitionService := services.NewRecognitionService(database.Database.Db)
	recognition, err := recognitionService.Get(uint(id), userID)
	if err != nil {
		return controllers.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Recognition fetched successfully!", recognition)
}

// UpdatePrivacy toggles a recognition's visibility. Sender only.
func UpdatePrivacy(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid recognition ID!", nil)
	}

	reqData, ok := c.Locals("validatedPrivacy").(*recognitionValidator.UpdatePrivacyRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	recognitionService := services.NewRecognitionService(database.Database.Db)
	recognition, err := recognitionService.UpdatePrivacy(uint(id), userID, *reqData.IsPrivate)
	if err != nil {
		return controllers.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Privacy updated successfully!", recognition)
}

// Delete removes a recognition from the feed. Sender only. Points already
// transferred stay with the recipient.
func Delete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid recognition ID!", nil)
	}

	recognitionService := services.NewRecognitionService(database.Database.Db)
	if err := recognitionService.Delete(uint(id), userID); err != nil {
		return controllers.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Recognition deleted successfully!", nil)
}
