package pointsController

import (
	"kudos/controllers"
	"kudos/database"
	"kudos/middleware"
	"kudos/models"
	"kudos/services"
	pointsValidator "kudos/validators/points"

	"github.com/gofiber/fiber/v2"
)

// Balance returns the authenticated user's current balance and monthly
// allocation.
func Balance(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	pointsService := services.NewPointsService(database.Database.Db)
	balance, err := pointsService.GetBalance(userID)
	if err != nil {
		return controllers.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Balance fetched successfully!", balance)
}

// History returns the authenticated user's recent ledger entries.
func History(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	limit := c.QueryInt("limit", 50)

	pointsService := services.NewPointsService(database.Database.Db)
	transactions, err := pointsService.History(userID, limit)
	if err != nil {
		return controllers.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Transactions fetched successfully!", transactions)
}

// Statistics returns system-wide points analytics. Admin and manager only.
func Statistics(c *fiber.Ctx) error {
	pointsService := services.NewPointsService(database.Database.Db)
	stats, err := pointsService.Statistics()
	if err != nil {
		return controllers.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Statistics fetched successfully!", stats)
}

// Allocate triggers the monthly allocation batch out of schedule. Admin only.
func Allocate(c *fiber.Ctx) error {
	pointsService := services.NewPointsService(database.Database.Db)
	credited, err := pointsService.RunMonthlyAllocation()
	if err != nil {
		return controllers.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Monthly allocation completed!", fiber.Map{
		"usersCredited": credited,
	})
}

// UpdateAllocation sets a user's monthly points allocation. Admin only.
func UpdateAllocation(c *fiber.Ctx) error {
	id, err := c.ParamsInt("userId")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user ID!", nil)
	}

	reqData, ok := c.Locals("validatedAllocation").(*pointsValidator.UpdateAllocationRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	pointsService := services.NewPointsService(database.Database.Db)
	user, err := pointsService.UpdateMonthlyAllocation(uint(id), *reqData.MonthlyAllocation)
	if err != nil {
		return controllers.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Allocation updated successfully!", user)
}

// AddPoints credits a user outside the normal flows, e.g. a spot bonus.
// Admin only.
func AddPoints(c *fiber.Ctx) error {
	id, err := c.ParamsInt("userId")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user ID!", nil)
	}

	reqData, ok := c.Locals("validatedAddPoints").(*pointsValidator.AddPointsRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	pointsService := services.NewPointsService(database.Database.Db)
	result, err := pointsService.Add(uint(id), reqData.Amount, reqData.Description, models.TransactionTypeEarned, 0)
	if err != nil {
		return controllers.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Points added successfully!", result)
}
