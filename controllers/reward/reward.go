package rewardController

import (
	"kudos/controllers"
	"kudos/database"
	"kudos/middleware"
	"kudos/models"
	"kudos/services"
	"kudos/utils"
	rewardValidator "kudos/validators/reward"

	"github.com/gofiber/fiber/v2"
)

// List returns the reward catalog. Employees see active rewards only;
// admins can pass ?all=true to include deactivated ones.
func List(c *fiber.Ctx) error {
	activeOnly := true
	if c.QueryBool("all", false) {
		role, _ := c.Locals("role").(string)
		if role == models.RoleAdmin {
			activeOnly = false
		}
	}

	rewardService := services.NewRewardService(database.Database.Db)
	rewards, err := rewardService.List(activeOnly)
	if err != nil {
		return controllers.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Rewards fetched successfully!", rewards)
}

// Get returns one reward by ID.
func Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid reward ID!", nil)
	}

	rewardService := services.NewRewardService(database.Database.Db)
	reward, err := rewardService.Get(uint(id))
	if err != nil {
		return controllers.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reward fetched successfully!", reward)
}

// Create adds a reward to the catalog. Admin only.
func Create(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedReward").(*rewardValidator.CreateRewardRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	reward := models.Reward{
		Title:         reqData.Title,
		Description:   reqData.Description,
		PointsCost:    reqData.PointsCost,
		Category:      reqData.Category,
		ImageURL:      reqData.ImageURL,
		IsActive:      true,
		StockQuantity: reqData.StockQuantity,
	}
	if reqData.IsActive != nil {
		reward.IsActive = *reqData.IsActive
	}

	rewardService := services.NewRewardService(database.Database.Db)
	if err := rewardService.Create(&reward); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create reward!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Reward created successfully!", reward)
}

// Update edits a reward. Admin only. Partial: only the provided fields
// change.
func Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid reward ID!", nil)
	}

	reqData, ok := c.Locals("validatedRewardUpdate").(*rewardValidator.UpdateRewardRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	rewardService := services.NewRewardService(database.Database.Db)
	reward, err := rewardService.Get(uint(id))
	if err != nil {
		return controllers.ServiceErrorResponse(c, err)
	}

	if reqData.Title != nil {
		reward.Title = *reqData.Title
	}
	if reqData.Description != nil {
		reward.Description = *reqData.Description
	}
	if reqData.PointsCost != nil {
		reward.PointsCost = *reqData.PointsCost
	}
	if reqData.Category != nil {
		reward.Category = *reqData.Category
	}
	if reqData.ImageURL != nil {
		reward.ImageURL = *reqData.ImageURL
	}
	if reqData.IsActive != nil {
		reward.IsActive = *reqData.IsActive
	}
	if reqData.StockQuantity != nil {
		reward.StockQuantity = reqData.StockQuantity
	}

	if err := rewardService.Save(reward); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update reward!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reward updated successfully!", reward)
}

// Delete removes a reward from the catalog. Admin only. Blocked while
// pending redemptions reference it.
func Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid reward ID!", nil)
	}

	rewardService := services.NewRewardService(database.Database.Db)
	if err := rewardService.Delete(uint(id)); err != nil {
		return controllers.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reward deleted successfully!", nil)
}

// Redeem exchanges points for a reward and returns the pending redemption
// with its pickup code.
func Redeem(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid reward ID!", nil)
	}

	rewardService := services.NewRewardService(database.Database.Db)
	redemption, err := rewardService.Redeem(userID, uint(id))
	if err != nil {
		return controllers.ServiceErrorResponse(c, err)
	}

	utils.SendRedemptionEmail(
		redemption.User.Email,
		redemption.User.DisplayName(),
		redemption.Reward.Title,
		redemption.RedemptionCode,
	)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Reward redeemed successfully!", redemption)
}

// MyRedemptions returns the authenticated user's redemptions, newest first.
func MyRedemptions(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	rewardService := services.NewRewardService(database.Database.Db)
	redemptions, err := rewardService.UserRedemptions(userID)
	if err != nil {
		return controllers.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Redemptions fetched successfully!", redemptions)
}

// AllRedemptions returns every redemption for fulfillment. Admin and
// manager only.
func AllRedemptions(c *fiber.Ctx) error {
	rewardService := services.NewRewardService(database.Database.Db)
	redemptions, err := rewardService.AllRedemptions()
	if err != nil {
		return controllers.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Redemptions fetched successfully!", redemptions)
}

// UpdateRedemptionStatus moves a redemption through its lifecycle. Admin
// and manager only.
func UpdateRedemptionStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid redemption ID!", nil)
	}

	reqData, ok := c.Locals("validatedStatus").(*rewardValidator.UpdateRedemptionStatusRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	rewardService := services.NewRewardService(database.Database.Db)
	redemption, err := rewardService.UpdateStatus(uint(id), models.RedemptionStatus(reqData.Status))
	if err != nil {
		return controllers.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Redemption status updated successfully!", redemption)
}

// Statistics returns catalog and redemption analytics. Admin and manager
// only.
func Statistics(c *fiber.Ctx) error {
	rewardService := services.NewRewardService(database.Database.Db)
	stats, err := rewardService.Statistics()
	if err != nil {
		return controllers.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Statistics fetched successfully!", stats)
}
