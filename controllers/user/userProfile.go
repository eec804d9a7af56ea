package userController

import (
	"errors"

	"kudos/config"
	"kudos/database"
	"kudos/middleware"
	"kudos/models"
	"kudos/services"
	"kudos/utils"
	userValidator "kudos/validators/user"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// List returns all active users in the directory except the caller.
func List(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var users []models.User
	err := database.Database.Db.
		Where("is_active = ? AND id <> ?", true, userID).
		Order("first_name ASC, last_name ASC").
		Find(&users).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", users)
}

// Search finds active users by name or email substring. Used by the
// recognition composer's recipient picker, so results stay short.
func Search(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Query parameter 'q' is required!", nil)
	}

	pattern := "%" + query + "%"
	var users []models.User
	err := database.Database.Db.
		Where("is_active = ?", true).
		Where("first_name LIKE ? OR last_name LIKE ? OR department LIKE ? OR email LIKE ?", pattern, pattern, pattern, pattern).
		Limit(10).
		Find(&users).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", users)
}

// Get returns one user's public profile by ID.
func Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user ID!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_active = ?", id, true).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User fetched successfully!", user)
}

// UpdateProfile updates the authenticated user's own profile fields.
func UpdateProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedProfile").(*userValidator.UpdateProfileRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	if err := database.Database.Db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if reqData.Email != nil && *reqData.Email != user.Email {
		var existing models.User
		err := database.Database.Db.Where("email = ? AND id <> ?", *reqData.Email, userID).First(&existing).Error
		if err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email already registered!", nil)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
		}
		user.Email = *reqData.Email
	}
	if reqData.FirstName != nil {
		user.FirstName = *reqData.FirstName
	}
	if reqData.LastName != nil {
		user.LastName = *reqData.LastName
	}
	if reqData.Department != nil {
		user.Department = *reqData.Department
	}

	if err := database.Database.Db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated successfully!", user)
}

// UploadAvatar stores a new profile picture and records its URL.
func UploadAvatar(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Avatar file is required!", nil)
	}

	fileName, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save avatar!", nil)
	}

	avatarURL := utils.GetFileURL(fileName)
	err = database.Database.Db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("avatar_url", avatarURL).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update avatar!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Avatar uploaded successfully!", fiber.Map{
		"avatarUrl": avatarURL,
	})
}

// Analytics returns the authenticated user's personal dashboard: balance,
// lifetime earned/spent totals, recognition activity and recent ledger
// entries.
func Analytics(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	pointsService := services.NewPointsService(database.Database.Db)
	recognitionService := services.NewRecognitionService(database.Database.Db)

	balance, err := pointsService.GetBalance(userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	var totalEarned, totalSpent int64
	err = database.Database.Db.Model(&models.PointsTransaction{}).
		Where("user_id = ? AND amount > 0", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalEarned).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
	}
	err = database.Database.Db.Model(&models.PointsTransaction{}).
		Where("user_id = ? AND amount < 0", userID).
		Select("COALESCE(SUM(-amount), 0)").
		Scan(&totalSpent).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
	}

	recognitionStats, err := recognitionService.Statistics(userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
	}

	recentActivity, err := pointsService.History(userID, 10)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Analytics fetched successfully!", fiber.Map{
		"balance":        balance,
		"totalEarned":    totalEarned,
		"totalSpent":     totalSpent,
		"recognitions":   recognitionStats,
		"recentActivity": recentActivity,
	})
}
