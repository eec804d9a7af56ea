package middleware

import (
	"net/http/httptest"
	"testing"

	"kudos/database"
	"kudos/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRoleTest(t *testing.T) (*fiber.App, *models.User, *models.User) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	database.Database = database.DbInstance{Db: db}

	admin := models.User{
		Email: "admin@test.local", Password: "hashed",
		FirstName: "Ada", LastName: "Admin",
		Role: models.RoleAdmin, IsActive: true,
	}
	employee := models.User{
		Email: "emp@test.local", Password: "hashed",
		FirstName: "Eve", LastName: "Employee",
		Role: models.RoleEmployee, IsActive: true,
	}
	require.NoError(t, db.Create(&admin).Error)
	require.NoError(t, db.Create(&employee).Error)

	app := fiber.New()
	app.Get("/admin-only", JWTMiddleware, RequireRoles(models.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	return app, &admin, &employee
}

func requestAs(t *testing.T, app *fiber.App, user *models.User) int {
	t.Helper()

	token, err := GenerateJWT(user.ID, user.DisplayName(), user.Role, user.Email)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestRequireRolesAllowsMatchingRole(t *testing.T) {
	app, admin, _ := setupRoleTest(t)
	assert.Equal(t, fiber.StatusOK, requestAs(t, app, admin))
}

func TestRequireRolesRejectsOtherRoles(t *testing.T) {
	app, _, employee := setupRoleTest(t)
	assert.Equal(t, fiber.StatusForbidden, requestAs(t, app, employee))
}

func TestRequireRolesChecksLiveRecordNotToken(t *testing.T) {
	app, admin, _ := setupRoleTest(t)

	// A demoted user keeps an ADMIN token until it expires; the guard must
	// trust the database, not the claim.
	require.NoError(t, database.Database.Db.Model(admin).Update("role", models.RoleEmployee).Error)
	assert.Equal(t, fiber.StatusForbidden, requestAs(t, app, admin))

	require.NoError(t, database.Database.Db.Model(admin).Update("role", models.RoleAdmin).Error)
	require.NoError(t, database.Database.Db.Model(admin).Update("is_active", false).Error)
	assert.Equal(t, fiber.StatusUnauthorized, requestAs(t, app, admin))
}
