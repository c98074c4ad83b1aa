package router_test

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/sis-go-api/internal/config"
	"github.com/noah-isme/sis-go-api/internal/handler"
	"github.com/noah-isme/sis-go-api/internal/models"
	"github.com/noah-isme/sis-go-api/internal/repository"
	"github.com/noah-isme/sis-go-api/internal/router"
	"github.com/noah-isme/sis-go-api/internal/service"
)

const routerTestSecret = "router-test-secret"

func setupRouterApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.School{}, &models.User{}, &models.RoleGrant{}, &models.Student{}))

	logger := zerolog.Nop()
	userRepo := repository.NewUserRepository(db)
	studentService := service.NewStudentService(
		repository.NewStudentRepository(db),
		repository.NewSchoolRepository(db),
		logger,
	)

	app := fiber.New()
	router.Register(app, config.Config{AppName: "SIS API", JWTSecret: routerTestSecret}, router.Dependencies{
		DB:             db,
		Authorizer:     service.NewAuthorizationService(userRepo, logger),
		StudentHandler: handler.NewStudentHandler(studentService, logger),
	})

	return app, db
}

func seedGrantedUser(t *testing.T, db *gorm.DB, email, role string) string {
	t.Helper()
	user := models.User{
		Email:        email,
		PasswordHash: "x",
		FirstName:    "Ruth",
		LastName:     "Okafor",
		Status:       models.StatusActive,
	}
	require.NoError(t, db.Create(&user).Error)
	grant := models.RoleGrant{UserID: user.ID, Role: models.Role(role), Status: models.StatusActive}
	require.NoError(t, db.Create(&grant).Error)

	token, _, err := service.JWTIssuer{Secret: routerTestSecret}.Issue(user, time.Hour)
	require.NoError(t, err)
	return token
}

func TestStudentWritesRejectedWithoutAdminRole(t *testing.T) {
	app, db := setupRouterApp(t)

	school := models.School{Name: "Maple Elementary", Timezone: "UTC"}
	require.NoError(t, db.Create(&school).Error)
	token := seedGrantedUser(t, db, "teacher@maple.test", "Teacher")

	body := fmt.Sprintf(`{"school_id":%d,"first_name":"Alice","last_name":"Nguyen"}`, school.ID)
	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/students", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.Student{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestStudentWritesAllowedForAdmin(t *testing.T) {
	app, db := setupRouterApp(t)

	school := models.School{Name: "Maple Elementary", Timezone: "UTC"}
	require.NoError(t, db.Create(&school).Error)
	token := seedGrantedUser(t, db, "admin@maple.test", "Admin_Principal")

	body := fmt.Sprintf(`{"school_id":%d,"first_name":"Alice","last_name":"Nguyen"}`, school.ID)
	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/students", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestStudentReadsOpenToAnyStaff(t *testing.T) {
	app, db := setupRouterApp(t)
	token := seedGrantedUser(t, db, "teacher@maple.test", "Teacher")

	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/students", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestStudentRoutesRejectAnonymous(t *testing.T) {
	app, _ := setupRouterApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/students", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
