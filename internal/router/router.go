package router

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/noah-isme/sis-go-api/internal/config"
	"github.com/noah-isme/sis-go-api/internal/handler"
	"github.com/noah-isme/sis-go-api/internal/middleware"
	"github.com/noah-isme/sis-go-api/internal/observability"
	"github.com/noah-isme/sis-go-api/internal/service"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	DB                *gorm.DB
	Authorizer        service.AuthorizationService
	AuthHandler       *handler.AuthHandler
	SchoolHandler     *handler.SchoolHandler
	StudentHandler    *handler.StudentHandler
	ClassroomHandler  *handler.ClassroomHandler
	EnrollmentHandler *handler.EnrollmentHandler
	SchoolYearHandler *handler.SchoolYearHandler
	RoomHandler       *handler.RoomHandler
	SubjectHandler    *handler.SubjectHandler
	UserHandler       *handler.UserHandler
}

// Register wires the HTTP routes into the fiber application. Staff-facing
// routes sit behind JWT auth; mutating routes additionally require an
// admin-ish role, while reads accept any active staff account.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg, deps.DB))

	jwtProtected := middleware.JWTProtected(cfg.JWTSecret)

	if deps.AuthHandler != nil {
		auth := api.Group("/auth")
		loginLimited := auth.Group("", middleware.RateLimit("login", cfg.LoginRateMax, cfg.LoginRateWindow))
		protected := auth.Group("", jwtProtected)
		deps.AuthHandler.Register(loginLimited, protected)
	}

	adminOnly := middleware.RequireRoles(deps.Authorizer, "admin", "principal", "superadmin")
	staff := middleware.RequireRoles(deps.Authorizer)
	adminWrites := writeGuard(adminOnly)

	if deps.SchoolHandler != nil {
		schools := api.Group("/schools", jwtProtected, staff, adminWrites)
		deps.SchoolHandler.Register(schools)
	}
	if deps.StudentHandler != nil {
		students := api.Group("/students", jwtProtected, staff, adminWrites)
		deps.StudentHandler.Register(students)
	}
	if deps.ClassroomHandler != nil {
		classrooms := api.Group("/classrooms", jwtProtected, staff, adminWrites)
		deps.ClassroomHandler.Register(classrooms)
	}
	if deps.EnrollmentHandler != nil {
		enrollments := api.Group("/enrollments", jwtProtected, staff)
		deps.EnrollmentHandler.Register(enrollments)
	}
	if deps.SchoolYearHandler != nil {
		years := api.Group("/school-years", jwtProtected, staff, adminWrites)
		deps.SchoolYearHandler.Register(years)
	}
	if deps.RoomHandler != nil {
		rooms := api.Group("/rooms", jwtProtected, staff, adminWrites)
		deps.RoomHandler.Register(rooms)
	}
	if deps.SubjectHandler != nil {
		subjects := api.Group("/subjects", jwtProtected, staff, adminWrites)
		deps.SubjectHandler.Register(subjects)
	}
	if deps.UserHandler != nil {
		users := api.Group("/admin/users", jwtProtected, adminOnly)
		deps.UserHandler.Register(users)
	}
}

// writeGuard applies guard to mutating requests only, leaving reads open to
// any authenticated staff account.
func writeGuard(guard fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodGet || c.Method() == fiber.MethodHead {
			return c.Next()
		}

		return guard(c)
	}
}
