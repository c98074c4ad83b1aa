package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sis-go-api/internal/config"
	"github.com/noah-isme/sis-go-api/internal/database"
	"github.com/noah-isme/sis-go-api/internal/handler"
	"github.com/noah-isme/sis-go-api/internal/middleware"
	"github.com/noah-isme/sis-go-api/internal/models"
	"github.com/noah-isme/sis-go-api/internal/repository"
	"github.com/noah-isme/sis-go-api/internal/router"
	"github.com/noah-isme/sis-go-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.School{},
		&models.SchoolYear{},
		&models.Room{},
		&models.Subject{},
		&models.Classroom{},
		&models.Student{},
		&models.Enrollment{},
		&models.User{},
		&models.RoleGrant{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	natsConn, err := database.ConnectNATS(cfg.NATSURL)
	if err != nil {
		log.Fatalf("failed to connect to nats: %v", err)
	}
	if natsConn != nil {
		defer natsConn.Close()
	}

	schoolRepo := repository.NewSchoolRepository(db)
	schoolYearRepo := repository.NewSchoolYearRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	classroomRepo := repository.NewClassroomRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	homeroomRepo := repository.NewHomeroomRepository(db)
	userRepo := repository.NewUserRepository(db)

	rosterCache := service.NewRosterCache(redisClient, cfg.RosterCacheTTL, logger)
	publisher := service.NewEventPublisher(natsConn, cfg.EventSubject, logger)
	hasher := service.BcryptHasher{}

	authService := service.NewAuthService(userRepo, hasher, service.JWTIssuer{Secret: cfg.JWTSecret}, cfg.TokenTTL, logger)
	authorizer := service.NewAuthorizationService(userRepo, logger)
	schoolService := service.NewSchoolService(schoolRepo, logger)
	schoolYearService := service.NewSchoolYearService(schoolYearRepo, enrollmentRepo, logger)
	roomService := service.NewRoomService(roomRepo, schoolRepo, logger)
	subjectService := service.NewSubjectService(subjectRepo, logger)
	classroomService := service.NewClassroomService(classroomRepo, schoolRepo, rosterCache, logger)
	studentService := service.NewStudentService(studentRepo, schoolRepo, logger)
	enrollmentService := service.NewEnrollmentService(homeroomRepo, enrollmentRepo, publisher, rosterCache, cfg.StoreTimeout, logger)
	userService := service.NewUserService(userRepo, hasher, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{
		Logger:       &logger,
		AllowOrigins: cfg.CORSAllowOrigins,
	})
	router.Register(app, cfg, router.Dependencies{
		DB:                db,
		Authorizer:        authorizer,
		AuthHandler:       handler.NewAuthHandler(authService, logger),
		SchoolHandler:     handler.NewSchoolHandler(schoolService, logger),
		StudentHandler:    handler.NewStudentHandler(studentService, logger),
		ClassroomHandler:  handler.NewClassroomHandler(classroomService, logger),
		EnrollmentHandler: handler.NewEnrollmentHandler(enrollmentService, logger),
		SchoolYearHandler: handler.NewSchoolYearHandler(schoolYearService, logger),
		RoomHandler:       handler.NewRoomHandler(roomService, logger),
		SubjectHandler:    handler.NewSubjectHandler(subjectService, logger),
		UserHandler:       handler.NewUserHandler(userService, logger),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
