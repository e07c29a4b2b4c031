package main

import (
	"context"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	_ "officetrack/docs" // swagger docs

	"officetrack/internal/auth"
	"officetrack/internal/cache"
	"officetrack/internal/config"
	"officetrack/internal/db"
	"officetrack/internal/handler"
	"officetrack/internal/model"
	"officetrack/internal/notify"
	"officetrack/internal/repository"
	"officetrack/internal/router"
	"officetrack/internal/service"
	"officetrack/pkg/logger"
)

// @title OfficeTrack API
// @version 1.0
// @description Task, announcement, file sharing, approval, and geofenced attendance tracking for a small office.
// @host localhost:8080
// @BasePath /api
// @schemes http
func main() {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	log := logger.Get()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Task{},
		&model.Announcement{},
		&model.File{},
		&model.Attendance{},
		&model.Approval{},
		&model.ActivityLog{},
	); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	loc, err := cfg.Office.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("office timezone")
	}
	lateCutoff, err := config.ParseClock(cfg.Office.LateCutoff)
	if err != nil {
		log.Fatal().Err(err).Msg("late cutoff")
	}
	checkoutOpen, err := config.ParseClock(cfg.Office.CheckoutOpen)
	if err != nil {
		log.Fatal().Err(err).Msg("checkout open")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	announcementRepo := repository.NewAnnouncementRepository(gormDB)
	fileRepo := repository.NewFileRepository(gormDB)
	attendanceRepo := repository.NewAttendanceRepository(gormDB)
	approvalRepo := repository.NewApprovalRepository(gormDB)
	activityRepo := repository.NewActivityRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	sessionStore := auth.NewSessionStore(cacheClient)

	notifier := notify.NewWhatsAppNotifier(cfg.WhatsApp.Token, cfg.WhatsApp.PhoneID)

	// Initialize services
	activityService := service.NewActivityService(activityRepo, loc, log)
	authService := service.NewAuthService(userRepo, jwtService, sessionStore)
	employeeService := service.NewEmployeeService(userRepo, taskRepo, activityService)
	taskService := service.NewTaskService(taskRepo, userRepo, activityService, notifier, loc, log)
	announcementService := service.NewAnnouncementService(announcementRepo, activityService)
	fileService := service.NewFileService(fileRepo, activityService, cfg.UploadDir)
	attendanceService := service.NewAttendanceService(attendanceRepo, service.Office{
		Lat:          cfg.Office.Lat,
		Lng:          cfg.Office.Lng,
		RadiusMeters: cfg.Office.RadiusMeters,
		Loc:          loc,
		LateCutoff:   lateCutoff,
		CheckoutOpen: checkoutOpen,
	})
	approvalService := service.NewApprovalService(approvalRepo, userRepo, activityService, loc)
	feedService := service.NewFeedService(userRepo, announcementRepo, fileRepo, taskRepo, approvalRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, jwtService, sessionStore)
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	taskHandler := handler.NewTaskHandler(taskService)
	announcementHandler := handler.NewAnnouncementHandler(announcementService)
	fileHandler := handler.NewFileHandler(fileService)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService)
	approvalHandler := handler.NewApprovalHandler(approvalService)
	activityHandler := handler.NewActivityHandler(activityService, feedService)

	e := echo.New()
	e.HideBanner = true

	// Register routes
	router.Register(
		e,
		cfg,
		sessionStore,
		authHandler,
		employeeHandler,
		taskHandler,
		announcementHandler,
		fileHandler,
		attendanceHandler,
		approvalHandler,
		activityHandler,
	)

	addr := ":" + cfg.ServerPort
	log.Info().Str("addr", addr).Msg("starting server")
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server start")
	}
}
