package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	swagger "github.com/gofiber/swagger"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/breaching/moodix/internal/config"
	"github.com/breaching/moodix/internal/database"
	"github.com/breaching/moodix/internal/handlers"
	"github.com/breaching/moodix/internal/logger"
	"github.com/breaching/moodix/internal/middleware"
	"github.com/breaching/moodix/internal/sanitize"
	"github.com/breaching/moodix/internal/services"
	"github.com/breaching/moodix/internal/types"

	_ "github.com/breaching/moodix/docs/api" // Swagger docs
)

const sessionDuration = 30 * 24 * time.Hour

// @title Moodix Journal API
// @version 1.0.0
// @description Self-hosted personal journal backend with entry sanitization
// @contact.name API Support
// @contact.url https://github.com/breaching/moodix

// @host localhost:5000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name session_id

func main() {
	// Optional .env support; a missing file is not an error
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if cfg.AdminPasswordHash == "" {
		hash, err := services.HashPassword("admin")
		if err != nil {
			zlog.Fatal("failed to hash default admin password", zap.Error(err))
		}
		cfg.AdminPasswordHash = hash
		zlog.Warn("APP_PASSWORD_HASH not set, using default password 'admin'. Change this before exposing the server.")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	if err := database.AutoMigrate(db); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.MaxBodyBytes,
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(compress.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(string) bool { return !cfg.IsProduction() },
		AllowCredentials: true,
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.GlobalRateMax,
		Expiration: time.Hour,
	}))
	app.Use(middleware.OriginCheck(cfg.IsProduction(), zlog))

	// Prometheus metrics
	prometheus := fiberprometheus.New("moodix")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Session store backing cookie auth
	store := session.New(session.Config{
		Expiration:     sessionDuration,
		KeyLookup:      "cookie:session_id",
		CookieHTTPOnly: true,
		CookieSecure:   cfg.IsProduction(),
		CookieSameSite: "Lax",
		KeyGenerator:   uuid.NewString,
	})

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	sanitizer := sanitize.New(sanitize.DefaultLimits())

	authHandler := &handlers.AuthHandler{DB: db, Store: store, Config: cfg, Sanitizer: sanitizer, Log: zlog}
	entryHandler := &handlers.EntryHandler{DB: db, Sanitizer: sanitizer, Log: zlog}
	settingsHandler := &handlers.SettingsHandler{DB: db, Log: zlog}
	exportHandler := &handlers.ExportHandler{DB: db, Log: zlog}
	backupHandler := &handlers.BackupHandler{Config: cfg, Log: zlog}
	adminHandler := &handlers.AdminHandler{DB: db, Log: zlog}
	healthHandler := &handlers.HealthHandler{DB: db, Config: cfg, Log: zlog}

	app.Get("/health", healthHandler.Check)

	api := app.Group("/api")

	// Brute-force protection on the login route only
	loginLimiter := limiter.New(limiter.Config{
		Max:        cfg.LoginRateMax,
		Expiration: 15 * time.Minute,
	})
	api.Post("/login", loginLimiter, authHandler.Login)
	api.Post("/logout", authHandler.Logout)
	api.Get("/check-auth", authHandler.CheckAuth)

	authed := api.Group("", middleware.RequireLogin(store))
	authed.Get("/entries", entryHandler.List)
	authed.Post("/save", entryHandler.Save)
	authed.Delete("/delete/:date", entryHandler.Delete)
	authed.Get("/settings", settingsHandler.Get)
	authed.Post("/settings", settingsHandler.Save)
	authed.Get("/export/json", exportHandler.JSON)
	authed.Get("/export/csv", exportHandler.CSV)
	authed.Get("/export/pdf", exportHandler.PDF)
	authed.Post("/backup/create", backupHandler.Create)

	admin := api.Group("/admin", middleware.RequireAdmin(store, zlog))
	admin.Get("/users", adminHandler.ListUsers)
	admin.Post("/users", adminHandler.CreateUser)
	admin.Get("/users/:id", adminHandler.GetUser)
	admin.Put("/users/:id", adminHandler.UpdateUser)
	admin.Delete("/users/:id", adminHandler.DeleteUser)
	admin.Post("/users/:id/reset-password", adminHandler.ResetPassword)

	// Static frontend with SPA fallback
	if _, err := os.Stat(cfg.StaticDir); err == nil {
		app.Static("/", cfg.StaticDir)
		app.Get("/*", func(c *fiber.Ctx) error {
			return c.SendFile(cfg.StaticDir + "/index.html")
		})
	}

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	startBackupScheduler(cfg, zlog)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-quit
		zlog.Info("gracefully shutting down")
		_ = app.Shutdown()
	}()

	zlog.Info("starting server", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Fatal("server failed", zap.Error(err))
	}

	zlog.Info("server stopped")
}

// startBackupScheduler takes a backup at startup when the newest one is stale,
// then keeps taking daily backups in the background. Only applies to sqlite.
func startBackupScheduler(cfg *config.Config, zlog *zap.Logger) {
	if cfg.DBType != "sqlite" {
		return
	}

	if services.ShouldBackup(cfg) {
		if err := services.CreateBackup(cfg, zlog); err != nil {
			zlog.Error("startup backup failed", zap.Error(err))
		}
	}

	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := services.CreateBackup(cfg, zlog); err != nil {
				zlog.Error("scheduled backup failed", zap.Error(err))
			}
		}
	}()
}

// customErrorHandler renders uncaught errors in the standard envelope.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	switch e := err.(type) {
	case *types.CustomError:
		code = e.Code
		message = e.Message
		errorType = e.Type
	case *fiber.Error:
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
