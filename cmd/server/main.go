// main.go
//
// Orbit: lightweight multi-platform analytics and update-check service
// Copyright (c) 2026 The Orbit Authors
//
// This file is part of orbit-server.
// orbit-server is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// orbit-server is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with orbit-server.
// If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"

	"github.com/orbithq/orbit-server/internal/config"
	"github.com/orbithq/orbit-server/internal/database"
	"github.com/orbithq/orbit-server/internal/github"
	"github.com/orbithq/orbit-server/internal/handlers"
	"github.com/orbithq/orbit-server/internal/middleware"
	"github.com/orbithq/orbit-server/internal/services"
	"github.com/orbithq/orbit-server/internal/types"
	"github.com/orbithq/orbit-server/internal/utils"

	_ "github.com/orbithq/orbit-server/docs/api" // Swagger docs
)

// @title Orbit API
// @version 1.0.0
// @description Lightweight multi-platform analytics and update-check service
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/orbithq/orbit-server

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// @securityDefinitions.apikey AdminKeyAuth
// @in header
// @name X-Admin-Key

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Release fetcher shared by the manual trigger and the scheduled sweep
	releases := github.NewClient(cfg.GithubToken)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Content-Type, X-API-Key, X-Admin-Key",
	}))

	// Prometheus metrics
	prometheus := fiberprometheus.New("orbit")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "timestamp": time.Now().UnixMilli()})
	})

	// Create handlers
	clientHandler := &handlers.ClientHandler{DB: db}
	manageHandler := &handlers.ManageHandler{DB: db}
	adminHandler := &handlers.AdminHandler{DB: db, Fetcher: releases, SyncLimit: cfg.SyncReleaseLimit}

	// Client routes: public, app-id existence is the only gate
	v1 := app.Group("/v1/:app_id", middleware.RequireApp(db))
	v1.Get("/version", clientHandler.CheckVersion)
	v1.All("/version", utils.MethodNotAllowedResponse)
	v1.Post("/event", clientHandler.TrackEvent)
	v1.All("/event", utils.MethodNotAllowedResponse)
	v1.Post("/feedback", clientHandler.SubmitFeedback)
	v1.All("/feedback", utils.MethodNotAllowedResponse)

	// Management routes: per-app API key
	manage := app.Group("/manage", middleware.AuthAPIKey(db))
	manage.Get("/stats", manageHandler.Stats)
	manage.All("/stats", utils.MethodNotAllowedResponse)
	manage.Post("/version", manageHandler.CreateVersion)
	manage.All("/version", utils.MethodNotAllowedResponse)
	manage.Get("/feedbacks", manageHandler.ListFeedbacks)
	manage.All("/feedbacks", utils.MethodNotAllowedResponse)
	manage.Get("/app", manageHandler.AppInfo)
	manage.All("/app", utils.MethodNotAllowedResponse)

	// Admin routes: shared dashboard key
	admin := app.Group("/admin", middleware.AuthAdmin(cfg.AdminKey))
	admin.Get("/apps", adminHandler.ListApps)
	admin.Post("/apps", adminHandler.CreateApp)
	admin.All("/apps", utils.MethodNotAllowedResponse)
	admin.Get("/apps/:app_id", adminHandler.GetApp)
	admin.Patch("/apps/:app_id", adminHandler.UpdateApp)
	admin.Delete("/apps/:app_id", adminHandler.DeleteApp)
	admin.All("/apps/:app_id", utils.MethodNotAllowedResponse)
	admin.Get("/apps/:app_id/stats", adminHandler.AppStats)
	admin.All("/apps/:app_id/stats", utils.MethodNotAllowedResponse)
	admin.Get("/apps/:app_id/feedbacks", adminHandler.AppFeedbacks)
	admin.All("/apps/:app_id/feedbacks", utils.MethodNotAllowedResponse)
	admin.Delete("/apps/:app_id/feedbacks/:feedback_id", adminHandler.DeleteFeedback)
	admin.All("/apps/:app_id/feedbacks/:feedback_id", utils.MethodNotAllowedResponse)
	admin.Get("/apps/:app_id/versions", adminHandler.ListVersions)
	admin.Post("/apps/:app_id/versions", adminHandler.CreateVersion)
	admin.All("/apps/:app_id/versions", utils.MethodNotAllowedResponse)
	admin.Post("/apps/:app_id/sync-github", adminHandler.SyncGithub)
	admin.All("/apps/:app_id/sync-github", utils.MethodNotAllowedResponse)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return utils.NotFoundResponse(c, "Not found")
	})

	// Scheduled release-sync sweep
	if cfg.SyncInterval > 0 {
		stop := services.StartSyncScheduler(db, releases, cfg.SyncInterval, cfg.SyncReleaseLimit)
		defer stop()
		log.Printf("Release sync sweep every %s", cfg.SyncInterval)
	}

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler converts stray errors into the uniform envelope.
// Handlers normally respond directly; this catches panics surfaced by
// recover and fiber-level routing errors.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var apiErr *types.APIError
	var fiberErr *fiber.Error
	if errors.As(err, &apiErr) {
		code = apiErr.Code
		message = apiErr.Message
	} else if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	return utils.ErrorResponse(c, message, code)
}
