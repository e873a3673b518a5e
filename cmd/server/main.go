package main

import (
	"time"

	"github.com/anuvad-labs/translation-deploy-backend/internal/config"
	"github.com/anuvad-labs/translation-deploy-backend/internal/handlers"
	"github.com/anuvad-labs/translation-deploy-backend/internal/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logger.Initialize().Info("No .env file found")
	}

	log := logger.Initialize()
	cfg := config.Load()
	handlers.Init(cfg)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.FrontendURL,
		AllowHeaders: "Origin, Content-Type, Accept, X-API-Key",
		AllowMethods: "GET, POST",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
	}))

	// Routes
	app.Post("/api/translate", handlers.Translate)
	app.Post("/api/detect-language", handlers.DetectLanguage)
	app.Post("/deploy", handlers.Deploy)
	app.Get("/api/health", handlers.Health)

	log.WithField("backend", cfg.Backend).Info("Translation backend selected")
	log.WithField("deployments_enabled", cfg.NetlifyPAT != "").Info("Deployment configuration loaded")

	log.Infof("Server starting on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
