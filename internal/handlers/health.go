package handlers

import (
	"time"

	"github.com/anuvad-labs/translation-deploy-backend/internal/models"
	"github.com/gofiber/fiber/v2"
)

func Health(c *fiber.Ctx) error {
	return c.JSON(models.HealthResponse{
		Status:    "healthy",
		Service:   "translation-service",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
