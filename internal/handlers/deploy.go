package handlers

import (
	"errors"
	"strings"

	"github.com/anuvad-labs/translation-deploy-backend/internal/deploy"
	"github.com/anuvad-labs/translation-deploy-backend/internal/logger"
	"github.com/anuvad-labs/translation-deploy-backend/internal/models"
	"github.com/anuvad-labs/translation-deploy-backend/internal/services"
	"github.com/anuvad-labs/translation-deploy-backend/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func Deploy(c *fiber.Ctx) error {
	log := logger.Get().WithField("job", uuid.NewString())
	log.Info("Deployment request received")

	apiKey := c.FormValue("api_key")
	if apiKey == "" {
		apiKey = c.Get("X-API-Key")
	}
	if valid, reason := utils.ValidateAPIKey(apiKey); !valid {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "API key validation failed: "+reason)
	}

	fileHeader, err := c.FormFile("zip_file")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "No zip file provided")
	}
	if fileHeader.Filename == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "No selected file")
	}

	if strings.TrimSpace(cfg.NetlifyPAT) == "" {
		log.Error("Netlify PAT not configured in environment variables")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Server is not configured for deployments.")
	}

	upload, err := fileHeader.Open()
	if err != nil {
		log.WithError(err).Error("Failed to open uploaded file")
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "No zip file provided")
	}
	defer upload.Close()

	result, err := deploy.Run(c.UserContext(), upload, sites, log)
	if err != nil {
		return deployError(c, err, log)
	}

	return c.JSON(models.DeployResponse{
		Success:  true,
		Message:  "Deployment successful. Site is processing and will be live shortly.",
		URL:      result.URL,
		SiteID:   result.SiteID,
		DeployID: result.DeployID,
	})
}

func deployError(c *fiber.Ctx, err error, log *logrus.Entry) error {
	var provErr *services.ProviderError
	switch {
	case errors.Is(err, deploy.ErrBadArchive):
		log.WithError(err).Error("Invalid zip file provided")
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid zip file provided")
	case errors.As(err, &provErr):
		// The provider's own status code is passed through verbatim.
		log.WithError(err).Error("Netlify API error")
		return c.Status(provErr.StatusCode).JSON(fiber.Map{
			"error":   "Failed to deploy to Netlify.",
			"details": provErr.Body,
		})
	default:
		log.WithError(err).Error("Deployment failed")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Deployment failed: "+err.Error())
	}
}
