package handlers

import (
	"errors"

	"github.com/anuvad-labs/translation-deploy-backend/internal/logger"
	"github.com/anuvad-labs/translation-deploy-backend/internal/models"
	"github.com/anuvad-labs/translation-deploy-backend/internal/services"
	"github.com/anuvad-labs/translation-deploy-backend/utils"
	"github.com/gofiber/fiber/v2"
)

func Translate(c *fiber.Ctx) error {
	var req models.TranslateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Request body is required")
	}

	if err := utils.Validate.Struct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	if valid, reason := utils.ValidateAPIKey(req.APIKey); !valid {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "API key validation failed: "+reason)
	}

	target := req.TargetLanguage
	if target == "" {
		target = services.DefaultTargetLanguage
	}

	result, err := translator.Translate(c.UserContext(), req.Text, target)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
		}
		logger.Get().WithError(err).Error("Translation failed")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Translation service failed")
	}

	return c.JSON(models.TranslateResponse{
		Success:        true,
		OriginalText:   req.Text,
		TranslatedText: result.TranslatedText,
		SourceLanguage: result.SourceLanguage,
		TargetLanguage: target,
	})
}

func DetectLanguage(c *fiber.Ctx) error {
	var req models.DetectRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Request body is required")
	}

	if err := utils.Validate.Struct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	if valid, reason := utils.ValidateAPIKey(req.APIKey); !valid {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "API key validation failed: "+reason)
	}

	code, err := translator.Detect(c.UserContext(), req.Text)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
		}
		logger.Get().WithError(err).Error("Language detection failed")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Language detection service failed")
	}

	return c.JSON(models.DetectResponse{
		Success:      true,
		Text:         req.Text,
		LanguageCode: code,
	})
}
