package handlers

import (
	"github.com/anuvad-labs/translation-deploy-backend/internal/config"
	"github.com/anuvad-labs/translation-deploy-backend/internal/deploy"
	"github.com/anuvad-labs/translation-deploy-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

var (
	cfg        *config.Config
	translator services.TranslationBackend
	sites      deploy.SiteHost
)

// Init wires the handler package once at startup. The translation backend is
// selected by configuration; both implementations satisfy the same interface.
func Init(c *config.Config) {
	cfg = c

	switch c.Backend {
	case config.BackendLocal:
		translator = services.NewLocalModelBackend(c.LocalModelURL, c.LocalModelName)
	default:
		translator = services.NewSarvamBackend(c.SarvamAPIURL, c.SarvamAPIKey)
	}

	sites = services.NewNetlifyClient(c.NetlifyAPIURL, c.NetlifyPAT)
}

func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
