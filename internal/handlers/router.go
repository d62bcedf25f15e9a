package handlers

import (
	"betsmith/internal/app"
	"betsmith/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func Router(router fiber.Router, app *app.App) (err error) {
	api := router.Group("/api")
	HealthHandler(api, app.Config)
	NewRecommendationHandler(*app, api).Register()
	NewPicksHandler(*app, api).Register()
	NewPromptHandler(*app, api).Register()

	return nil
}
