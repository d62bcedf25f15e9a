package handlers

import (
	"errors"
	"strings"

	"betsmith/internal/app"
	"betsmith/internal/handlers/middleware"
	"betsmith/internal/services"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/gofiber/fiber/v2"
)

type PromptHandler struct {
	Handler
	prompt *services.PromptService
}

func NewPromptHandler(app app.App, router fiber.Router) *PromptHandler {
	log := logger.New("handlers").File("prompt_handler")
	return &PromptHandler{
		prompt: app.Services.Prompt,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *PromptHandler) Register() {
	prompt := h.router.Group("/prompt", h.middleware.RequireUser())
	prompt.Post("/", h.handlePrompt)
}

func (h *PromptHandler) handlePrompt(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.Context()).Function("handlePrompt")
	user := middleware.GetUser(c)

	var body struct {
		Prompt string `json:"prompt"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if strings.TrimSpace(body.Prompt) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Prompt is required",
		})
	}

	result, err := h.prompt.HandlePrompt(c.Context(), user, body.Prompt)
	if err != nil {
		if errors.Is(err, services.ErrQuotaExceeded) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Daily prompt limit reached",
			})
		}
		_ = log.Err("failed to handle prompt", err, "userID", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to process prompt",
		})
	}

	return c.JSON(result)
}
