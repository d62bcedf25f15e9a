package handlers

import (
	"errors"

	"betsmith/internal/app"
	"betsmith/internal/handlers/middleware"
	"betsmith/internal/models"
	"betsmith/internal/repositories"
	"betsmith/internal/services"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PicksHandler struct {
	Handler
	picks *services.PicksService
}

func NewPicksHandler(app app.App, router fiber.Router) *PicksHandler {
	log := logger.New("handlers").File("picks_handler")
	return &PicksHandler{
		picks: app.Services.Picks,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *PicksHandler) Register() {
	picks := h.router.Group("/picks", h.middleware.RequireUser())
	picks.Post("/", h.savePick)
	picks.Get("/", h.listPicks)
	picks.Patch("/:id/status", h.updateStatus)
}

func (h *PicksHandler) savePick(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.Context()).Function("savePick")
	user := middleware.GetUser(c)

	var input services.SavePickInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	pick, err := h.picks.Save(c.Context(), user.ID, input)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		_ = log.Err("failed to save pick", err, "userID", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save pick",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(pick)
}

func (h *PicksHandler) listPicks(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.Context()).Function("listPicks")
	user := middleware.GetUser(c)

	input := services.ListPicksInput{
		Limit:  c.QueryInt("limit"),
		Offset: c.QueryInt("offset"),
	}

	if raw := c.Query("status"); raw != "" {
		status, ok := models.ParsePickStatus(raw)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unknown pick status",
			})
		}
		input.Status = &status
	}

	if raw := c.Query("league"); raw != "" {
		league, ok := models.ParseLeague(raw)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unknown league",
			})
		}
		input.League = &league
	}

	picks, err := h.picks.List(c.Context(), user.ID, input)
	if err != nil {
		_ = log.Err("failed to list picks", err, "userID", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list picks",
		})
	}

	return c.JSON(fiber.Map{
		"picks": picks,
	})
}

func (h *PicksHandler) updateStatus(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.Context()).Function("updateStatus")
	user := middleware.GetUser(c)

	pickID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid pick ID",
		})
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	pick, err := h.picks.UpdateStatus(
		c.Context(),
		user.ID,
		pickID,
		models.PickStatus(body.Status),
	)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		if errors.Is(err, repositories.ErrNotFoundOrNotOwned) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Pick not found",
			})
		}
		_ = log.Err("failed to update pick status", err, "pickID", pickID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update pick status",
		})
	}

	return c.JSON(pick)
}
