package handlers

import (
	"strings"

	"betsmith/internal/app"
	"betsmith/internal/handlers/middleware"
	"betsmith/internal/models"
	"betsmith/internal/services"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/gofiber/fiber/v2"
)

type RecommendationHandler struct {
	Handler
	regeneration *services.RegenerationService
	app          app.App
}

func NewRecommendationHandler(app app.App, router fiber.Router) *RecommendationHandler {
	log := logger.New("handlers").File("recommendation_handler")
	return &RecommendationHandler{
		regeneration: app.Services.Regeneration,
		app:          app,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *RecommendationHandler) Register() {
	recommendations := h.router.Group("/recommendations", h.middleware.RequireUser())
	recommendations.Get("/", h.getRecommendations)
	recommendations.Get("/:league", h.getLeagueRecommendations)
	recommendations.Post("/regenerate", h.regenerate)
}

func (h *RecommendationHandler) getRecommendations(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.Context()).Function("getRecommendations")
	user := middleware.GetUser(c)

	recommendations, err := h.app.Repos.Recommendation.GetForUser(
		c.Context(),
		h.app.DB.SQL,
		user.ID,
	)
	if err != nil {
		_ = log.Err("failed to get recommendations", err, "userID", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get recommendations",
		})
	}

	return c.JSON(fiber.Map{
		"recommendations": recommendations,
	})
}

func (h *RecommendationHandler) getLeagueRecommendations(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.Context()).Function("getLeagueRecommendations")
	user := middleware.GetUser(c)

	league, ok := models.ParseLeague(c.Params("league"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown league",
		})
	}

	recommendations, err := h.app.Repos.Recommendation.GetForUserAndLeague(
		c.Context(),
		h.app.DB.SQL,
		user.ID,
		league,
	)
	if err != nil {
		_ = log.Err("failed to get league recommendations", err, "userID", user.ID, "league", league)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get recommendations",
		})
	}

	return c.JSON(fiber.Map{
		"recommendations": recommendations,
	})
}

// regenerate triggers an on-demand cycle for the caller. The optional
// leagues query param narrows the cycle, for example ?leagues=NBA,NHL.
func (h *RecommendationHandler) regenerate(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.Context()).Function("regenerate")
	user := middleware.GetUser(c)

	leagues, err := parseLeaguesParam(c.Query("leagues"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	report, err := h.regeneration.RegenerateUser(c.Context(), user, leagues)
	if err != nil {
		_ = log.Err("regeneration cycle failed", err, "userID", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to regenerate recommendations",
		})
	}

	return c.JSON(report)
}

func parseLeaguesParam(raw string) ([]models.League, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	leagues := make([]models.League, 0, len(parts))
	for _, part := range parts {
		league, ok := models.ParseLeague(strings.TrimSpace(part))
		if !ok {
			return nil, fiber.NewError(fiber.StatusBadRequest, "unknown league: "+part)
		}
		leagues = append(leagues, league)
	}

	return leagues, nil
}
