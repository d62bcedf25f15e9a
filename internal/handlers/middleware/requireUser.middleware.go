package middleware

import (
	"context"

	"betsmith/internal/models"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// UserContextKey is used to store the resolved user in context
type UserContextKey string

const (
	UserKey      UserContextKey = "user"
	UserKeyFiber string         = "User" // Fiber context key (string)

	// UserIDHeader carries the caller identity resolved by the upstream
	// auth gateway. This service trusts it and only resolves the record.
	UserIDHeader = "X-User-ID"
)

// RequireUser resolves the gateway-supplied user ID into a full user record
// and rejects requests from unknown or deactivated users.
func (m *Middleware) RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := logger.New("middleware").TraceFromContext(c.Context()).Function("RequireUser")

		userIDHeader := c.Get(UserIDHeader)
		if userIDHeader == "" {
			log.Info("missing user ID header")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "User identity required",
			})
		}

		userID, err := uuid.Parse(userIDHeader)
		if err != nil {
			log.Info("malformed user ID header", "header", userIDHeader)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid user identity",
			})
		}

		user, err := m.userRepo.GetByID(c.Context(), userID)
		if err != nil {
			log.Info("user not found", "userID", userID, "error", err.Error())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "User not found",
			})
		}

		if !user.IsActive {
			log.Info("deactivated user rejected", "userID", userID)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Account is not active",
			})
		}

		// Store user in Fiber context
		c.Locals(UserKeyFiber, user)

		// Add to Go context for services (preserve trace ID from TraceID middleware)
		ctx := context.WithValue(c.UserContext(), UserKey, user)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// GetUser extracts user from Fiber context
func GetUser(c *fiber.Ctx) *models.User {
	user, ok := c.Locals(UserKeyFiber).(*models.User)
	if !ok {
		return nil
	}
	return user
}
