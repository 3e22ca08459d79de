package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/garmentdb/internal/config"
	"github.com/localnerve/garmentdb/internal/models"
	"github.com/localnerve/garmentdb/internal/services"
	"github.com/localnerve/garmentdb/internal/types"
	"gorm.io/gorm"
)

const actorKey = "actor"

// Protect validates the Authorizer session cookie and loads the matching
// actor profile into the request context.
func Protect(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !services.IsAuthorizerInitialized() {
			if err := services.InitAuthorizer(cfg, c.Protocol(), c.Hostname()); err != nil {
				return &types.CustomError{
					Code:    fiber.StatusServiceUnavailable,
					Message: fmt.Sprintf("Authorizer unavailable: %v", err),
					Type:    "authentication",
				}
			}
		}

		session := c.Cookies("cookie_session")
		if session == "" {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Authorizer cookie \"cookie_session\" not found",
				Type:    "authentication",
			}
		}

		userID, err := services.ValidateSession(session)
		if err != nil {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: fmt.Sprintf("Invalid session: %v", err),
				Type:    "authentication",
			}
		}

		actor, err := services.GetActor(db, userID)
		if err != nil {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "No actor profile for authenticated user",
				Type:    "authentication",
			}
		}

		c.Locals(actorKey, actor)
		return c.Next()
	}
}

// RequireRoles gates a route to the listed roles. Protect must run first.
func RequireRoles(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := c.Locals(actorKey).(*models.Actor)
		if !ok {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Not authorized, no actor in context",
				Type:    "authentication",
			}
		}

		for _, r := range roles {
			if actor.Role == r {
				return c.Next()
			}
		}

		names := make([]string, len(roles))
		for i, r := range roles {
			names[i] = string(r)
		}
		return types.Forbidden(fmt.Sprintf("Access denied: requires role(s) %s", strings.Join(names, ", ")))
	}
}

// ActorFromCtx returns the actor Protect stored in the request context.
func ActorFromCtx(c *fiber.Ctx) (*models.Actor, bool) {
	actor, ok := c.Locals(actorKey).(*models.Actor)
	return actor, ok
}

// WithActor injects an actor directly, bypassing Authorizer. Test use only.
func WithActor(actor *models.Actor) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(actorKey, actor)
		return c.Next()
	}
}
