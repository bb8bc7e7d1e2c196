package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoPGManager/GoPGManager/internal/db/dberr"
	"github.com/GoPGManager/GoPGManager/internal/db/models"
)

const (
	// LocalsActor is the fiber.Locals key holding the authenticated Actor.
	LocalsActor = "actor"
	// LocalsProperty is the fiber.Locals key holding the owner's *models.Property.
	LocalsProperty = "property"

	kindNotAuthorized   = "not_authorized"
	kindUnauthenticated = "unauthenticated"
)

// Actor is the authenticated caller of a request.
type Actor struct {
	UserID uint64
	Email  string
}

// ActorFromContext returns the authenticated actor stored by the authentication middleware.
func ActorFromContext(c *fiber.Ctx) (Actor, bool) {
	actor, ok := c.Locals(LocalsActor).(Actor)
	if !ok || actor.UserID == 0 {
		return Actor{}, false
	}

	return actor, true
}

func unauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized", "kind": kindUnauthenticated})
}

func forbidden(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"error": "Forbidden: You don't have permission to access this resource",
		"kind":  kindNotAuthorized,
	})
}

func storageUnavailable(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Try again later", "kind": "storage_unavailable"})
}

// RequireOwner creates Fiber middleware that only lets owners through and stores their property in
// fiber.Locals under LocalsProperty.
func RequireOwner(authService *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := ActorFromContext(c)
		if !ok {
			return unauthenticated(c)
		}

		p, err := authService.OwnedProperty(c.UserContext(), actor.UserID)
		if errors.Is(err, ErrNotAuthorized) {
			log.Warn().Uint64("user_id", actor.UserID).Msg("User is not a property owner")
			return forbidden(c)
		}

		if err != nil {
			log.Error().Err(err).Uint64("user_id", actor.UserID).Msg("Failed to load owned property")

			if errors.Is(err, dberr.ErrStorageUnavailable) {
				return storageUnavailable(c)
			}

			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error", "kind": "internal"})
		}

		c.Locals(LocalsProperty, p)

		return c.Next()
	}
}

// PropertyFromContext returns the owner's property stored by RequireOwner.
func PropertyFromContext(c *fiber.Ctx) (*models.Property, bool) {
	p, ok := c.Locals(LocalsProperty).(*models.Property)
	return p, ok && p != nil
}
