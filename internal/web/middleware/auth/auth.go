package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoPGManager/GoPGManager/internal/auth"
	"github.com/GoPGManager/GoPGManager/internal/web/session"
)

const bearerPrefix = "bearer "

// New creates the authentication middleware. It accepts a bearer token issued by tokens or a
// session cookie and stores the auth.Actor in fiber.Locals under auth.LocalsActor.
// Requests without valid credentials are rejected with 401.
func New(tokens *auth.TokenIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := fromBearer(c, tokens)
		if !ok {
			actor, ok = fromSession(c)
		}

		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized", "kind": "unauthenticated"})
		}

		c.Locals(auth.LocalsActor, actor)

		return c.Next()
	}
}

// UserID returns the authenticated user id of the request, 0 if none.
func UserID(c *fiber.Ctx) uint64 {
	actor, _ := auth.ActorFromContext(c)
	return actor.UserID
}

func fromBearer(c *fiber.Ctx, tokens *auth.TokenIssuer) (auth.Actor, bool) {
	header := c.Get(fiber.HeaderAuthorization)
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return auth.Actor{}, false
	}

	userID, err := tokens.Verify(strings.TrimSpace(header[len(bearerPrefix):]))
	if err != nil {
		log.Debug().Err(err).Str("IP", c.IP()).Msg("rejected bearer token")
		return auth.Actor{}, false
	}

	return auth.Actor{UserID: userID}, true
}

func fromSession(c *fiber.Ctx) (auth.Actor, bool) {
	sessionID := c.Cookies(session.CookieName)
	if sessionID == "" {
		return auth.Actor{}, false
	}

	var data session.Data
	if err := data.Read(sessionID); err != nil || data.UserID == 0 {
		return auth.Actor{}, false
	}

	return auth.Actor{UserID: data.UserID, Email: data.Email}, true
}
