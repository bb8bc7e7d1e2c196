package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoPGManager/GoPGManager/internal/auth"
	"github.com/GoPGManager/GoPGManager/internal/capability"
	"github.com/GoPGManager/GoPGManager/internal/db/controller/announcement"
	"github.com/GoPGManager/GoPGManager/internal/db/controller/manager"
	"github.com/GoPGManager/GoPGManager/internal/db/controller/property"
	"github.com/GoPGManager/GoPGManager/internal/db/dberr"
)

// Error kinds returned in the "kind" field of error bodies.
const (
	KindInvalidInput       = "invalid_input"
	KindInvalidImplication = "invalid_implication"
	KindImmutableField     = "immutable_field"
	KindUnsupportedAction  = "unsupported_action"
	KindIdentityNotFound   = "identity_not_found"
	KindNotFound           = "not_found"
	KindDuplicate          = "duplicate"
	KindNotAuthorized      = "not_authorized"
	KindUnauthenticated    = "unauthenticated"
	KindStorageUnavailable = "storage_unavailable"
	KindInternal           = "internal"
)

// ErrInvalidInput is returned when a request body or parameter fails to parse or validate.
var ErrInvalidInput = errors.New("invalid input")

type errorMapping struct {
	target error
	status int
	kind   string
}

// errorMappings are checked in order with errors.Is.
var errorMappings = []errorMapping{ //nolint:gochecknoglobals
	{dberr.ErrStorageUnavailable, fiber.StatusServiceUnavailable, KindStorageUnavailable},
	{ErrInvalidInput, fiber.StatusBadRequest, KindInvalidInput},
	{capability.ErrInvalidImplication, fiber.StatusUnprocessableEntity, KindInvalidImplication},
	{capability.ErrUnsupportedAction, fiber.StatusBadRequest, KindUnsupportedAction},
	{capability.ErrUnknownGroup, fiber.StatusBadRequest, KindInvalidInput},
	{capability.ErrUnknownAction, fiber.StatusBadRequest, KindInvalidInput},
	{manager.ErrImmutableField, fiber.StatusBadRequest, KindImmutableField},
	{manager.ErrNameEmpty, fiber.StatusBadRequest, KindInvalidInput},
	{property.ErrPropertyNameEmpty, fiber.StatusBadRequest, KindInvalidInput},
	{announcement.ErrTitleEmpty, fiber.StatusBadRequest, KindInvalidInput},
	{manager.ErrIdentityNotFound, fiber.StatusNotFound, KindIdentityNotFound},
	{manager.ErrManagerNotFound, fiber.StatusNotFound, KindNotFound},
	{property.ErrPropertyNotFound, fiber.StatusNotFound, KindNotFound},
	{announcement.ErrAnnouncementNotFound, fiber.StatusNotFound, KindNotFound},
	{manager.ErrDuplicateManager, fiber.StatusConflict, KindDuplicate},
	{property.ErrPropertyAlreadyExists, fiber.StatusConflict, KindDuplicate},
	{auth.ErrUserNameOrEmailExists, fiber.StatusConflict, KindDuplicate},
	{auth.ErrNotAuthorized, fiber.StatusForbidden, KindNotAuthorized},
}

// Status returns the HTTP status and error kind for err.
func Status(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.kind
		}
	}

	return fiber.StatusInternalServerError, KindInternal
}

// Error writes err as a JSON error body with the mapped status.
// Server side failures are logged and their details are not exposed.
func Error(c *fiber.Ctx, err error) error {
	status, kind := Status(err)
	message := err.Error()

	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Str("kind", kind).Msg("request failed")

		message = "Internal Server Error"
		if status == fiber.StatusServiceUnavailable {
			message = "Storage unavailable, try again later"
		}
	}

	return c.Status(status).JSON(fiber.Map{"error": message, "kind": kind})
}

// Unauthenticated writes a 401 error body.
func Unauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized", "kind": KindUnauthenticated})
}
