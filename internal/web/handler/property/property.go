// Package property provides the owner's property setup endpoints.
package property

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoPGManager/GoPGManager/internal/auth"
	propertyctl "github.com/GoPGManager/GoPGManager/internal/db/controller/property"
	"github.com/GoPGManager/GoPGManager/internal/web/handler"
)

// Path is the path of the property endpoints.
const Path = "/property"

// CreateRequest is the body of a property setup.
type CreateRequest struct {
	Name    string `json:"name"    validate:"required,max=200"`
	Address string `json:"address" validate:"omitempty,max=500"`
}

// Service is the property handler service.
type Service struct {
	handler.Service
	db *gorm.DB
}

// Handler is the property handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init registers the property routes.
func (s *Service) Init(router fiber.Router, deps *handler.Deps) error {
	if router == nil || deps == nil || deps.DB == nil {
		return errors.New(handler.ErrNilDepsFatalLogMsg)
	}

	s.db = deps.DB

	router.Get(Path, s.Get)
	router.Post(Path, s.Create)

	return nil
}

// Get returns the property owned by the caller.
func (s *Service) Get(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return handler.Unauthenticated(c)
	}

	p, err := propertyctl.GetByOwner(c.UserContext(), s.db, actor.UserID)
	if err != nil {
		return handler.Error(c, err)
	}

	return c.JSON(p)
}

// Create sets up the caller's property; the caller becomes its owner.
func (s *Service) Create(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return handler.Unauthenticated(c)
	}

	var req CreateRequest
	if err := handler.Bind(c, &req); err != nil {
		return handler.Error(c, err)
	}

	p, err := propertyctl.Create(c.UserContext(), s.db, actor.UserID, req.Name, req.Address)
	if err != nil {
		return handler.Error(c, err)
	}

	log.Info().Uint64("user_id", actor.UserID).Uint64("property_id", p.ID).Msg("property created")

	return c.Status(fiber.StatusCreated).JSON(p)
}
