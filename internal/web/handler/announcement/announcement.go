// Package announcement provides the property announcement endpoints.
// Authorization happens in the announcement store, not in this package.
package announcement

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/GoPGManager/GoPGManager/internal/auth"
	announcementctl "github.com/GoPGManager/GoPGManager/internal/db/controller/announcement"
	"github.com/GoPGManager/GoPGManager/internal/web/handler"
)

const (
	// Path is the base path of the announcement endpoints.
	Path = "/properties/:property/announcements"

	paramProperty = "property"
	paramID       = "id"
)

// CreateRequest is the body of a new announcement.
type CreateRequest struct {
	Title string `json:"title" validate:"required,max=200"`
	Body  string `json:"body"  validate:"max=5000"`
}

// Service is the announcement handler service.
type Service struct {
	handler.Service
	store *announcementctl.Store
}

// Handler is the announcement handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init registers the announcement routes.
func (s *Service) Init(router fiber.Router, deps *handler.Deps) error {
	if router == nil || deps == nil || deps.Announcements == nil {
		return errors.New(handler.ErrNilDepsFatalLogMsg)
	}

	s.store = deps.Announcements

	router.Route(Path, func(r fiber.Router) {
		r.Get(handler.RouterRootPath, s.List)
		r.Post(handler.RouterRootPath, s.Create)
		r.Delete("/:"+paramID, s.Delete)
	})

	return nil
}

// List returns the announcements of the property.
func (s *Service) List(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return handler.Unauthenticated(c)
	}

	propertyID, err := handler.ParamID(c, paramProperty)
	if err != nil {
		return handler.Error(c, err)
	}

	list, err := s.store.List(c.UserContext(), actor.UserID, propertyID)
	if err != nil {
		return handler.Error(c, err)
	}

	return c.JSON(list)
}

// Create publishes an announcement.
func (s *Service) Create(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return handler.Unauthenticated(c)
	}

	propertyID, err := handler.ParamID(c, paramProperty)
	if err != nil {
		return handler.Error(c, err)
	}

	var req CreateRequest
	if err = handler.Bind(c, &req); err != nil {
		return handler.Error(c, err)
	}

	a, err := s.store.Create(c.UserContext(), actor.UserID, propertyID, req.Title, req.Body)
	if err != nil {
		return handler.Error(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(a)
}

// Delete removes an announcement.
func (s *Service) Delete(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return handler.Unauthenticated(c)
	}

	propertyID, err := handler.ParamID(c, paramProperty)
	if err != nil {
		return handler.Error(c, err)
	}

	id, err := handler.ParamID(c, paramID)
	if err != nil {
		return handler.Error(c, err)
	}

	if err = s.store.Delete(c.UserContext(), actor.UserID, propertyID, id); err != nil {
		return handler.Error(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
