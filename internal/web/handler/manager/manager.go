// Package manager provides the owner's manager administration endpoints.
package manager

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/GoPGManager/GoPGManager/internal/auth"
	"github.com/GoPGManager/GoPGManager/internal/capability"
	managerctl "github.com/GoPGManager/GoPGManager/internal/db/controller/manager"
	"github.com/GoPGManager/GoPGManager/internal/db/models"
	"github.com/GoPGManager/GoPGManager/internal/web/handler"
)

const (
	// Path is the base path of the manager endpoints.
	Path = "/managers"

	paramID = "id"
)

// Item is a manager in a listing.
type Item struct {
	models.Manager
	PermissionCount int `json:"permissionCount"`
}

// ListResponse is the manager listing of the owner's property.
type ListResponse struct {
	PropertyID uint64 `json:"propertyId"`
	Total      int    `json:"total"`
	Managers   []Item `json:"managers"`
}

// Service is the manager handler service.
type Service struct {
	handler.Service
	managers *managerctl.Directory
}

// Handler is the manager handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init registers the manager routes. All of them are restricted to the property owner.
func (s *Service) Init(router fiber.Router, deps *handler.Deps) error {
	if router == nil || deps == nil || deps.Auth == nil || deps.Managers == nil {
		return errors.New(handler.ErrNilDepsFatalLogMsg)
	}

	s.managers = deps.Managers

	owner := auth.RequireOwner(deps.Auth)

	router.Route(Path, func(r fiber.Router) {
		r.Get(handler.RouterRootPath, owner, s.List)
		r.Post(handler.RouterRootPath, owner, s.Create)
		r.Put("/:"+paramID, owner, s.Update)
		r.Delete("/:"+paramID, owner, s.Delete)
	})

	return nil
}

// List returns the managers of the owner's property, newest first, filtered by ?search=.
func (s *Service) List(c *fiber.Ctx) error {
	p, ok := auth.PropertyFromContext(c)
	if !ok {
		return handler.Error(c, auth.ErrNotAuthorized)
	}

	managers, err := s.managers.List(c.UserContext(), p.ID)
	if err != nil {
		return handler.Error(c, err)
	}

	managers = managerctl.Filter(managers, c.Query("search"))

	items := make([]Item, 0, len(managers))
	for _, m := range managers {
		items = append(items, Item{Manager: m, PermissionCount: capability.CountGranted(m.Capabilities)})
	}

	return c.JSON(ListResponse{PropertyID: p.ID, Total: len(items), Managers: items})
}

// Create provisions a manager for a registered account.
func (s *Service) Create(c *fiber.Ctx) error {
	actor, _ := auth.ActorFromContext(c)

	p, ok := auth.PropertyFromContext(c)
	if !ok {
		return handler.Error(c, auth.ErrNotAuthorized)
	}

	var in managerctl.CreateInput
	if err := handler.Bind(c, &in); err != nil {
		return handler.Error(c, err)
	}

	m, err := s.managers.Create(c.UserContext(), p.ID, actor.UserID, in)
	if err != nil {
		return handler.Error(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(m)
}

// Update patches name, phone or capabilities of a manager.
func (s *Service) Update(c *fiber.Ctx) error {
	actor, _ := auth.ActorFromContext(c)

	id, err := parseID(c)
	if err != nil {
		return handler.Error(c, err)
	}

	var in managerctl.UpdateInput
	if err = handler.Bind(c, &in); err != nil {
		return handler.Error(c, err)
	}

	m, err := s.managers.Update(c.UserContext(), actor.UserID, id, in)
	if err != nil {
		return handler.Error(c, err)
	}

	return c.JSON(m)
}

// Delete revokes a manager. Repeating it succeeds.
func (s *Service) Delete(c *fiber.Ctx) error {
	actor, _ := auth.ActorFromContext(c)

	id, err := parseID(c)
	if err != nil {
		return handler.Error(c, err)
	}

	if err = s.managers.Remove(c.UserContext(), actor.UserID, id); err != nil {
		return handler.Error(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(paramID))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s", handler.ErrInvalidInput, paramID)
	}

	return id, nil
}
