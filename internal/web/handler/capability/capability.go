// Package capability exposes the capability catalogue and the caller's own capabilities.
package capability

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/GoPGManager/GoPGManager/internal/auth"
	"github.com/GoPGManager/GoPGManager/internal/capability"
	"github.com/GoPGManager/GoPGManager/internal/db/controller/manager"
	"github.com/GoPGManager/GoPGManager/internal/db/models"
	"github.com/GoPGManager/GoPGManager/internal/web/handler"
)

const (
	// GroupsPath lists the capability groups.
	GroupsPath = "/capabilities/groups"
	// MePath returns the caller's capabilities on a property.
	MePath = "/me/capabilities"
	// CheckPath evaluates one (group, action) request for the caller.
	CheckPath = MePath + "/check"
	// MembershipsPath lists the properties the caller manages.
	MembershipsPath = "/me/managers"

	queryProperty = "property"
)

// GroupsResponse drives the permission toggles of a manager form.
type GroupsResponse struct {
	Groups   []capability.Descriptor `json:"groups"`
	Defaults capability.Set          `json:"defaults"`
}

// MeResponse is the caller's effective access to one property.
// Clients may use it to hide controls; every request is still checked server side.
type MeResponse struct {
	PropertyID   uint64         `json:"propertyId"`
	Role         auth.Role      `json:"role"`
	ManagerID    string         `json:"managerId,omitempty"`
	Capabilities capability.Set `json:"capabilities"`
}

// CheckResponse is the decision for one request.
type CheckResponse struct {
	Group    capability.Group  `json:"group"`
	Action   capability.Action `json:"action"`
	Decision string            `json:"decision"`
}

// Service is the capability handler service.
type Service struct {
	handler.Service
	auth     *auth.Service
	managers *manager.Directory
}

// Handler is the capability handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init registers the capability routes.
func (s *Service) Init(router fiber.Router, deps *handler.Deps) error {
	if router == nil || deps == nil || deps.Auth == nil || deps.Managers == nil {
		return errors.New(handler.ErrNilDepsFatalLogMsg)
	}

	s.auth = deps.Auth
	s.managers = deps.Managers

	router.Get(GroupsPath, s.Groups)
	router.Get(MePath, s.Me)
	router.Get(CheckPath, s.Check)
	router.Get(MembershipsPath, s.Memberships)

	return nil
}

// Groups returns the catalogue in display order and the default grant.
func (s *Service) Groups(c *fiber.Ctx) error {
	return c.JSON(GroupsResponse{
		Groups:   capability.ListGroups(),
		Defaults: capability.Default(),
	})
}

// Me returns the caller's role and capabilities on ?property=ID.
// Owners get every flag; callers without a relationship get 403.
func (s *Service) Me(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return handler.Unauthenticated(c)
	}

	propertyID, err := handler.QueryID(c, queryProperty)
	if err != nil {
		return handler.Error(c, err)
	}

	access, err := s.auth.Resolve(c.UserContext(), actor.UserID, propertyID)
	if err != nil {
		return handler.Error(c, err)
	}

	resp := MeResponse{PropertyID: propertyID, Role: access.Role}

	switch access.Role {
	case auth.RoleOwner:
	case auth.RoleManager:
		resp.ManagerID = access.Manager.ID.String()
	default:
		return handler.Error(c, auth.ErrNotAuthorized)
	}

	resp.Capabilities = access.Capabilities()

	return c.JSON(resp)
}

// Check evaluates ?group=&action= on ?property= for the caller. A deny is a normal answer, not an error.
func (s *Service) Check(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return handler.Unauthenticated(c)
	}

	propertyID, err := handler.QueryID(c, queryProperty)
	if err != nil {
		return handler.Error(c, err)
	}

	group, err := capability.ParseGroup(c.Query("group"))
	if err != nil {
		return handler.Error(c, err)
	}

	action, err := capability.ParseAction(c.Query("action"))
	if err != nil {
		return handler.Error(c, err)
	}

	decision, err := s.auth.Check(c.UserContext(), actor.UserID, propertyID, group, action)
	if err != nil {
		return handler.Error(c, err)
	}

	return c.JSON(CheckResponse{Group: group, Action: action, Decision: decision.String()})
}

// Memberships returns the caller's manager rows across properties, newest first.
func (s *Service) Memberships(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return handler.Unauthenticated(c)
	}

	rows, err := s.managers.ListForUser(c.UserContext(), actor.UserID)
	if err != nil {
		return handler.Error(c, err)
	}

	if rows == nil {
		rows = []models.Manager{}
	}

	return c.JSON(rows)
}
