package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoPGManager/GoPGManager/internal/capability"
	"github.com/GoPGManager/GoPGManager/internal/db/controller/manager"
	"github.com/GoPGManager/GoPGManager/internal/db/controller/property"
	"github.com/GoPGManager/GoPGManager/internal/db/models"
)

// Role is the relationship of an actor to one property.
type Role string

const (
	// RoleNone means the actor has no relationship to the property.
	RoleNone Role = ""
	// RoleOwner is the unconstrained administrator of the property.
	RoleOwner Role = "owner"
	// RoleManager is a capability-constrained delegate.
	RoleManager Role = "manager"
)

// Access is the resolved relationship of an actor to a property.
type Access struct {
	PropertyID uint64
	Role       Role
	// Manager is the persisted manager row when Role is RoleManager.
	Manager *models.Manager
}

// Capabilities returns the set the actor may exercise: every flag for owners, the stored set for
// managers and nothing otherwise. A stored set breaking the manage => view rule grants nothing.
func (a Access) Capabilities() capability.Set {
	switch a.Role {
	case RoleOwner:
		return capability.Full()
	case RoleManager:
		caps, err := capability.Validate(a.Manager.Capabilities)
		if err != nil {
			log.Error().Err(err).Str("manager_id", a.Manager.ID.String()).Uint64("property_id", a.PropertyID).
				Msg("stored capability set is invalid, denying")

			return capability.Set{}
		}

		return caps
	default:
		return capability.Set{}
	}
}

// Service is the enforcement boundary: every property-scoped read or write from an authenticated
// actor is decided here, always against persisted rows and never against client claims.
type Service struct {
	db       *gorm.DB
	managers *manager.Directory
}

// NewService creates a new auth service.
func NewService(db *gorm.DB, managers *manager.Directory) *Service {
	return &Service{db: db, managers: managers}
}

// Resolve returns how actorID relates to propertyID.
func (s *Service) Resolve(ctx context.Context, actorID, propertyID uint64) (Access, error) {
	access := Access{PropertyID: propertyID, Role: RoleNone}

	p, err := property.GetByID(ctx, s.db, propertyID)
	if errors.Is(err, property.ErrPropertyNotFound) {
		return access, nil
	}

	if err != nil {
		return access, fmt.Errorf("failed to resolve property: %w", err)
	}

	if p.OwnerID == actorID {
		access.Role = RoleOwner
		return access, nil
	}

	m, err := s.managers.GetForUser(ctx, actorID, propertyID)
	if errors.Is(err, manager.ErrManagerNotFound) {
		return access, nil
	}

	if err != nil {
		return access, fmt.Errorf("failed to resolve manager: %w", err)
	}

	access.Role = RoleManager
	access.Manager = m

	return access, nil
}

// Check decides whether actorID may perform action on group within propertyID.
// Owners are always allowed, actors without a relationship are denied, managers are evaluated
// against their persisted capability set, which is re-validated on every call.
// Malformed requests (manage on Analytics) are errors for every actor.
func (s *Service) Check(
	ctx context.Context,
	actorID, propertyID uint64,
	group capability.Group,
	action capability.Action,
) (capability.Decision, error) {
	if _, err := (capability.Set{}).Get(group, action); err != nil {
		return capability.Deny, err
	}

	access, err := s.Resolve(ctx, actorID, propertyID)
	if err != nil {
		return capability.Deny, err
	}

	decision, err := capability.Authorize(access.Capabilities(), group, action)
	if err != nil {
		return capability.Deny, err //nolint:wrapcheck
	}

	observeDecision(group, action, access.Role, decision)

	event := log.Debug()
	if !decision {
		event = log.Warn()
	}

	event.Uint64("user_id", actorID).Uint64("property_id", propertyID).
		Str("group", group.String()).Str("action", string(action)).
		Str("role", roleLabel(access.Role)).Stringer("decision", decision).
		Msg("capability check")

	return decision, nil
}

// Authorize is Check for data-access callers: a deny becomes ErrNotAuthorized.
func (s *Service) Authorize(
	ctx context.Context,
	actorID, propertyID uint64,
	group capability.Group,
	action capability.Action,
) error {
	decision, err := s.Check(ctx, actorID, propertyID, group, action)
	if err != nil {
		return err
	}

	if !decision {
		return fmt.Errorf("%w: %s %s", ErrNotAuthorized, action, group)
	}

	return nil
}

// OwnedProperty returns the property administered by actorID, or ErrNotAuthorized if there is none.
func (s *Service) OwnedProperty(ctx context.Context, actorID uint64) (*models.Property, error) {
	p, err := property.GetByOwner(ctx, s.db, actorID)
	if errors.Is(err, property.ErrPropertyNotFound) {
		return nil, fmt.Errorf("%w: no property owned", ErrNotAuthorized)
	}

	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return p, nil
}

func roleLabel(r Role) string {
	if r == RoleNone {
		return "none"
	}

	return string(r)
}
