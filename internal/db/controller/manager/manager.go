// Package manager provides the lifecycle of manager records scoped to one property:
// provisioning, update, revocation and listing.
package manager

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoPGManager/GoPGManager/internal/capability"
	"github.com/GoPGManager/GoPGManager/internal/db/dberr"
	"github.com/GoPGManager/GoPGManager/internal/db/models"
)

const (
	whereID                = "id = ?"
	whereUserAndProperty   = "user_id = ? AND property_id = ?"
	ownedPropertiesSubject = "property_id IN (?)"
)

// IdentityResolver resolves an email to a registered account.
// Implementations return ErrIdentityNotFound (wrapped) when no account exists.
type IdentityResolver interface {
	ResolveEmail(ctx context.Context, email string) (uint64, error)
}

// CreateInput is the request to provision a manager.
type CreateInput struct {
	Name  string `json:"name"  validate:"required,min=1,max=100"`
	Email string `json:"email" validate:"required,email,max=255"`
	Phone string `json:"phone" validate:"omitempty,max=32"`
	// Capabilities is optional; Default() is applied when nil.
	Capabilities *capability.Set `json:"capabilities"`
}

// UpdateInput is a patch of a manager. Nil fields are left untouched.
// Email and PropertyID exist only to be rejected.
type UpdateInput struct {
	Name         *string         `json:"name"         validate:"omitempty,min=1,max=100"`
	Phone        *string         `json:"phone"        validate:"omitempty,max=32"`
	Email        *string         `json:"email"`
	PropertyID   *uint64         `json:"propertyId"`
	Capabilities *capability.Set `json:"capabilities"`
}

// Directory manages manager rows.
type Directory struct {
	db         *gorm.DB
	identities IdentityResolver
}

// New creates a manager directory.
func New(db *gorm.DB, identities IdentityResolver) *Directory {
	return &Directory{db: db, identities: identities}
}

// ownedBy selects the ids of properties owned by ownerID.
func (d *Directory) ownedBy(tx *gorm.DB, ownerID uint64) *gorm.DB {
	return tx.Model(&models.Property{}).Select("id").Where("owner_id = ?", ownerID)
}

// Create provisions a manager for propertyID. The caller must already be authorized to manage managers
// of the property.
func (d *Directory) Create(ctx context.Context, propertyID, ownerID uint64, in CreateInput) (*models.Manager, error) {
	if d.db == nil {
		return nil, ErrDBNil
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrNameEmpty
	}

	caps := capability.Default()

	if in.Capabilities != nil {
		validated, err := capability.Validate(*in.Capabilities)
		if err != nil {
			return nil, err
		}

		caps = validated
	}

	email := models.NormalizeEmail(in.Email)

	userID, err := d.identities.ResolveEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	m := models.Manager{
		PropertyID:   propertyID,
		UserID:       userID,
		Name:         name,
		Email:        email,
		Phone:        optional(in.Phone),
		CreatedBy:    ownerID,
		Capabilities: caps,
	}

	// the unique index on (user_id, property_id) decides duplicates
	if err = d.db.WithContext(ctx).Create(&m).Error; err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, ErrDuplicateManager
		}

		return nil, dberr.Unavailable(err)
	}

	log.Info().Str("manager_id", m.ID.String()).Uint64("property_id", propertyID).Uint64("user_id", userID).
		Int("granted", capability.CountGranted(caps)).Msg("manager created")

	return &m, nil
}

// Update applies a patch to a manager of the owner's property.
// A capability set replaces the stored one as a whole; it is validated first and a failed
// validation leaves the stored row untouched.
func (d *Directory) Update(ctx context.Context, ownerID uint64, managerID uuid.UUID, in UpdateInput) (*models.Manager, error) {
	if d.db == nil {
		return nil, ErrDBNil
	}

	switch {
	case in.Email != nil:
		return nil, fmt.Errorf("%w: email", ErrImmutableField)
	case in.PropertyID != nil:
		return nil, fmt.Errorf("%w: property", ErrImmutableField)
	}

	updates := make(map[string]interface{})

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, ErrNameEmpty
		}

		updates["name"] = name
	}

	if in.Capabilities != nil {
		caps, err := capability.Validate(*in.Capabilities)
		if err != nil {
			return nil, err
		}

		for column, value := range columns(caps) {
			updates[column] = value
		}
	}

	if in.Phone != nil {
		updates["phone"] = optional(*in.Phone)
	}

	tx := d.db.WithContext(ctx)

	if len(updates) > 0 {
		result := tx.Model(&models.Manager{}).
			Where(whereID, managerID).
			Where(ownedPropertiesSubject, d.ownedBy(tx, ownerID)).
			Updates(updates)
		if result.Error != nil {
			return nil, dberr.Unavailable(result.Error)
		}

		if result.RowsAffected == 0 {
			return nil, ErrManagerNotFound
		}

		log.Info().Str("manager_id", managerID.String()).Uint64("owner_id", ownerID).
			Bool("capabilities", in.Capabilities != nil).Msg("manager updated")
	}

	return d.Get(ctx, ownerID, managerID)
}

// Remove deletes a manager of the owner's property and revokes all of its access immediately.
// Removing an id that was removed before succeeds; an id that never existed returns ErrManagerNotFound.
func (d *Directory) Remove(ctx context.Context, ownerID uint64, managerID uuid.UUID) error {
	if d.db == nil {
		return ErrDBNil
	}

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m models.Manager

		err := tx.Where(whereID, managerID).
			Where(ownedPropertiesSubject, d.ownedBy(tx, ownerID)).
			First(&m).Error

		if dberr.IsNotFound(err) {
			return d.checkRevoked(tx, ownerID, managerID)
		}

		if err != nil {
			return dberr.Unavailable(err)
		}

		if err = tx.Where(whereID, m.ID).Delete(&models.Manager{}).Error; err != nil {
			return dberr.Unavailable(err)
		}

		revocation := models.ManagerRevocation{
			ManagerID:  m.ID,
			PropertyID: m.PropertyID,
			UserID:     m.UserID,
			RevokedBy:  ownerID,
		}

		if err = tx.Create(&revocation).Error; err != nil {
			return dberr.Unavailable(err)
		}

		log.Info().Str("manager_id", m.ID.String()).Uint64("property_id", m.PropertyID).
			Uint64("user_id", m.UserID).Msg("manager removed")

		return nil
	})
	if err != nil {
		return err //nolint:wrapcheck
	}

	return nil
}

// checkRevoked turns a missing manager into success when it was removed before.
func (d *Directory) checkRevoked(tx *gorm.DB, ownerID uint64, managerID uuid.UUID) error {
	var count int64

	err := tx.Model(&models.ManagerRevocation{}).
		Where("manager_id = ?", managerID).
		Where(ownedPropertiesSubject, d.ownedBy(tx, ownerID)).
		Count(&count).Error
	if err != nil {
		return dberr.Unavailable(err)
	}

	if count == 0 {
		return ErrManagerNotFound
	}

	return nil
}

// Get returns one manager of the owner's property.
func (d *Directory) Get(ctx context.Context, ownerID uint64, managerID uuid.UUID) (*models.Manager, error) {
	if d.db == nil {
		return nil, ErrDBNil
	}

	var m models.Manager

	tx := d.db.WithContext(ctx)

	err := tx.Where(whereID, managerID).
		Where(ownedPropertiesSubject, d.ownedBy(tx, ownerID)).
		First(&m).Error
	if dberr.IsNotFound(err) {
		return nil, ErrManagerNotFound
	}

	if err != nil {
		return nil, dberr.Unavailable(err)
	}

	return &m, nil
}

// GetForUser returns the manager row of userID on propertyID. This is the row the enforcement
// boundary evaluates and the one a logged-in manager reads to gate its UI.
func (d *Directory) GetForUser(ctx context.Context, userID, propertyID uint64) (*models.Manager, error) {
	if d.db == nil {
		return nil, ErrDBNil
	}

	var m models.Manager

	err := d.db.WithContext(ctx).Where(whereUserAndProperty, userID, propertyID).First(&m).Error
	if dberr.IsNotFound(err) {
		return nil, ErrManagerNotFound
	}

	if err != nil {
		return nil, dberr.Unavailable(err)
	}

	return &m, nil
}

// ListForUser returns every manager row of userID across properties, newest first.
func (d *Directory) ListForUser(ctx context.Context, userID uint64) ([]models.Manager, error) {
	if d.db == nil {
		return nil, ErrDBNil
	}

	var managers []models.Manager

	if err := d.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Find(&managers).Error; err != nil {
		return nil, dberr.Unavailable(err)
	}

	return managers, nil
}

// List returns the managers of a property, newest first.
func (d *Directory) List(ctx context.Context, propertyID uint64) ([]models.Manager, error) {
	if d.db == nil {
		return nil, ErrDBNil
	}

	var managers []models.Manager

	if err := d.db.WithContext(ctx).Where("property_id = ?", propertyID).
		Order("created_at DESC").Order("id").Find(&managers).Error; err != nil {
		return nil, dberr.Unavailable(err)
	}

	return managers, nil
}

// Filter keeps the managers whose name or email contains query, case-insensitively.
// An empty query keeps everything.
func Filter(managers []models.Manager, query string) []models.Manager {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return managers
	}

	out := make([]models.Manager, 0, len(managers))

	for _, m := range managers {
		if strings.Contains(strings.ToLower(m.Name), query) || strings.Contains(strings.ToLower(m.Email), query) {
			out = append(out, m)
		}
	}

	return out
}

// columns maps a capability set to its persisted columns.
func columns(s capability.Set) map[string]interface{} {
	out := make(map[string]interface{}, len(capability.ListGroups())*2) //nolint:mnd

	for _, g := range capability.ListGroups() {
		view, _ := s.Get(g.Group, capability.View)
		out[g.ViewKey] = view

		if g.HasManage() {
			manage, _ := s.Get(g.Group, capability.Manage)
			out[g.ManageKey] = manage
		}
	}

	return out
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	return &s
}
