// Package announcement stores notices published to the guests of a property.
//
// Every operation authorizes the actor through the enforcement boundary before touching rows,
// so handlers cannot reach announcement data without a capability check.
package announcement

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoPGManager/GoPGManager/internal/capability"
	"github.com/GoPGManager/GoPGManager/internal/db/dberr"
	"github.com/GoPGManager/GoPGManager/internal/db/models"
)

var (
	// ErrAnnouncementNotFound is returned when no announcement matches in the property.
	ErrAnnouncementNotFound = errors.New("announcement not found")
	// ErrTitleEmpty is returned when an announcement has no title.
	ErrTitleEmpty = errors.New("announcement title cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Guard authorizes an actor for a capability on a property. A denied request returns an error.
type Guard interface {
	Authorize(ctx context.Context, actorID, propertyID uint64, group capability.Group, action capability.Action) error
}

// Store reads and writes announcements behind a Guard.
type Store struct {
	db    *gorm.DB
	guard Guard
}

// New creates an announcement store.
func New(db *gorm.DB, guard Guard) *Store {
	return &Store{db: db, guard: guard}
}

// List returns the announcements of propertyID, newest first.
func (s *Store) List(ctx context.Context, actorID, propertyID uint64) ([]models.Announcement, error) {
	if s.db == nil {
		return nil, ErrDBNil
	}

	if err := s.guard.Authorize(ctx, actorID, propertyID, capability.Announcements, capability.View); err != nil {
		return nil, err //nolint:wrapcheck
	}

	var out []models.Announcement

	err := s.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("created_at DESC").Order("id DESC").
		Find(&out).Error
	if err != nil {
		return nil, dberr.Unavailable(err)
	}

	return out, nil
}

// Create publishes an announcement to propertyID.
func (s *Store) Create(ctx context.Context, actorID, propertyID uint64, title, body string) (*models.Announcement, error) {
	if s.db == nil {
		return nil, ErrDBNil
	}

	if err := s.guard.Authorize(ctx, actorID, propertyID, capability.Announcements, capability.Manage); err != nil {
		return nil, err //nolint:wrapcheck
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleEmpty
	}

	a := models.Announcement{
		PropertyID: propertyID,
		Title:      title,
		Body:       strings.TrimSpace(body),
		CreatedBy:  actorID,
	}

	if err := s.db.WithContext(ctx).Create(&a).Error; err != nil {
		return nil, dberr.Unavailable(err)
	}

	log.Info().Uint64("property_id", propertyID).Uint64("announcement_id", a.ID).Uint64("user_id", actorID).
		Msg("announcement published")

	return &a, nil
}

// Delete removes announcement id from propertyID.
func (s *Store) Delete(ctx context.Context, actorID, propertyID, id uint64) error {
	if s.db == nil {
		return ErrDBNil
	}

	if err := s.guard.Authorize(ctx, actorID, propertyID, capability.Announcements, capability.Manage); err != nil {
		return err //nolint:wrapcheck
	}

	res := s.db.WithContext(ctx).Where("id = ? AND property_id = ?", id, propertyID).Delete(&models.Announcement{})
	if res.Error != nil {
		return dberr.Unavailable(res.Error)
	}

	if res.RowsAffected == 0 {
		return ErrAnnouncementNotFound
	}

	return nil
}
