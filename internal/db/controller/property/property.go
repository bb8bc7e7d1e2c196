// Package property provides CRUD operations for properties (PGs).
package property

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/GoPGManager/GoPGManager/internal/db/dberr"
	"github.com/GoPGManager/GoPGManager/internal/db/models"
)

var (
	// ErrPropertyNotFound is returned when a property is not found.
	ErrPropertyNotFound = errors.New("property not found")
	// ErrPropertyNameEmpty is returned when attempting to create a property with an empty name.
	ErrPropertyNameEmpty = errors.New("property name cannot be empty")
	// ErrPropertyAlreadyExists is returned when the owner already has a property.
	ErrPropertyAlreadyExists = errors.New("owner already has a property")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetByID retrieves a property by its ID.
func GetByID(ctx context.Context, db *gorm.DB, id uint64) (*models.Property, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var p models.Property

	err := db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if dberr.IsNotFound(err) {
		return nil, ErrPropertyNotFound
	}

	if err != nil {
		return nil, dberr.Unavailable(err)
	}

	return &p, nil
}

// GetByOwner retrieves the property administered by ownerID.
func GetByOwner(ctx context.Context, db *gorm.DB, ownerID uint64) (*models.Property, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var p models.Property

	err := db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&p).Error
	if dberr.IsNotFound(err) {
		return nil, ErrPropertyNotFound
	}

	if err != nil {
		return nil, dberr.Unavailable(err)
	}

	return &p, nil
}

// Create creates the property of ownerID. An owner administers exactly one property.
func Create(ctx context.Context, db *gorm.DB, ownerID uint64, name, address string) (*models.Property, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrPropertyNameEmpty
	}

	p := models.Property{
		OwnerID: ownerID,
		Name:    name,
		Address: strings.TrimSpace(address),
	}

	if err := db.WithContext(ctx).Create(&p).Error; err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, ErrPropertyAlreadyExists
		}

		return nil, dberr.Unavailable(err)
	}

	return &p, nil
}
