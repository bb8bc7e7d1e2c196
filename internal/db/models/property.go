package models

import "time"

// Property is one PG (paying-guest hostel). It is the scoping boundary for all manager access.
type Property struct {
	// ID is the unique identifier for the property.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// OwnerID is the user administering the property. An owner has exactly one property.
	OwnerID uint64 `gorm:"not null;uniqueIndex" json:"ownerId"`
	// Name is the display name of the PG.
	Name string `gorm:"size:150;not null" json:"name"`
	// Address is the postal address of the PG.
	Address string `gorm:"size:255" json:"address,omitempty"`
	// CreatedAt is the timestamp when the property was created (managed by GORM).
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the timestamp when the property was last updated (managed by GORM).
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the database table name for the Property model.
func (Property) TableName() string {
	return "properties"
}
