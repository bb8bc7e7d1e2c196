package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GoPGManager/GoPGManager/internal/capability"
)

// Manager is one person's delegated, capability-constrained access to exactly one property.
// UserID and PropertyID together are unique; the storage index is the guard against duplicates.
type Manager struct {
	// ID is the server-assigned identifier.
	ID uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	// PropertyID is the property this manager is scoped to. Immutable.
	PropertyID uint64 `gorm:"not null;uniqueIndex:idx_manager_user_property;index" json:"propertyId"`
	// UserID references the manager's registered account. Immutable.
	UserID uint64 `gorm:"not null;uniqueIndex:idx_manager_user_property" json:"userId"`
	// Name is the display name chosen by the owner.
	Name string `gorm:"size:100;not null" json:"name"`
	// Email is the address the manager was provisioned by. Immutable.
	Email string `gorm:"size:255;not null" json:"email"`
	// Phone is an optional contact number.
	Phone *string `gorm:"size:32" json:"phone"`
	// CreatedBy is the owner that provisioned the manager.
	CreatedBy uint64 `gorm:"not null" json:"createdBy"`
	// Capabilities are the 15 permission flags.
	Capabilities capability.Set `gorm:"embedded" json:"capabilities"`
	// CreatedAt is the timestamp when the manager was created (managed by GORM).
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	// UpdatedAt is the timestamp when the manager was last updated (managed by GORM).
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the database table name for the Manager model.
func (Manager) TableName() string {
	return "managers"
}

// BeforeCreate assigns a new id if none was set.
func (m *Manager) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}

// ManagerRevocation records the removal of a manager. Rows are never deleted.
type ManagerRevocation struct {
	// ID is the unique identifier for the revocation entry.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// ManagerID is the id of the removed manager.
	ManagerID uuid.UUID `gorm:"type:char(36);not null;index" json:"managerId"`
	// PropertyID is the property the manager was scoped to.
	PropertyID uint64 `gorm:"not null;index" json:"propertyId"`
	// UserID is the account that lost access.
	UserID uint64 `gorm:"not null" json:"userId"`
	// RevokedBy is the owner that removed the manager.
	RevokedBy uint64 `gorm:"not null" json:"revokedBy"`
	// CreatedAt is the time of removal (managed by GORM).
	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the database table name for the ManagerRevocation model.
func (ManagerRevocation) TableName() string {
	return "manager_revocations"
}
