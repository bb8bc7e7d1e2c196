package models

import "time"

// Announcement is a notice published to the guests of a property.
type Announcement struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	PropertyID uint64    `gorm:"not null;index" json:"propertyId"`
	Title      string    `gorm:"size:200;not null" json:"title"`
	Body       string    `gorm:"type:text" json:"body"`
	CreatedBy  uint64    `gorm:"not null" json:"createdBy"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TableName specifies the database table name for the Announcement model.
func (Announcement) TableName() string {
	return "announcements"
}

// All returns every model of the schema in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Property{},
		&Manager{},
		&ManagerRevocation{},
		&Announcement{},
	}
}
