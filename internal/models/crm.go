package models

import (
	"time"

	"gorm.io/datatypes"
)

type Contact struct {
	Base
	UserID     string         `gorm:"type:uuid;index;not null" json:"userId"`
	User       *User          `json:"user,omitempty"`
	Name       string         `gorm:"not null" json:"name" validate:"required"`
	Email      string         `gorm:"not null" json:"email" validate:"required,email"`
	Phone      string         `json:"phone"`
	Company    string         `json:"company"`
	Status     ContactStatus  `gorm:"not null;default:'lead'" json:"status" validate:"omitempty,contact_status"`
	TotalSpend float64        `gorm:"default:0" json:"totalSpend"`
	Tags       datatypes.JSON `gorm:"type:jsonb" json:"tags,omitempty"`
}

// ContactActivity is a timestamped interaction log entry. The user id is
// denormalized from the parent contact so the ownership guard stays a single
// WHERE clause like every other owned entity.
type ContactActivity struct {
	Base
	UserID     string     `gorm:"type:uuid;index;not null" json:"userId"`
	ContactID  string     `gorm:"type:uuid;index;not null" json:"contactId" validate:"required,uuid"`
	Contact    *Contact   `json:"contact,omitempty"`
	Kind       string     `gorm:"not null" json:"kind" validate:"required"` // call, email, meeting, note, purchase
	Note       string     `json:"note"`
	OccurredAt *time.Time `json:"occurredAt,omitempty"`
}
