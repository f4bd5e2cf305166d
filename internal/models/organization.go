package models

import (
	"time"

	"github.com/google/uuid"
)

// Organization is a tenant: an isolated business account owning its own
// products, sales and admin credential. One owner per organization.
type Organization struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name          string    `gorm:"not null;size:255" json:"name"`
	Slug          string    `gorm:"not null;size:255;uniqueIndex" json:"slug"`
	Logo          string    `gorm:"size:500" json:"logo,omitempty"`
	AdminPassword string    `gorm:"not null" json:"-"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	User          User      `gorm:"foreignKey:UserID" json:"-"`
}
