package models

import (
	"time"

	"github.com/google/uuid"
)

// Product belongs to exactly one organization. A nil Stock means the product
// does not track inventory.
type Product struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	Name           string    `gorm:"not null;size:255" json:"name"`
	Description    string    `gorm:"size:1000" json:"description,omitempty"`
	Price          float64   `gorm:"type:decimal(12,2);not null" json:"price"`
	SKU            string    `gorm:"size:100" json:"sku,omitempty"`
	Barcode        string    `gorm:"size:100" json:"barcode,omitempty"`
	Stock          *int      `json:"stock"`
	MinStockLevel  int       `gorm:"default:0" json:"min_stock_level"`
	CostPrice      *float64  `gorm:"type:decimal(12,2)" json:"cost_price,omitempty"`
	ImageURL       string    `gorm:"size:500" json:"image_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Organization Organization `gorm:"foreignKey:OrganizationID" json:"-"`
}
