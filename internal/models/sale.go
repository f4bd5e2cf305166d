package models

import (
	"time"

	"github.com/google/uuid"
)

// Sale is the header of a completed checkout. Sales are created once and only
// ever appended to, never edited.
type Sale struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;index" json:"organization_id"`
	Total          float64    `gorm:"type:decimal(12,2);not null" json:"total"`
	PaymentMethod  string     `gorm:"not null;size:20" json:"payment_method"`
	CustomerName   string     `gorm:"size:255" json:"customer_name,omitempty"`
	CreatedAt      time.Time  `gorm:"index" json:"created_at"`
	Items          []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`

	Organization Organization `gorm:"foreignKey:OrganizationID" json:"-"`
}

// SaleItem snapshots the product price at sale time, so later catalog price
// changes never alter recorded sales.
type SaleItem struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SaleID    uuid.UUID `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Price     float64   `gorm:"type:decimal(12,2);not null" json:"price"`
	Subtotal  float64   `gorm:"type:decimal(12,2);not null" json:"subtotal"`

	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
