package models

import (
	"time"

	"github.com/google/uuid"
)

// Stock adjustment reasons.
const (
	StockReasonSale       = "sale"
	StockReasonPurchase   = "purchase"
	StockReasonAdjustment = "adjustment"
	StockReasonReturn     = "return"
)

// StockHistory is the append-only ledger of inventory quantity changes.
type StockHistory struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	PreviousStock  int       `gorm:"not null" json:"previous_stock"`
	NewStock       int       `gorm:"not null" json:"new_stock"`
	ChangeAmount   int       `gorm:"not null" json:"change_amount"`
	Reason         string    `gorm:"not null;size:20" json:"reason"`
	Notes          string    `gorm:"size:500" json:"notes,omitempty"`
	UserID         uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (StockHistory) TableName() string {
	return "stock_histories"
}
