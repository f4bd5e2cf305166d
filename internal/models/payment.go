package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Payment statuses after mapping the gateway vocabulary.
const (
	PaymentStatusPending = "pending"
	PaymentStatusSuccess = "success"
	PaymentStatusFailed  = "failed"
	PaymentStatusExpired = "expired"
)

// Payment bridges local subscription state to the external payment gateway.
// OrderID is the locally generated key the gateway echoes back in webhooks.
type Payment struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount        float64        `gorm:"type:decimal(12,2);not null" json:"amount"`
	Status        string         `gorm:"not null;default:'pending';size:20" json:"status"`
	OrderID       string         `gorm:"not null;size:255;uniqueIndex" json:"order_id"`
	TransactionID string         `gorm:"size:255" json:"transaction_id,omitempty"`
	PaymentType   string         `gorm:"size:50" json:"payment_type,omitempty"`
	Metadata      datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"metadata,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
