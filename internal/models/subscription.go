package models

import (
	"time"

	"github.com/google/uuid"
)

// Stored subscription states. The externally reported status (free/trial/pro)
// is derived from these plus the stored timestamps at read time.
const (
	SubscriptionStatusTrial  = "trial"
	SubscriptionStatusActive = "active"
)

// Subscription plans.
const (
	PlanFree = "free"
	PlanPro  = "pro"
)

// UserSubscription holds per-user entitlement state. Exactly one row exists
// per user; it is lazily created on first query and mutated in place on
// trial start, payment success and expiry detection.
type UserSubscription struct {
	ID                 uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID             uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Status             string     `gorm:"not null;default:'trial';size:20" json:"status"`
	Plan               string     `gorm:"not null;default:'free';size:50" json:"plan"`
	IsTrialUsed        bool       `gorm:"default:false" json:"is_trial_used"`
	TrialStartDate     *time.Time `json:"trial_start_date"`
	TrialEndDate       *time.Time `json:"trial_end_date"`
	CurrentPeriodStart *time.Time `json:"current_period_start"`
	CurrentPeriodEnd   *time.Time `json:"current_period_end"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
