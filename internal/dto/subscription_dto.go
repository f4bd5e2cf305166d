package dto

import "time"

// SubscriptionStatusResponse reports the externally visible entitlement:
// status is one of free, trial or pro.
type SubscriptionStatusResponse struct {
	Status             string     `json:"status"`
	Plan               string     `json:"plan"`
	IsTrialAvailable   bool       `json:"is_trial_available"`
	IsTrialExpired     bool       `json:"is_trial_expired,omitempty"`
	TrialStartDate     *time.Time `json:"trial_start_date"`
	TrialEndDate       *time.Time `json:"trial_end_date"`
	CurrentPeriodStart *time.Time `json:"current_period_start,omitempty"`
	CurrentPeriodEnd   *time.Time `json:"current_period_end"`
}

type SubscriptionActionRequest struct {
	Action string `json:"action"`
}

type UpgradeResponse struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
	OrderID     string `json:"order_id"`
}

type ReconcileRequest struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

type PaymentStatusResponse struct {
	Status    string    `json:"status"`
	OrderID   string    `json:"order_id"`
	Timestamp time.Time `json:"timestamp"`
}
