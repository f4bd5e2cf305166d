package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tokapos/tokapos-backend/internal/config"
	"github.com/tokapos/tokapos-backend/internal/dto"
	"github.com/tokapos/tokapos-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
	ErrGatewayUnavailable   = errors.New("payment gateway request failed")
)

// PaymentService bridges local subscription state to the external gateway:
// it creates checkout tokens and reconciles asynchronous status notifications
// with stored payment records.
type PaymentService struct {
	db            *gorm.DB
	cfg           *config.Config
	gateway       *MidtransClient
	subscriptions *SubscriptionService
}

func NewPaymentService(db *gorm.DB, cfg *config.Config, gateway *MidtransClient, subscriptions *SubscriptionService) *PaymentService {
	return &PaymentService{db: db, cfg: cfg, gateway: gateway, subscriptions: subscriptions}
}

// InitiateUpgrade creates a pending payment record and returns the gateway's
// checkout token for the pro plan.
func (s *PaymentService) InitiateUpgrade(user *models.User) (*dto.UpgradeResponse, error) {
	orderID := fmt.Sprintf("ORDER-%s-%d", uuid.NewString(), time.Now().UnixMilli())

	name := user.Name
	if name == "" {
		name = "Customer"
	}
	token, err := s.gateway.CreateSnapToken(orderID, s.cfg.ProPlanPrice, CustomerDetails{
		FirstName: name,
		Email:     user.Email,
	})
	if err != nil {
		slog.Error("snap token creation failed", "user_id", user.ID.String(), "order_id", orderID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	payment := models.Payment{
		ID:      uuid.New(),
		UserID:  user.ID,
		Amount:  s.cfg.ProPlanPrice,
		Status:  models.PaymentStatusPending,
		OrderID: orderID,
	}
	if err := s.db.Create(&payment).Error; err != nil {
		return nil, fmt.Errorf("failed to store payment: %w", err)
	}

	return &dto.UpgradeResponse{
		Token:       token.Token,
		RedirectURL: token.RedirectURL,
		OrderID:     orderID,
	}, nil
}

// MapTransactionStatus maps the Midtrans status vocabulary onto the local
// payment status set.
func MapTransactionStatus(transactionStatus, fraudStatus string) string {
	switch transactionStatus {
	case "capture", "settlement":
		if fraudStatus == "" || fraudStatus == "accept" {
			return models.PaymentStatusSuccess
		}
		return models.PaymentStatusPending
	case "deny", "cancel":
		return models.PaymentStatusFailed
	case "expire":
		return models.PaymentStatusExpired
	default:
		return models.PaymentStatusPending
	}
}

// HandleNotification reconciles a (signature-verified) webhook push. Unknown
// order ids are rejected so orphaned gateway calls stay visible to operators.
func (s *PaymentService) HandleNotification(n *dto.MidtransNotification) error {
	status := MapTransactionStatus(n.TransactionStatus, n.FraudStatus)

	var metadata datatypes.JSON
	if raw, err := json.Marshal(n); err == nil {
		metadata = datatypes.JSON(raw)
	}

	return s.reconcile(n.OrderID, status, map[string]interface{}{
		"status":         status,
		"transaction_id": n.TransactionID,
		"payment_type":   n.PaymentType,
		"metadata":       metadata,
	})
}

// Reconcile applies a client-reported payment status (the polling fallback
// path). The status must already use the local vocabulary.
func (s *PaymentService) Reconcile(orderID, status string) error {
	switch status {
	case models.PaymentStatusPending, models.PaymentStatusSuccess,
		models.PaymentStatusFailed, models.PaymentStatusExpired:
	default:
		return fmt.Errorf("%w: %s", ErrInvalidPaymentStatus, status)
	}
	return s.reconcile(orderID, status, map[string]interface{}{"status": status})
}

func (s *PaymentService) reconcile(orderID, status string, updates map[string]interface{}) error {
	var payment models.Payment
	err := s.db.Where("order_id = ?", orderID).First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPaymentNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load payment: %w", err)
	}

	if err := s.db.Model(&payment).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}

	if status == models.PaymentStatusSuccess {
		now := time.Now()
		if err := s.subscriptions.ActivatePro(payment.UserID, now, now.AddDate(0, 1, 0)); err != nil {
			return fmt.Errorf("failed to activate subscription: %w", err)
		}
	}
	return nil
}

// CheckStatus is the client polling fallback. While the local record is still
// pending it asks the gateway directly and reconciles any terminal answer.
func (s *PaymentService) CheckStatus(orderID string) (*dto.PaymentStatusResponse, error) {
	var payment models.Payment
	err := s.db.Where("order_id = ?", orderID).First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load payment: %w", err)
	}

	if payment.Status == models.PaymentStatusPending {
		if tx, err := s.gateway.GetTransactionStatus(orderID); err != nil {
			slog.Error("transaction status poll failed", "order_id", orderID, "error", err)
		} else if mapped := MapTransactionStatus(tx.TransactionStatus, tx.FraudStatus); mapped != models.PaymentStatusPending {
			if err := s.reconcile(orderID, mapped, map[string]interface{}{
				"status":         mapped,
				"transaction_id": tx.TransactionID,
				"payment_type":   tx.PaymentType,
			}); err != nil {
				return nil, err
			}
			payment.Status = mapped
			payment.UpdatedAt = time.Now()
		}
	}

	return &dto.PaymentStatusResponse{
		Status:    simplifyStatus(payment.Status),
		OrderID:   orderID,
		Timestamp: payment.UpdatedAt,
	}, nil
}

// simplifyStatus collapses the stored set to what payment pages act on.
func simplifyStatus(status string) string {
	switch status {
	case models.PaymentStatusSuccess:
		return models.PaymentStatusSuccess
	case models.PaymentStatusFailed, models.PaymentStatusExpired:
		return models.PaymentStatusFailed
	default:
		return models.PaymentStatusPending
	}
}
