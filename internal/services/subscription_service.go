package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tokapos/tokapos-backend/internal/config"
	"github.com/tokapos/tokapos-backend/internal/dto"
	"github.com/tokapos/tokapos-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrTrialAlreadyUsed = errors.New("trial already used")
	ErrUnknownFeature   = errors.New("unknown feature")
)

// Externally visible subscription statuses.
const (
	StatusFree  = "free"
	StatusTrial = "trial"
	StatusPro   = "pro"
)

// Limited features on the free plan.
const (
	FeatureOrganizations = "organizations"
	FeatureProducts      = "products"
	FeatureSales         = "sales"
)

// transition is a lazy rewrite the stored row needs before the resolved
// snapshot is accurate.
type transition int

const (
	transitionNone transition = iota
	transitionEndTrial
	transitionExpirePro
)

// SubscriptionService resolves per-user entitlements. Expiry is detected
// lazily at read time; there is no background sweep.
type SubscriptionService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewSubscriptionService(db *gorm.DB, cfg *config.Config) *SubscriptionService {
	return &SubscriptionService{db: db, cfg: cfg}
}

// resolveSubscription computes the externally visible entitlement for a
// stored row at the given instant, plus any lazy rewrite the row needs.
func resolveSubscription(sub *models.UserSubscription, now time.Time) (dto.SubscriptionStatusResponse, transition) {
	if sub.Status == models.SubscriptionStatusTrial && sub.TrialEndDate != nil {
		if now.After(*sub.TrialEndDate) {
			return dto.SubscriptionStatusResponse{
				Status:           StatusFree,
				Plan:             models.PlanFree,
				IsTrialAvailable: false,
				IsTrialExpired:   true,
				TrialStartDate:   sub.TrialStartDate,
				TrialEndDate:     sub.TrialEndDate,
			}, transitionEndTrial
		}
		return dto.SubscriptionStatusResponse{
			Status:           StatusTrial,
			Plan:             models.PlanPro,
			IsTrialAvailable: false,
			TrialStartDate:   sub.TrialStartDate,
			TrialEndDate:     sub.TrialEndDate,
		}, transitionNone
	}

	if sub.Status == models.SubscriptionStatusActive && sub.CurrentPeriodEnd != nil {
		if now.After(*sub.CurrentPeriodEnd) {
			return dto.SubscriptionStatusResponse{
				Status:           StatusFree,
				Plan:             models.PlanFree,
				IsTrialAvailable: !sub.IsTrialUsed,
			}, transitionExpirePro
		}
		return dto.SubscriptionStatusResponse{
			Status:             StatusPro,
			Plan:               sub.Plan,
			IsTrialAvailable:   false,
			CurrentPeriodStart: sub.CurrentPeriodStart,
			CurrentPeriodEnd:   sub.CurrentPeriodEnd,
		}, transitionNone
	}

	return dto.SubscriptionStatusResponse{
		Status:           StatusFree,
		Plan:             models.PlanFree,
		IsTrialAvailable: !sub.IsTrialUsed,
	}, transitionNone
}

// GetStatus returns the user's entitlement, lazily creating the row on first
// query and rewriting expired trial/pro rows before reporting.
func (s *SubscriptionService) GetStatus(userID uuid.UUID) (*dto.SubscriptionStatusResponse, error) {
	var sub models.UserSubscription
	err := s.db.Where("user_id = ?", userID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		sub = models.UserSubscription{
			ID:          uuid.New(),
			UserID:      userID,
			Status:      models.SubscriptionStatusTrial,
			Plan:        models.PlanFree,
			IsTrialUsed: false,
		}
		if err := s.db.Create(&sub).Error; err != nil {
			return nil, fmt.Errorf("failed to create subscription: %w", err)
		}
		return &dto.SubscriptionStatusResponse{
			Status:           StatusFree,
			Plan:             models.PlanFree,
			IsTrialAvailable: true,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}

	snapshot, tr := resolveSubscription(&sub, time.Now())
	if err := s.applyTransition(&sub, tr); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (s *SubscriptionService) applyTransition(sub *models.UserSubscription, tr transition) error {
	switch tr {
	case transitionEndTrial:
		return s.db.Model(sub).Updates(map[string]interface{}{
			"status": models.SubscriptionStatusTrial,
			"plan":   models.PlanFree,
		}).Error
	case transitionExpirePro:
		return s.db.Model(sub).Updates(map[string]interface{}{
			"status":               models.SubscriptionStatusTrial,
			"plan":                 models.PlanFree,
			"current_period_start": nil,
			"current_period_end":   nil,
		}).Error
	default:
		return nil
	}
}

// StartTrial grants the time-boxed pro entitlement. Permitted once per user.
func (s *SubscriptionService) StartTrial(userID uuid.UUID) (*dto.SubscriptionStatusResponse, error) {
	status, err := s.GetStatus(userID)
	if err != nil {
		return nil, err
	}
	if !status.IsTrialAvailable {
		return nil, ErrTrialAlreadyUsed
	}

	now := time.Now()
	end := now.AddDate(0, 0, s.cfg.TrialDays)
	err = s.db.Model(&models.UserSubscription{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"status":           models.SubscriptionStatusTrial,
			"plan":             models.PlanPro,
			"is_trial_used":    true,
			"trial_start_date": now,
			"trial_end_date":   end,
		}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to start trial: %w", err)
	}

	return &dto.SubscriptionStatusResponse{
		Status:         StatusTrial,
		Plan:           models.PlanPro,
		TrialStartDate: &now,
		TrialEndDate:   &end,
	}, nil
}

// ActivatePro transitions the user to the paid plan for the given period.
// Invoked only on confirmed successful payment.
func (s *SubscriptionService) ActivatePro(userID uuid.UUID, periodStart, periodEnd time.Time) error {
	var sub models.UserSubscription
	err := s.db.Where("user_id = ?", userID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		sub = models.UserSubscription{
			ID:                 uuid.New(),
			UserID:             userID,
			Status:             models.SubscriptionStatusActive,
			Plan:               models.PlanPro,
			CurrentPeriodStart: &periodStart,
			CurrentPeriodEnd:   &periodEnd,
		}
		return s.db.Create(&sub).Error
	}
	if err != nil {
		return fmt.Errorf("failed to load subscription: %w", err)
	}

	return s.db.Model(&sub).Updates(map[string]interface{}{
		"status":               models.SubscriptionStatusActive,
		"plan":                 models.PlanPro,
		"current_period_start": periodStart,
		"current_period_end":   periodEnd,
	}).Error
}

// CanUse reports whether creating one more of the given feature is within the
// user's plan limits. Trial and pro users are never limited.
func (s *SubscriptionService) CanUse(userID uuid.UUID, feature string, currentCount int64) (bool, error) {
	status, err := s.GetStatus(userID)
	if err != nil {
		return false, err
	}

	if status.Status == StatusTrial || status.Status == StatusPro {
		return true, nil
	}

	limit, err := s.limitFor(feature)
	if err != nil {
		return false, err
	}
	return currentCount < limit, nil
}

func (s *SubscriptionService) limitFor(feature string) (int64, error) {
	switch feature {
	case FeatureOrganizations:
		return int64(s.cfg.FreeOrgLimit), nil
	case FeatureProducts:
		return int64(s.cfg.FreeProductLimit), nil
	case FeatureSales:
		return int64(s.cfg.FreeSaleLimit), nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownFeature, feature)
	}
}
