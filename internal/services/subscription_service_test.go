package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tokapos/tokapos-backend/internal/models"
)

func TestResolveSubscription(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("fresh row is free with trial available", func(t *testing.T) {
		t.Parallel()

		sub := models.UserSubscription{
			Status:      models.SubscriptionStatusTrial,
			Plan:        models.PlanFree,
			IsTrialUsed: false,
		}
		snapshot, tr := resolveSubscription(&sub, now)
		assert.Equal(t, StatusFree, snapshot.Status)
		assert.Equal(t, models.PlanFree, snapshot.Plan)
		assert.True(t, snapshot.IsTrialAvailable)
		assert.Equal(t, transitionNone, tr)
	})

	t.Run("running trial reports trial with pro plan", func(t *testing.T) {
		t.Parallel()

		start := now.AddDate(0, 0, -1)
		end := now.AddDate(0, 0, 1)
		sub := models.UserSubscription{
			Status:         models.SubscriptionStatusTrial,
			Plan:           models.PlanPro,
			IsTrialUsed:    true,
			TrialStartDate: &start,
			TrialEndDate:   &end,
		}
		snapshot, tr := resolveSubscription(&sub, now)
		assert.Equal(t, StatusTrial, snapshot.Status)
		assert.Equal(t, models.PlanPro, snapshot.Plan)
		assert.False(t, snapshot.IsTrialAvailable)
		assert.Equal(t, transitionNone, tr)
	})

	t.Run("expired trial falls back to free and requests rewrite", func(t *testing.T) {
		t.Parallel()

		start := now.AddDate(0, 0, -3)
		end := now.AddDate(0, 0, -1)
		sub := models.UserSubscription{
			Status:         models.SubscriptionStatusTrial,
			Plan:           models.PlanPro,
			IsTrialUsed:    true,
			TrialStartDate: &start,
			TrialEndDate:   &end,
		}
		snapshot, tr := resolveSubscription(&sub, now)
		assert.Equal(t, StatusFree, snapshot.Status)
		assert.Equal(t, models.PlanFree, snapshot.Plan)
		assert.True(t, snapshot.IsTrialExpired)
		assert.False(t, snapshot.IsTrialAvailable)
		assert.Equal(t, transitionEndTrial, tr)
	})

	t.Run("trial ends exactly at the boundary instant", func(t *testing.T) {
		t.Parallel()

		end := now
		sub := models.UserSubscription{
			Status:       models.SubscriptionStatusTrial,
			Plan:         models.PlanPro,
			IsTrialUsed:  true,
			TrialEndDate: &end,
		}
		// now == end is not after end, so the trial still counts.
		snapshot, tr := resolveSubscription(&sub, now)
		assert.Equal(t, StatusTrial, snapshot.Status)
		assert.Equal(t, transitionNone, tr)
	})

	t.Run("active pro within period", func(t *testing.T) {
		t.Parallel()

		start := now.AddDate(0, 0, -10)
		end := now.AddDate(0, 0, 20)
		sub := models.UserSubscription{
			Status:             models.SubscriptionStatusActive,
			Plan:               models.PlanPro,
			IsTrialUsed:        true,
			CurrentPeriodStart: &start,
			CurrentPeriodEnd:   &end,
		}
		snapshot, tr := resolveSubscription(&sub, now)
		assert.Equal(t, StatusPro, snapshot.Status)
		assert.Equal(t, models.PlanPro, snapshot.Plan)
		assert.Equal(t, &end, snapshot.CurrentPeriodEnd)
		assert.Equal(t, transitionNone, tr)
	})

	t.Run("lapsed pro falls back to free", func(t *testing.T) {
		t.Parallel()

		start := now.AddDate(0, -2, 0)
		end := now.AddDate(0, -1, 0)
		sub := models.UserSubscription{
			Status:             models.SubscriptionStatusActive,
			Plan:               models.PlanPro,
			IsTrialUsed:        true,
			CurrentPeriodStart: &start,
			CurrentPeriodEnd:   &end,
		}
		snapshot, tr := resolveSubscription(&sub, now)
		assert.Equal(t, StatusFree, snapshot.Status)
		assert.False(t, snapshot.IsTrialAvailable)
		assert.Equal(t, transitionExpirePro, tr)
	})

	t.Run("lapsed pro with unused trial keeps trial available", func(t *testing.T) {
		t.Parallel()

		end := now.AddDate(0, -1, 0)
		sub := models.UserSubscription{
			Status:           models.SubscriptionStatusActive,
			Plan:             models.PlanPro,
			IsTrialUsed:      false,
			CurrentPeriodEnd: &end,
		}
		snapshot, tr := resolveSubscription(&sub, now)
		assert.Equal(t, StatusFree, snapshot.Status)
		assert.True(t, snapshot.IsTrialAvailable)
		assert.Equal(t, transitionExpirePro, tr)
	})
}
