package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tokapos/tokapos-backend/internal/models"
)

func TestDashboardWindow(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, now.AddDate(0, 0, -7), DashboardWindow("7days", now))
	assert.Equal(t, now.AddDate(0, 0, -30), DashboardWindow("30days", now))
	assert.Equal(t, now.AddDate(0, 0, -90), DashboardWindow("90days", now))
	assert.Equal(t, now.AddDate(0, 0, -7), DashboardWindow("bogus", now))
}

func TestStatsWindow(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, now.AddDate(0, 0, -7), StatsWindow("week", now))
	assert.Equal(t, now.AddDate(0, -1, 0), StatsWindow("month", now))
	assert.Equal(t, now.AddDate(-1, 0, 0), StatsWindow("year", now))
	assert.Equal(t, now.AddDate(0, 0, -7), StatsWindow("", now))
}

func TestInventoryValue(t *testing.T) {
	t.Parallel()

	cost := 6000.0
	products := []models.Product{
		{Name: "Coffee", Price: 10000, Stock: intPtr(10), CostPrice: &cost}, // 60000
		{Name: "Pastry", Price: 10000, Stock: intPtr(4)},                    // cost falls back to 70%: 28000
		{Name: "Service", Price: 5000, Stock: nil},                          // untracked, skipped
		{Name: "Sold out", Price: 9000, Stock: intPtr(0)},                   // no units
	}
	assert.InDelta(t, 88000, InventoryValue(products), 0.001)

	assert.Zero(t, InventoryValue(nil))
}
