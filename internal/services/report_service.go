package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tokapos/tokapos-backend/internal/dto"
	"github.com/tokapos/tokapos-backend/internal/models"
	"github.com/tokapos/tokapos-backend/internal/tenant"
	"gorm.io/gorm"
)

// ReportService computes the read-only aggregates behind the dashboard,
// sales-stats and inventory-summary endpoints.
type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// DashboardWindow maps the timeRange query param to a start date.
func DashboardWindow(timeRange string, now time.Time) time.Time {
	switch timeRange {
	case "30days":
		return now.AddDate(0, 0, -30)
	case "90days":
		return now.AddDate(0, 0, -90)
	default:
		return now.AddDate(0, 0, -7)
	}
}

// StatsWindow maps the sales-stats timeRange param to a start date.
func StatsWindow(timeRange string, now time.Time) time.Time {
	switch timeRange {
	case "month":
		return now.AddDate(0, -1, 0)
	case "year":
		return now.AddDate(-1, 0, 0)
	default: // week
		return now.AddDate(0, 0, -7)
	}
}

func (s *ReportService) Dashboard(orgID uuid.UUID, timeRange string) (*dto.DashboardResponse, error) {
	startDate := DashboardWindow(timeRange, time.Now())

	var totalSales int64
	if err := s.db.Model(&models.Sale{}).
		Scopes(tenant.ForOrganization(orgID)).
		Where("created_at >= ?", startDate).
		Count(&totalSales).Error; err != nil {
		return nil, fmt.Errorf("failed to count sales: %w", err)
	}

	var totalRevenue float64
	if err := s.db.Model(&models.Sale{}).
		Scopes(tenant.ForOrganization(orgID)).
		Where("created_at >= ?", startDate).
		Select("COALESCE(SUM(total), 0)").
		Scan(&totalRevenue).Error; err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	var totalProducts int64
	if err := s.db.Model(&models.Product{}).
		Scopes(tenant.ForOrganization(orgID)).
		Count(&totalProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	salesByDay, err := s.salesByDay(orgID, startDate)
	if err != nil {
		return nil, err
	}

	var topProducts []dto.TopProduct
	err = s.db.Raw(`
		SELECT p.id, p.name,
		       SUM(si.quantity) AS quantity,
		       SUM(si.price * si.quantity) AS revenue
		FROM sale_items si
		JOIN products p ON si.product_id = p.id
		JOIN sales s ON si.sale_id = s.id
		WHERE s.organization_id = ? AND s.created_at >= ?
		GROUP BY p.id, p.name
		ORDER BY quantity DESC
		LIMIT 5
	`, orgID, startDate).Scan(&topProducts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load top products: %w", err)
	}

	averageOrderValue := 0.0
	if totalSales > 0 {
		averageOrderValue = totalRevenue / float64(totalSales)
	}

	return &dto.DashboardResponse{
		TotalSales:        totalSales,
		TotalRevenue:      totalRevenue,
		TotalProducts:     totalProducts,
		AverageOrderValue: averageOrderValue,
		SalesByDay:        salesByDay,
		TopProducts:       topProducts,
	}, nil
}

func (s *ReportService) SalesStats(orgID uuid.UUID, timeRange string) (*dto.SalesStatsResponse, error) {
	startDate := StatsWindow(timeRange, time.Now())

	var totalSales int64
	if err := s.db.Model(&models.Sale{}).
		Scopes(tenant.ForOrganization(orgID)).
		Where("created_at >= ?", startDate).
		Count(&totalSales).Error; err != nil {
		return nil, fmt.Errorf("failed to count sales: %w", err)
	}

	var totalRevenue float64
	if err := s.db.Model(&models.Sale{}).
		Scopes(tenant.ForOrganization(orgID)).
		Where("created_at >= ?", startDate).
		Select("COALESCE(SUM(total), 0)").
		Scan(&totalRevenue).Error; err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	salesByDay, err := s.salesByDay(orgID, startDate)
	if err != nil {
		return nil, err
	}

	return &dto.SalesStatsResponse{
		TimeRange:    timeRange,
		TotalSales:   totalSales,
		TotalRevenue: totalRevenue,
		SalesByDay:   salesByDay,
	}, nil
}

func (s *ReportService) salesByDay(orgID uuid.UUID, startDate time.Time) ([]dto.DailySales, error) {
	var rows []dto.DailySales
	err := s.db.Raw(`
		SELECT to_char(DATE(created_at), 'YYYY-MM-DD') AS date,
		       COUNT(*) AS sales,
		       SUM(total) AS revenue
		FROM sales
		WHERE organization_id = ? AND created_at >= ?
		GROUP BY DATE(created_at)
		ORDER BY date ASC
	`, orgID, startDate).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load daily sales: %w", err)
	}
	return rows, nil
}

func (s *ReportService) InventorySummary(orgID uuid.UUID) (*dto.InventorySummaryResponse, error) {
	var totalProducts int64
	if err := s.db.Model(&models.Product{}).
		Scopes(tenant.ForOrganization(orgID)).
		Count(&totalProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	var lowStock int64
	if err := s.db.Model(&models.Product{}).
		Scopes(tenant.ForOrganization(orgID)).
		Where("stock IS NOT NULL AND stock <= min_stock_level").
		Count(&lowStock).Error; err != nil {
		return nil, fmt.Errorf("failed to count low stock products: %w", err)
	}

	var products []models.Product
	if err := s.db.Scopes(tenant.ForOrganization(orgID)).
		Select("stock", "price", "cost_price").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	return &dto.InventorySummaryResponse{
		TotalProducts:       totalProducts,
		LowStockProducts:    lowStock,
		TotalInventoryValue: InventoryValue(products),
	}, nil
}

// InventoryValue sums stock at cost price, falling back to 70% of the selling
// price for products without a recorded cost.
func InventoryValue(products []models.Product) float64 {
	var total float64
	for _, p := range products {
		if p.Stock == nil || *p.Stock == 0 {
			continue
		}
		perUnit := p.Price * 0.7
		if p.CostPrice != nil {
			perUnit = *p.CostPrice
		}
		total += perUnit * float64(*p.Stock)
	}
	return total
}
