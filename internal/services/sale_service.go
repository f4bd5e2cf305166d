package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tokapos/tokapos-backend/internal/config"
	"github.com/tokapos/tokapos-backend/internal/dto"
	"github.com/tokapos/tokapos-backend/internal/models"
	"github.com/tokapos/tokapos-backend/internal/tenant"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrEmptySale            = errors.New("items and payment method are required")
	ErrInvalidQuantity      = errors.New("quantity must be greater than zero")
	ErrInsufficientStock    = errors.New("not enough stock for product")
	ErrSaleLimitReached     = errors.New("you have reached the sales limit for your plan")
	ErrSaleNotFound         = errors.New("sale not found")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

var validPaymentMethods = map[string]bool{
	"cash":     true,
	"card":     true,
	"transfer": true,
	"other":    true,
}

type SaleService struct {
	db            *gorm.DB
	cfg           *config.Config
	subscriptions *SubscriptionService
}

func NewSaleService(db *gorm.DB, cfg *config.Config, subscriptions *SubscriptionService) *SaleService {
	return &SaleService{db: db, cfg: cfg, subscriptions: subscriptions}
}

func (s *SaleService) List(orgID uuid.UUID) ([]models.Sale, error) {
	var sales []models.Sale
	err := s.db.Scopes(tenant.ForOrganization(orgID)).
		Preload("Items").
		Preload("Items.Product").
		Order("created_at DESC").
		Find(&sales).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return sales, nil
}

func (s *SaleService) Get(orgID, saleID uuid.UUID) (*models.Sale, error) {
	var sale models.Sale
	err := s.db.Scopes(tenant.ForOrganization(orgID)).
		Preload("Items").
		Preload("Items.Product").
		First(&sale, "id = ?", saleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSaleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load sale: %w", err)
	}
	return &sale, nil
}

// buildSaleLines validates the requested lines in list order against the
// given products, snapshots unit prices, and accumulates the grand total.
// Tracked stock is consumed line by line, so duplicate product lines cannot
// oversell between them. Any failure rejects the whole batch.
func buildSaleLines(items []dto.SaleLineRequest, products map[uuid.UUID]*models.Product) ([]models.SaleItem, float64, error) {
	if len(items) == 0 {
		return nil, 0, ErrEmptySale
	}

	remaining := make(map[uuid.UUID]int)
	for id, p := range products {
		if p.Stock != nil {
			remaining[id] = *p.Stock
		}
	}

	lines := make([]models.SaleItem, 0, len(items))
	var total float64
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, 0, ErrInvalidQuantity
		}

		product, ok := products[item.ProductID]
		if !ok {
			return nil, 0, fmt.Errorf("%w: %s", ErrProductNotFound, item.ProductID)
		}

		if product.Stock != nil {
			if remaining[item.ProductID] < item.Quantity {
				return nil, 0, fmt.Errorf("%w: %s", ErrInsufficientStock, product.Name)
			}
			remaining[item.ProductID] -= item.Quantity
		}

		subtotal := product.Price * float64(item.Quantity)
		total += subtotal
		lines = append(lines, models.SaleItem{
			ID:        uuid.New(),
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     product.Price,
			Subtotal:  subtotal,
		})
	}

	return lines, total, nil
}

// Create records a checkout: stock validation, price snapshots, the sale
// header with its line items, stock decrements and ledger entries all commit
// atomically. Product rows are locked for the duration of the transaction so
// concurrent sales cannot drive stock negative.
func (s *SaleService) Create(orgID, userID uuid.UUID, req *dto.CreateSaleRequest) (*models.Sale, error) {
	if len(req.Items) == 0 || req.PaymentMethod == "" {
		return nil, ErrEmptySale
	}
	if !validPaymentMethods[req.PaymentMethod] {
		return nil, ErrInvalidPaymentMethod
	}

	var count int64
	if err := s.db.Model(&models.Sale{}).Scopes(tenant.ForOrganization(orgID)).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to count sales: %w", err)
	}
	allowed, err := s.subscriptions.CanUse(userID, FeatureSales, count)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrSaleLimitReached
	}

	var sale models.Sale
	err = s.db.Transaction(func(tx *gorm.DB) error {
		products := make(map[uuid.UUID]*models.Product)
		for _, item := range req.Items {
			if _, seen := products[item.ProductID]; seen {
				continue
			}
			var product models.Product
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Scopes(tenant.ForOrganization(orgID)).
				First(&product, "id = ?", item.ProductID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrProductNotFound, item.ProductID)
			}
			if err != nil {
				return err
			}
			products[item.ProductID] = &product
		}

		lines, total, err := buildSaleLines(req.Items, products)
		if err != nil {
			return err
		}

		sale = models.Sale{
			ID:             uuid.New(),
			OrganizationID: orgID,
			Total:          total,
			PaymentMethod:  req.PaymentMethod,
			CustomerName:   req.CustomerName,
		}
		if err := tx.Create(&sale).Error; err != nil {
			return err
		}

		for i := range lines {
			lines[i].SaleID = sale.ID
		}
		if err := tx.Create(&lines).Error; err != nil {
			return err
		}

		// One stock decrement and one ledger entry per product.
		sold := make(map[uuid.UUID]int)
		for _, line := range lines {
			sold[line.ProductID] += line.Quantity
		}
		for _, item := range req.Items {
			qty, pending := sold[item.ProductID]
			if !pending {
				continue
			}
			delete(sold, item.ProductID)

			product := products[item.ProductID]
			if product.Stock == nil {
				continue
			}

			previous := *product.Stock
			next := previous - qty
			if err := tx.Model(product).Update("stock", next).Error; err != nil {
				return err
			}

			entry := models.StockHistory{
				ID:             uuid.New(),
				OrganizationID: orgID,
				ProductID:      product.ID,
				PreviousStock:  previous,
				NewStock:       next,
				ChangeAmount:   -qty,
				Reason:         models.StockReasonSale,
				UserID:         userID,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}

		sale.Items = lines
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sale, nil
}
