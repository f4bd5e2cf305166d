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
	ErrProductNotFound     = errors.New("product not found")
	ErrProductLimitReached = errors.New("you have reached the product limit for your plan")
	ErrNegativeStock       = errors.New("stock cannot be negative")
	ErrStockReasonRequired = errors.New("change amount and reason are required")
	ErrStockUntracked      = errors.New("product does not track stock")
)

type ProductService struct {
	db            *gorm.DB
	cfg           *config.Config
	subscriptions *SubscriptionService
}

func NewProductService(db *gorm.DB, cfg *config.Config, subscriptions *SubscriptionService) *ProductService {
	return &ProductService{db: db, cfg: cfg, subscriptions: subscriptions}
}

func (s *ProductService) List(orgID uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	err := s.db.Scopes(tenant.ForOrganization(orgID)).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *ProductService) Get(orgID, productID uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := s.db.Scopes(tenant.ForOrganization(orgID)).First(&product, "id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	return &product, nil
}

func (s *ProductService) Create(orgID, userID uuid.UUID, req *dto.ProductRequest) (*models.Product, error) {
	if err := validateProductInput(req); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.Product{}).Scopes(tenant.ForOrganization(orgID)).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	allowed, err := s.subscriptions.CanUse(userID, FeatureProducts, count)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrProductLimitReached
	}

	product := models.Product{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		SKU:            req.SKU,
		Barcode:        req.Barcode,
		Stock:          req.Stock,
		MinStockLevel:  req.MinStockLevel,
		CostPrice:      req.CostPrice,
		ImageURL:       req.ImageURL,
	}
	if err := s.db.Create(&product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &product, nil
}

func (s *ProductService) Update(orgID, productID uuid.UUID, req *dto.ProductRequest) (*models.Product, error) {
	if err := validateProductInput(req); err != nil {
		return nil, err
	}

	product, err := s.Get(orgID, productID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":            req.Name,
		"description":     req.Description,
		"price":           req.Price,
		"sku":             req.SKU,
		"barcode":         req.Barcode,
		"stock":           req.Stock,
		"min_stock_level": req.MinStockLevel,
		"cost_price":      req.CostPrice,
		"image_url":       req.ImageURL,
	}
	if err := s.db.Model(product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

func (s *ProductService) Delete(orgID, productID uuid.UUID) error {
	product, err := s.Get(orgID, productID)
	if err != nil {
		return err
	}
	return s.db.Delete(product).Error
}

// AdjustStock applies a manual stock change and appends the matching ledger
// entry in one transaction. The resulting stock may never go below zero.
func (s *ProductService) AdjustStock(orgID, productID, userID uuid.UUID, req *dto.StockAdjustmentRequest) (*models.Product, *models.StockHistory, error) {
	if req.ChangeAmount == 0 || req.Reason == "" {
		return nil, nil, ErrStockReasonRequired
	}

	var product models.Product
	var entry models.StockHistory

	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Scopes(tenant.ForOrganization(orgID)).
			First(&product, "id = ?", productID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		if err != nil {
			return err
		}

		previous := 0
		if product.Stock != nil {
			previous = *product.Stock
		}
		next := previous + req.ChangeAmount
		if next < 0 {
			return ErrNegativeStock
		}

		if err := tx.Model(&product).Update("stock", next).Error; err != nil {
			return err
		}
		product.Stock = &next

		entry = models.StockHistory{
			ID:             uuid.New(),
			OrganizationID: orgID,
			ProductID:      productID,
			PreviousStock:  previous,
			NewStock:       next,
			ChangeAmount:   req.ChangeAmount,
			Reason:         req.Reason,
			Notes:          req.Notes,
			UserID:         userID,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &product, &entry, nil
}

func (s *ProductService) StockHistory(orgID, productID uuid.UUID) ([]models.StockHistory, error) {
	if _, err := s.Get(orgID, productID); err != nil {
		return nil, err
	}

	var entries []models.StockHistory
	err := s.db.Scopes(tenant.ForOrganization(orgID)).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load stock history: %w", err)
	}
	return entries, nil
}

func validateProductInput(req *dto.ProductRequest) error {
	if req.Name == "" {
		return errors.New("name is required")
	}
	if req.Price <= 0 {
		return errors.New("price must be greater than zero")
	}
	if req.Stock != nil && *req.Stock < 0 {
		return ErrNegativeStock
	}
	if req.MinStockLevel < 0 {
		return errors.New("minimum stock level cannot be negative")
	}
	return nil
}
