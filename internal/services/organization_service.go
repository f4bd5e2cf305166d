package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/tokapos/tokapos-backend/internal/config"
	"github.com/tokapos/tokapos-backend/internal/dto"
	"github.com/tokapos/tokapos-backend/internal/models"
	"github.com/tokapos/tokapos-backend/internal/tenant"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrOrgNotFound      = errors.New("organization not found")
	ErrSlugTaken        = errors.New("an organization with this name already exists")
	ErrOrgLimitReached  = errors.New("you have reached the organization limit for your plan")
	ErrWrongOrgPassword = errors.New("incorrect password")
)

var slugNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives the unique URL slug from an organization name.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugNonAlnum.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

type OrganizationService struct {
	db            *gorm.DB
	cfg           *config.Config
	subscriptions *SubscriptionService
}

func NewOrganizationService(db *gorm.DB, cfg *config.Config, subscriptions *SubscriptionService) *OrganizationService {
	return &OrganizationService{db: db, cfg: cfg, subscriptions: subscriptions}
}

func (s *OrganizationService) List(userID uuid.UUID) ([]models.Organization, error) {
	var orgs []models.Organization
	err := s.db.Scopes(tenant.OwnedBy(userID)).
		Order("created_at DESC").
		Find(&orgs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return orgs, nil
}

func (s *OrganizationService) Create(userID uuid.UUID, req *dto.CreateOrganizationRequest) (*models.Organization, error) {
	if req.Name == "" || req.AdminPassword == "" {
		return nil, errors.New("name and admin password are required")
	}
	if len(req.AdminPassword) < 6 {
		return nil, errors.New("admin password must be at least 6 characters")
	}

	var count int64
	if err := s.db.Model(&models.Organization{}).Scopes(tenant.OwnedBy(userID)).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to count organizations: %w", err)
	}
	allowed, err := s.subscriptions.CanUse(userID, FeatureOrganizations, count)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrOrgLimitReached
	}

	slug := Slugify(req.Name)
	var existing models.Organization
	if err := s.db.Where("slug = ?", slug).First(&existing).Error; err == nil {
		return nil, ErrSlugTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}

	org := models.Organization{
		ID:            uuid.New(),
		Name:          req.Name,
		Slug:          slug,
		Logo:          req.Logo,
		AdminPassword: string(hash),
		UserID:        userID,
	}
	if err := s.db.Create(&org).Error; err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}
	return &org, nil
}

func (s *OrganizationService) Update(org *models.Organization, req *dto.UpdateOrganizationRequest) (*models.Organization, error) {
	if req.Name == "" {
		return nil, errors.New("name is required")
	}

	updates := map[string]interface{}{"name": req.Name, "logo": req.Logo}
	if req.Name != org.Name {
		slug := Slugify(req.Name)
		var existing models.Organization
		if err := s.db.Where("slug = ? AND id <> ?", slug, org.ID).First(&existing).Error; err == nil {
			return nil, ErrSlugTaken
		}
		updates["slug"] = slug
	}

	if err := s.db.Model(org).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}
	return org, nil
}

// Delete removes the organization and everything it owns in one transaction,
// so a failure mid-cascade leaves no orphaned rows.
func (s *OrganizationService) Delete(org *models.Organization) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		saleIDs := tx.Model(&models.Sale{}).Select("id").Where("organization_id = ?", org.ID)
		if err := tx.Where("sale_id IN (?)", saleIDs).Delete(&models.SaleItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("organization_id = ?", org.ID).Delete(&models.Sale{}).Error; err != nil {
			return err
		}
		if err := tx.Where("organization_id = ?", org.ID).Delete(&models.StockHistory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("organization_id = ?", org.ID).Delete(&models.Product{}).Error; err != nil {
			return err
		}
		return tx.Delete(org).Error
	})
}

// VerifyAdminPassword checks the organization's admin credential and issues a
// scoped session token for the org-admin cookie.
func (s *OrganizationService) VerifyAdminPassword(org *models.Organization, userID uuid.UUID, password string) (string, error) {
	if password == "" {
		return "", errors.New("password is required")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(org.AdminPassword), []byte(password)); err != nil {
		return "", ErrWrongOrgPassword
	}

	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"org":   org.ID.String(),
		"scope": "org_admin",
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.OrgAuthExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *OrganizationService) ChangeAdminPassword(org *models.Organization, req *dto.ChangeOrgPasswordRequest) error {
	if len(req.NewPassword) < 6 {
		return errors.New("new password must be at least 6 characters")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(org.AdminPassword), []byte(req.CurrentPassword)); err != nil {
		return ErrWrongOrgPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	return s.db.Model(org).Update("admin_password", string(hash)).Error
}
