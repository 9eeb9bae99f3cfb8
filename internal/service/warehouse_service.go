package service

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/BobadilloLeftLane/medweg-api/internal/cache"
	"github.com/BobadilloLeftLane/medweg-api/internal/models"
	"github.com/BobadilloLeftLane/medweg-api/internal/repository"
	"github.com/BobadilloLeftLane/medweg-api/internal/utils"
)

// WarehouseService manages the product catalog and stock levels.
type WarehouseService struct {
	productRepo *repository.ProductRepository
	stockAlerts *cache.StockAlertCache
}

// NewWarehouseService constructs a WarehouseService.
func NewWarehouseService(productRepo *repository.ProductRepository, stockAlerts *cache.StockAlertCache) *WarehouseService {
	return &WarehouseService{productRepo: productRepo, stockAlerts: stockAlerts}
}

// ProductRequest carries admin create/update payloads for products.
type ProductRequest struct {
	SKU           string            `json:"sku" binding:"required"`
	Name          string            `json:"name" binding:"required"`
	Category      string            `json:"category"`
	Description   string            `json:"description"`
	SalePrice     decimal.Decimal   `json:"salePrice" binding:"required"`
	PurchasePrice decimal.Decimal   `json:"purchasePrice" binding:"required"`
	Weight        decimal.Decimal   `json:"weight" binding:"required"`
	WeightUnit    models.WeightUnit `json:"weightUnit" binding:"required,oneof=g kg"`
	StockQty      int               `json:"stockQty"`
	ReorderLevel  int               `json:"reorderLevel"`
	IsActive      *bool             `json:"isActive"`
}

// Stock returns the full stock list for the admin app.
func (s *WarehouseService) Stock() ([]models.Product, error) {
	return s.productRepo.GetAll()
}

// Catalog returns active products for institutions and workers.
func (s *WarehouseService) Catalog(category, search string) ([]models.Product, error) {
	return s.productRepo.GetActive(category, search)
}

// Get returns one product.
func (s *WarehouseService) Get(id int) (*models.Product, error) {
	return s.productRepo.GetByID(id)
}

// Create adds a product to the catalog.
func (s *WarehouseService) Create(req *ProductRequest) (*models.Product, error) {
	p := productFromRequest(req)
	if err := s.productRepo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update applies edits to a product.
func (s *WarehouseService) Update(id int, req *ProductRequest) (*models.Product, error) {
	existing, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	p := productFromRequest(req)
	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	if req.IsActive == nil {
		p.IsActive = existing.IsActive
	}

	if err := s.productRepo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

// AdjustStock changes stock by a signed delta (goods received, corrections).
func (s *WarehouseService) AdjustStock(productID, delta int) (*models.Product, error) {
	tx, err := s.productRepo.Beginx()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := s.productRepo.AdjustStock(tx, productID, delta); err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.ErrInsufficientStock
		}
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(productID)
}

// LowStockSnapshot returns the stock worker's last low-stock scan, or nil
// when no scan has completed yet.
func (s *WarehouseService) LowStockSnapshot(ctx context.Context) (*cache.StockAlertSnapshot, error) {
	return s.stockAlerts.Get(ctx)
}

func productFromRequest(req *ProductRequest) *models.Product {
	p := &models.Product{
		SKU:           req.SKU,
		Name:          req.Name,
		Category:      req.Category,
		Description:   req.Description,
		SalePrice:     req.SalePrice,
		PurchasePrice: req.PurchasePrice,
		Weight:        req.Weight,
		WeightUnit:    req.WeightUnit,
		StockQty:      req.StockQty,
		ReorderLevel:  req.ReorderLevel,
		IsActive:      true,
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	return p
}
