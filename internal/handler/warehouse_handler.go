package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BobadilloLeftLane/medweg-api/internal/service"
	"github.com/BobadilloLeftLane/medweg-api/internal/utils"
)

// WarehouseHandler covers the public product catalog and the admin stock
// management endpoints.
type WarehouseHandler struct {
	warehouseService *service.WarehouseService
}

func NewWarehouseHandler(warehouseService *service.WarehouseService) *WarehouseHandler {
	return &WarehouseHandler{warehouseService: warehouseService}
}

// Catalog handles GET /v1/products?category=&search=
// Only active products are returned to institutions and workers.
func (h *WarehouseHandler) Catalog(c *gin.Context) {
	products, err := h.warehouseService.Catalog(c.Query("category"), c.Query("search"))
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to list products")
		return
	}
	utils.Success(c, 200, "Products retrieved", products)
}

// Stock handles GET /v1/admin/warehouse/stock
func (h *WarehouseHandler) Stock(c *gin.Context) {
	products, err := h.warehouseService.Stock()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to list products")
		return
	}
	utils.Success(c, 200, "Products retrieved", products)
}

// Get handles GET /v1/admin/products/:id
func (h *WarehouseHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid product id")
		return
	}

	product, err := h.warehouseService.Get(id)
	if err != nil {
		utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
		return
	}
	utils.Success(c, 200, "Product retrieved", product)
}

// Create handles POST /v1/admin/products
func (h *WarehouseHandler) Create(c *gin.Context) {
	var req service.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	product, err := h.warehouseService.Create(&req)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create product")
		return
	}
	utils.Success(c, 201, "Product created", product)
}

// Update handles PUT /v1/admin/products/:id
func (h *WarehouseHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid product id")
		return
	}

	var req service.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	product, err := h.warehouseService.Update(id, &req)
	if err != nil {
		utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
		return
	}
	utils.Success(c, 200, "Product updated", product)
}

// AdjustStock handles PATCH /v1/admin/products/:id/stock
func (h *WarehouseHandler) AdjustStock(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid product id")
		return
	}

	var req struct {
		Delta int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	product, err := h.warehouseService.AdjustStock(id, req.Delta)
	if err != nil {
		if err == utils.ErrInsufficientStock {
			utils.Error(c, 409, "INSUFFICIENT_STOCK", "Adjustment would make stock negative")
			return
		}
		utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
		return
	}
	utils.Success(c, 200, "Stock adjusted", product)
}

// LowStock handles GET /v1/admin/products/low-stock
func (h *WarehouseHandler) LowStock(c *gin.Context) {
	snapshot, err := h.warehouseService.LowStockSnapshot(c.Request.Context())
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load low stock report")
		return
	}
	utils.Success(c, 200, "Low stock report retrieved", snapshot)
}
