package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BobadilloLeftLane/medweg-api/internal/models"
	"github.com/BobadilloLeftLane/medweg-api/internal/service"
	"github.com/BobadilloLeftLane/medweg-api/internal/utils"
)

// OrderHandler exposes order placement for institutions and workers plus
// the admin-side lifecycle and shipping endpoints.
type OrderHandler struct {
	orderService *service.OrderService
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create handles POST /v1/orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	// Workers are bound to a single patient; their token decides the
	// patient, not the payload.
	if c.GetString("role") == utils.RoleWorker {
		req.PatientID = c.GetInt("patient_id")
	}

	order, err := h.orderService.Create(c.GetInt("institution_id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrPatientNotFound):
			utils.Error(c, 404, "PATIENT_NOT_FOUND", "Patient not found")
		case errors.Is(err, utils.ErrProductNotFound):
			utils.Error(c, 400, "PRODUCT_NOT_FOUND", "One or more products are unknown or inactive")
		case errors.Is(err, utils.ErrInsufficientStock):
			utils.Error(c, 409, "INSUFFICIENT_STOCK", "Not enough stock for one or more items")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to place order")
		}
		return
	}

	utils.Success(c, 201, "Order placed", order)
}

// List handles GET /v1/orders
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orderService.ListByInstitution(c.GetInt("institution_id"))
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to list orders")
		return
	}
	utils.Success(c, 200, "Orders retrieved", orders)
}

// Get handles GET /v1/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid order id")
		return
	}

	// Admins see every order; institutions and workers only their own.
	institutionID := 0
	if c.GetString("role") != utils.RoleAdmin {
		institutionID = c.GetInt("institution_id")
	}

	order, err := h.orderService.Get(institutionID, id)
	if err != nil {
		utils.Error(c, 404, "ORDER_NOT_FOUND", "Order not found")
		return
	}
	utils.Success(c, 200, "Order retrieved", order)
}

// ListAll handles GET /v1/admin/orders/all?status=&limit=
func (h *OrderHandler) ListAll(c *gin.Context) {
	status := models.OrderStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		utils.Error(c, 400, "INVALID_REQUEST", "Unknown order status")
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			utils.Error(c, 400, "INVALID_REQUEST", "Invalid limit")
			return
		}
		limit = parsed
	}

	orders, err := h.orderService.ListAll(status, limit)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to list orders")
		return
	}
	utils.Success(c, 200, "Orders retrieved", orders)
}

// UpdateStatus handles PATCH /v1/admin/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid order id")
		return
	}

	var req struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !req.Status.Valid() {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid status")
		return
	}

	order, err := h.orderService.UpdateStatus(id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrOrderNotFound):
			utils.Error(c, 404, "ORDER_NOT_FOUND", "Order not found")
		case errors.Is(err, utils.ErrInvalidStatusChange):
			utils.Error(c, 409, "INVALID_STATUS_CHANGE", "Status transition not allowed")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update order status")
		}
		return
	}
	utils.Success(c, 200, "Order status updated", order)
}

// ShippingOptions handles GET /v1/admin/orders/:id/shipping-options
func (h *OrderHandler) ShippingOptions(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid order id")
		return
	}

	quote, err := h.orderService.ShippingOptions(id)
	if err != nil {
		if errors.Is(err, utils.ErrOrderNotFound) {
			utils.Error(c, 404, "ORDER_NOT_FOUND", "Order not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to compute shipping options")
		return
	}
	utils.Success(c, 200, "Shipping options computed", quote)
}

// SelectShipping handles PATCH /v1/admin/orders/:id/shipping
func (h *OrderHandler) SelectShipping(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid order id")
		return
	}

	var req struct {
		Carrier string          `json:"carrier" binding:"required"`
		Price   decimal.Decimal `json:"price" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	order, err := h.orderService.SelectShipping(id, req.Carrier, req.Price)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrOrderNotFound):
			utils.Error(c, 404, "ORDER_NOT_FOUND", "Order not found")
		case errors.Is(err, utils.ErrShippingLocked):
			utils.Error(c, 409, "SHIPPING_LOCKED", "Shipping cannot change after the order shipped")
		case errors.Is(err, utils.ErrShippingNotOffered):
			utils.Error(c, 400, "SHIPPING_NOT_OFFERED", "Carrier and price do not match an offered option")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to set shipping")
		}
		return
	}
	utils.Success(c, 200, "Shipping option saved", order)
}
