package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BobadilloLeftLane/medweg-api/internal/service"
	"github.com/BobadilloLeftLane/medweg-api/internal/utils"
)

// InvoiceHandler covers admin invoicing.
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Issue handles POST /v1/admin/invoices
func (h *InvoiceHandler) Issue(c *gin.Context) {
	var req struct {
		OrderID int `json:"orderId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	invoice, err := h.invoiceService.Issue(req.OrderID)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrOrderNotFound):
			utils.Error(c, 404, "ORDER_NOT_FOUND", "Order not found")
		case errors.Is(err, utils.ErrInvoiceRequiresShipped):
			utils.Error(c, 409, "ORDER_NOT_SHIPPED", "Only shipped or delivered orders can be invoiced")
		case errors.Is(err, utils.ErrInvoiceAlreadyIssued):
			utils.Error(c, 409, "INVOICE_EXISTS", "Order already has an invoice")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to issue invoice")
		}
		return
	}
	utils.Success(c, 201, "Invoice issued", invoice)
}

// Get handles GET /v1/admin/invoices/:id
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid invoice id")
		return
	}

	invoice, err := h.invoiceService.Get(id)
	if err != nil {
		utils.Error(c, 404, "INVOICE_NOT_FOUND", "Invoice not found")
		return
	}
	utils.Success(c, 200, "Invoice retrieved", invoice)
}

// ListByPeriod handles GET /v1/admin/invoices?year=&month=
func (h *InvoiceHandler) ListByPeriod(c *gin.Context) {
	year, ok := queryInt(c, "year")
	if !ok {
		return
	}
	month, ok := queryInt(c, "month")
	if !ok {
		return
	}
	if year == 0 || month < 1 || month > 12 {
		utils.Error(c, 400, "INVALID_REQUEST", "year and month are required")
		return
	}

	invoices, err := h.invoiceService.ListByPeriod(year, month)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to list invoices")
		return
	}
	utils.Success(c, 200, "Invoices retrieved", invoices)
}
