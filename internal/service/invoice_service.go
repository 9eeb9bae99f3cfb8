package service

import (
	"database/sql"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/BobadilloLeftLane/medweg-api/internal/models"
	"github.com/BobadilloLeftLane/medweg-api/internal/pricing"
	"github.com/BobadilloLeftLane/medweg-api/internal/repository"
	"github.com/BobadilloLeftLane/medweg-api/internal/utils"
)

// InvoiceService issues invoices for shipped orders. Totals are
// snapshotted at issue time; rendering is a client concern.
type InvoiceService struct {
	invoiceRepo *repository.InvoiceRepository
	orders      OrderStore
	products    ProductLookup
}

// NewInvoiceService constructs an InvoiceService.
func NewInvoiceService(invoiceRepo *repository.InvoiceRepository, orders OrderStore, products ProductLookup) *InvoiceService {
	return &InvoiceService{invoiceRepo: invoiceRepo, orders: orders, products: products}
}

// Issue creates an invoice for an order. The order must have left the
// warehouse (shipped or delivered) and may only be invoiced once.
func (s *InvoiceService) Issue(orderID int) (*models.Invoice, error) {
	order, err := s.orders.GetByID(orderID)
	if err != nil {
		return nil, utils.ErrOrderNotFound
	}
	if order.Status != models.OrderStatusShipped && order.Status != models.OrderStatusDelivered {
		return nil, utils.ErrInvoiceRequiresShipped
	}

	if existing, err := s.invoiceRepo.GetByOrderID(orderID); err == nil && existing != nil {
		return nil, utils.ErrInvoiceAlreadyIssued
	} else if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	revenue := decimal.Zero
	for _, item := range order.Items {
		revenue = revenue.Add(item.PricePerUnit.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	shipping := decimal.Zero
	if order.SelectedShippingPrice != nil {
		shipping = *order.SelectedShippingPrice
	} else {
		// Shipped without an explicit selection: bill the cheapest option
		// the rate table offers for the order's weight.
		products, err := s.products.GetAll()
		if err != nil {
			return nil, err
		}
		catalog := make(map[int]*models.Product, len(products))
		for i := range products {
			catalog[products[i].ID] = &products[i]
		}
		totals := pricing.AggregateOrder(order.Items, catalog)
		if candidates := pricing.CheapestOptions(totals.TotalWeightKg); len(candidates) > 0 {
			shipping = candidates[0].Price
		}
	}

	inv := &models.Invoice{
		OrderID:       order.ID,
		InstitutionID: order.InstitutionID,
		Revenue:       revenue,
		ShippingCost:  shipping,
		Total:         revenue.Add(shipping),
		IssuedAt:      time.Now(),
	}
	if err := s.invoiceRepo.Create(inv); err != nil {
		return nil, err
	}

	log.Info().Str("number", inv.Number).Int("order_id", order.ID).Msg("Invoice issued")
	return inv, nil
}

// Get returns one invoice.
func (s *InvoiceService) Get(id int) (*models.Invoice, error) {
	return s.invoiceRepo.GetByID(id)
}

// ListByPeriod returns invoices issued in a month.
func (s *InvoiceService) ListByPeriod(year, month int) ([]*models.Invoice, error) {
	return s.invoiceRepo.ListByPeriod(year, month)
}
