package service

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/BobadilloLeftLane/medweg-api/internal/models"
	"github.com/BobadilloLeftLane/medweg-api/internal/pricing"
	"github.com/BobadilloLeftLane/medweg-api/internal/utils"
)

// OrderStore is the subset of the order repository the service needs.
// Declared here so tests can substitute an in-memory implementation.
type OrderStore interface {
	Create(order *models.Order) error
	GetByID(id int) (*models.Order, error)
	ListAll(status models.OrderStatus, limit int) ([]*models.Order, error)
	ListByInstitution(institutionID int) ([]*models.Order, error)
	UpdateStatus(id int, status models.OrderStatus) error
	UpdateShipping(id int, carrier string, price decimal.Decimal) error
	RestoreStock(order *models.Order) error
}

// ProductLookup resolves products for order validation and the shipping
// weight check.
type ProductLookup interface {
	GetByID(id int) (*models.Product, error)
	GetAll() ([]models.Product, error)
}

// PatientLookup verifies patient ownership when an order is placed.
type PatientLookup interface {
	GetByID(institutionID, id int) (*models.Patient, error)
}

// OrderService handles order placement, lifecycle transitions and the
// shipping selection rules.
type OrderService struct {
	orders   OrderStore
	products ProductLookup
	patients PatientLookup
}

// NewOrderService constructs an OrderService.
func NewOrderService(orders OrderStore, products ProductLookup, patients PatientLookup) *OrderService {
	return &OrderService{orders: orders, products: products, patients: patients}
}

// CreateOrderRequest carries an order placement payload.
type CreateOrderRequest struct {
	PatientID int                      `json:"patientId" binding:"required"`
	Notes     string                   `json:"notes"`
	Items     []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreateOrderItemRequest is one requested line.
type CreateOrderItemRequest struct {
	ProductID int `json:"productId" binding:"required"`
	Quantity  int `json:"quantity" binding:"required,min=1"`
}

// Create places an order for a patient. The sale price of each product is
// snapshotted into the line item; stock is reserved transactionally.
func (s *OrderService) Create(institutionID int, req *CreateOrderRequest) (*models.Order, error) {
	if _, err := s.patients.GetByID(institutionID, req.PatientID); err != nil {
		return nil, utils.ErrPatientNotFound
	}

	order := &models.Order{
		Reference:     newOrderReference(),
		InstitutionID: institutionID,
		PatientID:     req.PatientID,
		Status:        models.OrderStatusPending,
		Notes:         req.Notes,
	}

	for _, line := range req.Items {
		product, err := s.products.GetByID(line.ProductID)
		if err != nil || !product.IsActive {
			return nil, utils.ErrProductNotFound
		}
		order.Items = append(order.Items, models.OrderItem{
			ProductID:    product.ID,
			Quantity:     line.Quantity,
			PricePerUnit: product.SalePrice,
		})
	}

	if err := s.orders.Create(order); err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.ErrInsufficientStock
		}
		return nil, err
	}

	log.Info().
		Str("reference", order.Reference).
		Int("institution_id", institutionID).
		Int("items", len(order.Items)).
		Msg("Order placed")
	return order, nil
}

// Get returns one order. When institutionID is non-zero the order must
// belong to that institution.
func (s *OrderService) Get(institutionID, id int) (*models.Order, error) {
	order, err := s.orders.GetByID(id)
	if err != nil {
		return nil, utils.ErrOrderNotFound
	}
	if institutionID != 0 && order.InstitutionID != institutionID {
		return nil, utils.ErrOrderNotFound
	}
	return order, nil
}

// ListAll returns orders across institutions for the admin app.
func (s *OrderService) ListAll(status models.OrderStatus, limit int) ([]*models.Order, error) {
	return s.orders.ListAll(status, limit)
}

// ListByInstitution returns one institution's orders.
func (s *OrderService) ListByInstitution(institutionID int) ([]*models.Order, error) {
	return s.orders.ListByInstitution(institutionID)
}

// validStatusTransitions defines the order lifecycle. Cancellation is only
// possible before the shipment leaves the warehouse.
var validStatusTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPending:    {models.OrderStatusProcessing, models.OrderStatusCancelled},
	models.OrderStatusProcessing: {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:    {models.OrderStatusDelivered},
}

// UpdateStatus moves an order through its lifecycle and restores stock on
// cancellation.
func (s *OrderService) UpdateStatus(id int, next models.OrderStatus) (*models.Order, error) {
	order, err := s.orders.GetByID(id)
	if err != nil {
		return nil, utils.ErrOrderNotFound
	}

	allowed := false
	for _, candidate := range validStatusTransitions[order.Status] {
		if candidate == next {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, utils.ErrInvalidStatusChange
	}

	if err := s.orders.UpdateStatus(id, next); err != nil {
		return nil, err
	}
	if next == models.OrderStatusCancelled {
		if err := s.orders.RestoreStock(order); err != nil {
			log.Error().Err(err).Int("order_id", id).Msg("Failed to restore stock for cancelled order")
		}
	}

	order.Status = next
	log.Info().Str("reference", order.Reference).Str("status", string(next)).Msg("Order status updated")
	return order, nil
}

// SelectShipping persists a shipping choice on an order. The submitted
// carrier/price pair is validated against the candidates computed from the
// order's actual weight, and orders already shipped or delivered reject
// changes.
func (s *OrderService) SelectShipping(id int, carrier string, price decimal.Decimal) (*models.Order, error) {
	order, err := s.orders.GetByID(id)
	if err != nil {
		return nil, utils.ErrOrderNotFound
	}
	if order.Status.ShippingLocked() {
		return nil, utils.ErrShippingLocked
	}

	catalog, err := s.loadCatalog()
	if err != nil {
		return nil, err
	}

	totals := pricing.AggregateOrder(order.Items, catalog)
	option, ok := pricing.FindOption(totals.TotalWeightKg, carrier, price)
	if !ok {
		return nil, utils.ErrShippingNotOffered
	}

	if err := s.orders.UpdateShipping(id, option.Carrier, option.Price); err != nil {
		return nil, err
	}

	order.SelectedShippingCarrier = &option.Carrier
	selectedPrice := option.Price
	order.SelectedShippingPrice = &selectedPrice

	log.Info().
		Str("reference", order.Reference).
		Str("carrier", option.Carrier).
		Str("price", option.Price.String()).
		Msg("Shipping option selected")
	return order, nil
}

// ShippingQuote carries the weight-derived shipping candidates for one
// order, alongside the totals they were computed from.
type ShippingQuote struct {
	OrderID       int                      `json:"orderId"`
	TotalWeightKg decimal.Decimal          `json:"totalWeightKg"`
	Options       []pricing.ShippingOption `json:"options"`
}

// ShippingOptions returns the up-to-two cheapest carrier tiers that can
// carry the order's total weight.
func (s *OrderService) ShippingOptions(id int) (*ShippingQuote, error) {
	order, err := s.orders.GetByID(id)
	if err != nil {
		return nil, utils.ErrOrderNotFound
	}

	catalog, err := s.loadCatalog()
	if err != nil {
		return nil, err
	}

	totals := pricing.AggregateOrder(order.Items, catalog)
	return &ShippingQuote{
		OrderID:       order.ID,
		TotalWeightKg: totals.TotalWeightKg,
		Options:       pricing.CheapestOptions(totals.TotalWeightKg),
	}, nil
}

func (s *OrderService) loadCatalog() (map[int]*models.Product, error) {
	products, err := s.products.GetAll()
	if err != nil {
		return nil, err
	}
	catalog := make(map[int]*models.Product, len(products))
	for i := range products {
		catalog[products[i].ID] = &products[i]
	}
	return catalog, nil
}

// newOrderReference builds a short human-readable order reference.
func newOrderReference() string {
	id := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("ORD-%s", id)
}
