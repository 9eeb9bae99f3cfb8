package service

import (
	"database/sql"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BobadilloLeftLane/medweg-api/internal/models"
	"github.com/BobadilloLeftLane/medweg-api/internal/utils"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// fakeOrderStore is an in-memory OrderStore.
type fakeOrderStore struct {
	orders        map[int]*models.Order
	nextID        int
	createErr     error
	stockRestored bool
}

func newFakeOrderStore(orders ...*models.Order) *fakeOrderStore {
	s := &fakeOrderStore{orders: map[int]*models.Order{}, nextID: 1}
	for _, o := range orders {
		s.orders[o.ID] = o
		if o.ID >= s.nextID {
			s.nextID = o.ID + 1
		}
	}
	return s
}

func (s *fakeOrderStore) Create(order *models.Order) error {
	if s.createErr != nil {
		return s.createErr
	}
	order.ID = s.nextID
	s.nextID++
	s.orders[order.ID] = order
	return nil
}

func (s *fakeOrderStore) GetByID(id int) (*models.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return o, nil
}

func (s *fakeOrderStore) ListAll(status models.OrderStatus, limit int) ([]*models.Order, error) {
	var out []*models.Order
	for _, o := range s.orders {
		if status == "" || o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *fakeOrderStore) ListByInstitution(institutionID int) ([]*models.Order, error) {
	var out []*models.Order
	for _, o := range s.orders {
		if o.InstitutionID == institutionID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *fakeOrderStore) UpdateStatus(id int, status models.OrderStatus) error {
	s.orders[id].Status = status
	return nil
}

func (s *fakeOrderStore) UpdateShipping(id int, carrier string, price decimal.Decimal) error {
	o := s.orders[id]
	o.SelectedShippingCarrier = &carrier
	o.SelectedShippingPrice = &price
	return nil
}

func (s *fakeOrderStore) RestoreStock(order *models.Order) error {
	s.stockRestored = true
	return nil
}

// fakeProductStore is an in-memory ProductLookup.
type fakeProductStore struct {
	products map[int]*models.Product
}

func (s *fakeProductStore) GetByID(id int) (*models.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return p, nil
}

func (s *fakeProductStore) GetAll() ([]models.Product, error) {
	var out []models.Product
	for _, p := range s.products {
		out = append(out, *p)
	}
	return out, nil
}

// fakePatientStore accepts any patient of institution 1.
type fakePatientStore struct{}

func (s *fakePatientStore) GetByID(institutionID, id int) (*models.Patient, error) {
	if institutionID != 1 {
		return nil, sql.ErrNoRows
	}
	return &models.Patient{ID: id, InstitutionID: institutionID}, nil
}

func testProducts() *fakeProductStore {
	return &fakeProductStore{products: map[int]*models.Product{
		1: {ID: 1, SalePrice: d("3.00"), PurchasePrice: d("1.50"),
			Weight: d("0.5"), WeightUnit: models.WeightUnitKilogram, IsActive: true},
		2: {ID: 2, SalePrice: d("9.00"), PurchasePrice: d("5.00"),
			Weight: d("1000"), WeightUnit: models.WeightUnitGram, IsActive: true},
	}}
}

func TestOrderService_Create_SnapshotsPrices(t *testing.T) {
	store := newFakeOrderStore()
	svc := NewOrderService(store, testProducts(), &fakePatientStore{})

	order, err := svc.Create(1, &CreateOrderRequest{
		PatientID: 5,
		Items: []CreateOrderItemRequest{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Contains(t, order.Reference, "ORD-")
	require.Len(t, order.Items, 2)
	assert.True(t, order.Items[0].PricePerUnit.Equal(d("3.00")))
	assert.True(t, order.Items[1].PricePerUnit.Equal(d("9.00")))
}

func TestOrderService_Create_InsufficientStock(t *testing.T) {
	store := newFakeOrderStore()
	store.createErr = sql.ErrNoRows
	svc := NewOrderService(store, testProducts(), &fakePatientStore{})

	_, err := svc.Create(1, &CreateOrderRequest{
		PatientID: 5,
		Items:     []CreateOrderItemRequest{{ProductID: 1, Quantity: 999}},
	})
	assert.ErrorIs(t, err, utils.ErrInsufficientStock)
}

func TestOrderService_Create_UnknownProduct(t *testing.T) {
	svc := NewOrderService(newFakeOrderStore(), testProducts(), &fakePatientStore{})

	_, err := svc.Create(1, &CreateOrderRequest{
		PatientID: 5,
		Items:     []CreateOrderItemRequest{{ProductID: 42, Quantity: 1}},
	})
	assert.ErrorIs(t, err, utils.ErrProductNotFound)
}

func twoKiloOrder(status models.OrderStatus) *models.Order {
	return &models.Order{
		ID:            10,
		Reference:     "ORD-TEST",
		InstitutionID: 1,
		Status:        status,
		Items: []models.OrderItem{
			{OrderID: 10, ProductID: 1, Quantity: 2, PricePerUnit: d("3.00")},
			{OrderID: 10, ProductID: 2, Quantity: 1, PricePerUnit: d("9.00")},
		},
	}
}

func TestOrderService_SelectShipping_ValidOption(t *testing.T) {
	store := newFakeOrderStore(twoKiloOrder(models.OrderStatusProcessing))
	svc := NewOrderService(store, testProducts(), &fakePatientStore{})

	// 2kg shipment: DHL Päckchen S at 3.99 is offered.
	order, err := svc.SelectShipping(10, "DHL", d("3.99"))
	require.NoError(t, err)

	require.NotNil(t, order.SelectedShippingCarrier)
	assert.Equal(t, "DHL", *order.SelectedShippingCarrier)
	assert.True(t, order.SelectedShippingPrice.Equal(d("3.99")))
}

func TestOrderService_SelectShipping_RejectsUnofferedPrice(t *testing.T) {
	store := newFakeOrderStore(twoKiloOrder(models.OrderStatusProcessing))
	svc := NewOrderService(store, testProducts(), &fakePatientStore{})

	// The backend no longer trusts a client-supplied price.
	_, err := svc.SelectShipping(10, "DHL", d("0.01"))
	assert.ErrorIs(t, err, utils.ErrShippingNotOffered)

	order, _ := store.GetByID(10)
	assert.Nil(t, order.SelectedShippingCarrier)
}

func TestOrderService_SelectShipping_LockedAfterShipped(t *testing.T) {
	for _, status := range []models.OrderStatus{models.OrderStatusShipped, models.OrderStatusDelivered} {
		store := newFakeOrderStore(twoKiloOrder(status))
		svc := NewOrderService(store, testProducts(), &fakePatientStore{})

		_, err := svc.SelectShipping(10, "DHL", d("3.99"))
		assert.ErrorIs(t, err, utils.ErrShippingLocked, "status %s", status)
	}
}

func TestOrderService_ShippingOptions(t *testing.T) {
	store := newFakeOrderStore(twoKiloOrder(models.OrderStatusProcessing))
	svc := NewOrderService(store, testProducts(), &fakePatientStore{})

	quote, err := svc.ShippingOptions(10)
	require.NoError(t, err)

	assert.True(t, quote.TotalWeightKg.Equal(d("2.0")))
	require.Len(t, quote.Options, 2)
	assert.Equal(t, "DHL", quote.Options[0].Carrier)

	_, err = svc.ShippingOptions(99)
	assert.ErrorIs(t, err, utils.ErrOrderNotFound)
}

func TestOrderService_UpdateStatus_Transitions(t *testing.T) {
	store := newFakeOrderStore(twoKiloOrder(models.OrderStatusPending))
	svc := NewOrderService(store, testProducts(), &fakePatientStore{})

	_, err := svc.UpdateStatus(10, models.OrderStatusProcessing)
	require.NoError(t, err)

	// Skipping straight to delivered is not allowed.
	_, err = svc.UpdateStatus(10, models.OrderStatusDelivered)
	assert.ErrorIs(t, err, utils.ErrInvalidStatusChange)

	_, err = svc.UpdateStatus(10, models.OrderStatusShipped)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(10, models.OrderStatusDelivered)
	require.NoError(t, err)

	// Delivered is terminal.
	_, err = svc.UpdateStatus(10, models.OrderStatusCancelled)
	assert.ErrorIs(t, err, utils.ErrInvalidStatusChange)
}

func TestOrderService_Cancel_RestoresStock(t *testing.T) {
	store := newFakeOrderStore(twoKiloOrder(models.OrderStatusPending))
	svc := NewOrderService(store, testProducts(), &fakePatientStore{})

	_, err := svc.UpdateStatus(10, models.OrderStatusCancelled)
	require.NoError(t, err)
	assert.True(t, store.stockRestored)
}

func TestOrderService_Get_ScopedToInstitution(t *testing.T) {
	store := newFakeOrderStore(twoKiloOrder(models.OrderStatusPending))
	svc := NewOrderService(store, testProducts(), &fakePatientStore{})

	_, err := svc.Get(2, 10)
	assert.ErrorIs(t, err, utils.ErrOrderNotFound)

	order, err := svc.Get(1, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, order.ID)

	// institutionID 0 is the admin path, no scoping.
	_, err = svc.Get(0, 10)
	assert.NoError(t, err)
}
