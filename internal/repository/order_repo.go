package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/BobadilloLeftLane/medweg-api/internal/models"
)

// OrderRepository handles data access for orders and their line items.
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `id, reference, institution_id, patient_id, status,
	selected_shipping_carrier, selected_shipping_price, notes, created_at, updated_at`

// Create inserts an order with its items and decrements stock for every
// line in one transaction. If any product has insufficient stock the whole
// order is rolled back.
func (r *OrderRepository) Create(order *models.Order) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO orders (reference, institution_id, patient_id, status, notes)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, created_at, updated_at`
	if err := tx.QueryRowx(query,
		order.Reference,
		order.InstitutionID,
		order.PatientID,
		order.Status,
		order.Notes,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return err
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID

		if err := tx.QueryRowx(`INSERT INTO order_items (order_id, product_id, quantity, price_per_unit)
			VALUES ($1, $2, $3, $4) RETURNING id`,
			item.OrderID, item.ProductID, item.Quantity, item.PricePerUnit,
		).Scan(&item.ID); err != nil {
			return err
		}

		// Reserve stock; fails when the remaining quantity would go negative.
		res, err := tx.Exec(`UPDATE products
			SET stock_qty = stock_qty - $1, updated_at = NOW()
			WHERE id = $2 AND stock_qty >= $1`, item.Quantity, item.ProductID)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return sql.ErrNoRows
		}
	}

	return tx.Commit()
}

// GetByID returns one order with its items.
func (r *OrderRepository) GetByID(id int) (*models.Order, error) {
	var order models.Order
	if err := r.db.Get(&order, `SELECT `+orderColumns+` FROM orders WHERE id = $1 LIMIT 1`, id); err != nil {
		return nil, err
	}
	if err := r.attachItems([]*models.Order{&order}); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListAll returns orders across all institutions with an optional status
// filter and limit, newest first, items embedded. Used by the admin app.
func (r *OrderRepository) ListAll(status models.OrderStatus, limit int) ([]*models.Order, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var orders []*models.Order
	err := r.db.Select(&orders, `SELECT `+orderColumns+` FROM orders
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC LIMIT $2`, string(status), limit)
	if err != nil {
		return nil, err
	}
	if err := r.attachItems(orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListByInstitution returns an institution's orders, items embedded.
func (r *OrderRepository) ListByInstitution(institutionID int) ([]*models.Order, error) {
	var orders []*models.Order
	err := r.db.Select(&orders, `SELECT `+orderColumns+` FROM orders
		WHERE institution_id = $1 ORDER BY created_at DESC`, institutionID)
	if err != nil {
		return nil, err
	}
	if err := r.attachItems(orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListByPeriod returns all non-cancelled orders created in the given month,
// items embedded. The calculator page runs over exactly this set.
func (r *OrderRepository) ListByPeriod(year int, month int) ([]*models.Order, error) {
	var orders []*models.Order
	err := r.db.Select(&orders, `SELECT `+orderColumns+` FROM orders
		WHERE EXTRACT(YEAR FROM created_at) = $1
		AND EXTRACT(MONTH FROM created_at) = $2
		AND status <> 'cancelled'
		ORDER BY created_at ASC`, year, month)
	if err != nil {
		return nil, err
	}
	if err := r.attachItems(orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus moves an order to a new status.
func (r *OrderRepository) UpdateStatus(id int, status models.OrderStatus) error {
	res, err := r.db.Exec(`UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateShipping persists the selected shipping option on an order.
func (r *OrderRepository) UpdateShipping(id int, carrier string, price decimal.Decimal) error {
	res, err := r.db.Exec(`UPDATE orders
		SET selected_shipping_carrier = $1, selected_shipping_price = $2, updated_at = NOW()
		WHERE id = $3`, carrier, price, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// RestoreStock returns reserved quantities to the warehouse when an order
// is cancelled.
func (r *OrderRepository) RestoreStock(order *models.Order) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, item := range order.Items {
		if _, err := tx.Exec(`UPDATE products
			SET stock_qty = stock_qty + $1, updated_at = NOW()
			WHERE id = $2`, item.Quantity, item.ProductID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// attachItems loads line items for a batch of orders in one query.
func (r *OrderRepository) attachItems(orders []*models.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int, len(orders))
	byID := make(map[int]*models.Order, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		byID[o.ID] = o
	}

	query, args, err := sqlx.In(`SELECT id, order_id, product_id, quantity, price_per_unit
		FROM order_items WHERE order_id IN (?) ORDER BY id`, ids)
	if err != nil {
		return err
	}
	query = r.db.Rebind(query)

	var items []models.OrderItem
	if err := r.db.Select(&items, query, args...); err != nil {
		return err
	}
	for _, item := range items {
		o := byID[item.OrderID]
		o.Items = append(o.Items, item)
	}
	return nil
}
