package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/BobadilloLeftLane/medweg-api/internal/models"
)

// InvoiceRepository handles data access for invoices.
type InvoiceRepository struct {
	db *sqlx.DB
}

// NewInvoiceRepository creates a new InvoiceRepository.
func NewInvoiceRepository(db *sqlx.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Create inserts an invoice, assigning the next sequential number for the
// issue year inside the transaction so concurrent issuers cannot collide.
func (r *InvoiceRepository) Create(inv *models.Invoice) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	year := inv.IssuedAt.Year()

	// Per-year counter row, locked for the duration of the insert.
	var seq int
	err = tx.QueryRowx(`INSERT INTO invoice_counters (year, last_seq)
		VALUES ($1, 1)
		ON CONFLICT (year) DO UPDATE SET last_seq = invoice_counters.last_seq + 1
		RETURNING last_seq`, year).Scan(&seq)
	if err != nil {
		return err
	}
	inv.Number = fmt.Sprintf("INV-%d-%06d", year, seq)

	query := `INSERT INTO invoices (number, order_id, institution_id, revenue, shipping_cost, total, issued_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id, created_at`
	if err := tx.QueryRowx(query,
		inv.Number,
		inv.OrderID,
		inv.InstitutionID,
		inv.Revenue,
		inv.ShippingCost,
		inv.Total,
		inv.IssuedAt,
	).Scan(&inv.ID, &inv.CreatedAt); err != nil {
		return err
	}

	return tx.Commit()
}

// GetByID returns one invoice.
func (r *InvoiceRepository) GetByID(id int) (*models.Invoice, error) {
	var inv models.Invoice
	if err := r.db.Get(&inv, `SELECT * FROM invoices WHERE id = $1 LIMIT 1`, id); err != nil {
		return nil, err
	}
	return &inv, nil
}

// GetByOrderID returns the invoice issued for an order, if any.
func (r *InvoiceRepository) GetByOrderID(orderID int) (*models.Invoice, error) {
	var inv models.Invoice
	err := r.db.Get(&inv, `SELECT * FROM invoices WHERE order_id = $1 LIMIT 1`, orderID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &inv, nil
}

// ListByPeriod returns invoices issued in the given month.
func (r *InvoiceRepository) ListByPeriod(year, month int) ([]*models.Invoice, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var invoices []*models.Invoice
	err := r.db.Select(&invoices, `SELECT * FROM invoices
		WHERE issued_at >= $1 AND issued_at < $2
		ORDER BY number`, start, end)
	if err != nil {
		return nil, err
	}
	return invoices, nil
}
