package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/BobadilloLeftLane/medweg-api/internal/models"
)

// ProductRepository handles data access for the warehouse product catalog.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetAll returns the full stock list, active and inactive. The calculator
// needs the complete catalog to resolve line items of historical orders.
func (r *ProductRepository) GetAll() ([]models.Product, error) {
	const q = `SELECT * FROM products ORDER BY category, name`

	var products []models.Product
	if err := r.db.Select(&products, q); err != nil {
		return nil, err
	}
	return products, nil
}

// GetActive returns products browsable by institutions, with optional
// category and name filters. Empty filters are ignored.
func (r *ProductRepository) GetActive(category, search string) ([]models.Product, error) {
	const q = `
        SELECT * FROM products
        WHERE ($1 = '' OR category = $1)
        AND ($2 = '' OR name ILIKE '%' || $2 || '%')
        AND is_active = true
        ORDER BY category, name`

	var products []models.Product
	if err := r.db.Select(&products, q, category, search); err != nil {
		return nil, err
	}
	return products, nil
}

// GetByID returns a single product by id.
func (r *ProductRepository) GetByID(id int) (*models.Product, error) {
	const q = `SELECT * FROM products WHERE id = $1 LIMIT 1`

	var p models.Product
	if err := r.db.Get(&p, q, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &p, nil
}

// GetBySKU returns a single product by SKU.
func (r *ProductRepository) GetBySKU(sku string) (*models.Product, error) {
	const q = `SELECT * FROM products WHERE sku = $1 LIMIT 1`

	var p models.Product
	if err := r.db.Get(&p, q, sku); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new product.
func (r *ProductRepository) Create(p *models.Product) error {
	query := `INSERT INTO products (sku, name, category, description, sale_price, purchase_price,
	              weight, weight_unit, stock_qty, reorder_level, is_active)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          RETURNING id, created_at, updated_at`

	return r.db.QueryRowx(query,
		p.SKU, p.Name, p.Category, p.Description, p.SalePrice, p.PurchasePrice,
		p.Weight, p.WeightUnit, p.StockQty, p.ReorderLevel, p.IsActive,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// Update updates an existing product.
func (r *ProductRepository) Update(p *models.Product) error {
	query := `UPDATE products
	          SET sku = $1, name = $2, category = $3, description = $4,
	              sale_price = $5, purchase_price = $6, weight = $7, weight_unit = $8,
	              stock_qty = $9, reorder_level = $10, is_active = $11, updated_at = NOW()
	          WHERE id = $12
	          RETURNING updated_at`

	return r.db.QueryRowx(query,
		p.SKU, p.Name, p.Category, p.Description,
		p.SalePrice, p.PurchasePrice, p.Weight, p.WeightUnit,
		p.StockQty, p.ReorderLevel, p.IsActive, p.ID,
	).Scan(&p.UpdatedAt)
}

// AdjustStock changes a product's stock quantity by delta (positive or
// negative) and fails if the result would go below zero.
func (r *ProductRepository) AdjustStock(tx *sqlx.Tx, productID, delta int) error {
	res, err := tx.Exec(`UPDATE products
		SET stock_qty = stock_qty + $1, updated_at = NOW()
		WHERE id = $2 AND stock_qty + $1 >= 0`, delta, productID)
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

// GetBelowReorderLevel returns active products whose stock has reached the
// reorder threshold. Used by the stock check worker.
func (r *ProductRepository) GetBelowReorderLevel() ([]models.Product, error) {
	const q = `SELECT * FROM products
		WHERE is_active = true AND stock_qty <= reorder_level
		ORDER BY stock_qty ASC`

	var products []models.Product
	if err := r.db.Select(&products, q); err != nil {
		return nil, err
	}
	return products, nil
}

// Beginx starts a transaction for multi-row stock mutations.
func (r *ProductRepository) Beginx() (*sqlx.Tx, error) {
	return r.db.Beginx()
}
