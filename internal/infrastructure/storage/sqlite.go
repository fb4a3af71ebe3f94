package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dawar13/firefly-backend/internal/domain"
	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	sku           TEXT UNIQUE,
	description   TEXT NOT NULL DEFAULT '',
	category      TEXT NOT NULL DEFAULT '',
	firefly_price REAL NOT NULL,
	image_url     TEXT NOT NULL DEFAULT '',
	url           TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMP NOT NULL,
	updated_at    TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS competitor_products (
	id                      TEXT PRIMARY KEY,
	product_id              TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
	competitor_name         TEXT NOT NULL,
	competitor_product_name TEXT NOT NULL DEFAULT '',
	competitor_sku          TEXT NOT NULL DEFAULT '',
	price                   REAL NOT NULL DEFAULT 0,
	url                     TEXT NOT NULL,
	image_url               TEXT NOT NULL DEFAULT '',
	is_available            INTEGER NOT NULL DEFAULT 1,
	last_checked            TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_competitor_products_product
	ON competitor_products(product_id);
`

// Repository is the SQLite-backed ProductRepository
type Repository struct {
	db *sql.DB
}

// New opens (creating if needed) the SQLite database at path and ensures
// the schema exists
func New(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// The pure-Go driver serializes best with a single connection; write
	// volume here is one small batch per refresh
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &Repository{db: db}, nil
}

// Close closes the underlying database
func (r *Repository) Close() error {
	return r.db.Close()
}

// ListProducts returns catalog products matching the filter, each with
// its stored competitor rows
func (r *Repository) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	query := `SELECT id, name, COALESCE(sku, ''), description, category,
		firefly_price, image_url, url, created_at, updated_at
		FROM products WHERE 1=1`
	var args []interface{}

	if filter.MinPrice != nil {
		query += " AND firefly_price >= ?"
		args = append(args, *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query += " AND firefly_price <= ?"
		args = append(args, *filter.MaxPrice)
	}
	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, filter.Category)
	}
	query += " ORDER BY created_at"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.SKU, &p.Description, &p.Category,
			&p.FireflyPrice, &p.ImageURL, &p.URL, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range products {
		competitors, err := r.loadCompetitors(ctx, products[i].ID)
		if err != nil {
			return nil, err
		}
		products[i].Competitors = competitors
	}

	return products, nil
}

// GetProduct returns one catalog product with its stored competitor rows
func (r *Repository) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, COALESCE(sku, ''),
		description, category, firefly_price, image_url, url, created_at, updated_at
		FROM products WHERE id = ?`, id)

	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.SKU, &p.Description, &p.Category,
		&p.FireflyPrice, &p.ImageURL, &p.URL, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading product %s: %w", id, err)
	}

	competitors, err := r.loadCompetitors(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Competitors = competitors

	return &p, nil
}

// CreateProduct inserts a catalog product, assigning an id and timestamps
// when absent
func (r *Repository) CreateProduct(ctx context.Context, product *domain.Product) error {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	var sku interface{}
	if product.SKU != "" {
		sku = product.SKU
	}

	_, err := r.db.ExecContext(ctx, `INSERT INTO products
		(id, name, sku, description, category, firefly_price, image_url, url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		product.ID, product.Name, sku, product.Description, product.Category,
		product.FireflyPrice, product.ImageURL, product.URL, product.CreatedAt, product.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting product: %w", err)
	}
	return nil
}

// UpsertCompetitorProduct records a scraped competitor listing against a
// product, updating the existing row for the same competitor URL when one
// exists
func (r *Repository) UpsertCompetitorProduct(ctx context.Context, productID string, listing *domain.CompetitorListing) error {
	now := time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `UPDATE competitor_products
		SET competitor_product_name = ?, competitor_sku = ?, price = ?,
			image_url = ?, is_available = ?, last_checked = ?
		WHERE product_id = ? AND competitor_name = ? AND url = ?`,
		listing.Name, listing.SKU, listing.Price,
		listing.ImageURL, listing.IsAvailable, now,
		productID, listing.CompetitorID, listing.URL)
	if err != nil {
		return fmt.Errorf("updating competitor product: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO competitor_products
		(id, product_id, competitor_name, competitor_product_name, competitor_sku,
		 price, url, image_url, is_available, last_checked)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), productID, listing.CompetitorID, listing.Name, listing.SKU,
		listing.Price, listing.URL, listing.ImageURL, listing.IsAvailable, now)
	if err != nil {
		return fmt.Errorf("inserting competitor product: %w", err)
	}
	return nil
}

// RefreshTargets returns one (competitor, url) pair per stored competitor
// row for the product
func (r *Repository) RefreshTargets(ctx context.Context, productID string) ([]domain.RefreshTarget, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT competitor_name, url
		FROM competitor_products WHERE product_id = ? ORDER BY competitor_name`, productID)
	if err != nil {
		return nil, fmt.Errorf("loading refresh targets: %w", err)
	}
	defer rows.Close()

	var targets []domain.RefreshTarget
	for rows.Next() {
		var t domain.RefreshTarget
		if err := rows.Scan(&t.CompetitorID, &t.URL); err != nil {
			return nil, fmt.Errorf("scanning refresh target: %w", err)
		}
		targets = append(targets, t)
	}
	return targets, rows.Err()
}

// ApplyRefreshUpdates persists the observed price and availability for
// each refreshed competitor in one transaction
func (r *Repository) ApplyRefreshUpdates(ctx context.Context, productID string, updates []domain.RefreshUpdate) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning refresh transaction: %w", err)
	}
	defer tx.Rollback()

	for _, update := range updates {
		// Keyed on url as well: a product may track several listings
		// from one competitor
		if _, err := tx.ExecContext(ctx, `UPDATE competitor_products
			SET price = ?, is_available = ?, last_checked = ?
			WHERE product_id = ? AND competitor_name = ? AND url = ?`,
			update.Price, update.IsAvailable, update.CheckedAt,
			productID, update.CompetitorID, update.URL); err != nil {
			return fmt.Errorf("applying update for %s: %w", update.CompetitorID, err)
		}
	}

	return tx.Commit()
}

// loadCompetitors returns the stored competitor rows for one product
func (r *Repository) loadCompetitors(ctx context.Context, productID string) ([]domain.CompetitorProduct, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, product_id, competitor_name,
		competitor_product_name, competitor_sku, price, url, image_url, is_available, last_checked
		FROM competitor_products WHERE product_id = ? ORDER BY competitor_name`, productID)
	if err != nil {
		return nil, fmt.Errorf("loading competitors for %s: %w", productID, err)
	}
	defer rows.Close()

	var competitors []domain.CompetitorProduct
	for rows.Next() {
		var c domain.CompetitorProduct
		if err := rows.Scan(&c.ID, &c.ProductID, &c.CompetitorName, &c.Name, &c.SKU,
			&c.Price, &c.URL, &c.ImageURL, &c.IsAvailable, &c.LastChecked); err != nil {
			return nil, fmt.Errorf("scanning competitor row: %w", err)
		}
		competitors = append(competitors, c)
	}
	return competitors, rows.Err()
}
