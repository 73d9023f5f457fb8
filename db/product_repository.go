package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"retailer/entities"
)

type IProductRepository interface {
	Create(ctx context.Context, product entities.Product) error
	GetByID(ctx context.Context, productID string) (entities.Product, error)
	List(ctx context.Context) ([]entities.Product, error)
	Update(ctx context.Context, product entities.Product) (entities.Product, error)
	UpdateStock(ctx context.Context, productID string, stockAvailable int, version int64) error
	Delete(ctx context.Context, productID string) error
}

type ProductRepository struct {
	db *DB
}

func NewProductRepository(db *DB) ProductRepository {
	if db == nil {
		panic("db is nil")
	}
	return ProductRepository{
		db: db,
	}
}

func (pr ProductRepository) Create(ctx context.Context, product entities.Product) error {
	_, err := pr.db.Conn.NamedExecContext(
		ctx,
		`
		INSERT INTO
			products (product_id, product_name, description, price_cents, stock_available, image_url)
		VALUES
			(:product_id, :product_name, :description, :price_cents, :stock_available, :image_url)`,
		product,
	)
	if isErrorUniqueViolation(err) {
		return fmt.Errorf("product %s already exists: %w", product.ProductID, entities.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("could not save product: %w", err)
	}
	return nil
}

func (pr ProductRepository) GetByID(ctx context.Context, productID string) (entities.Product, error) {
	var product entities.Product
	err := pr.db.Conn.GetContext(ctx, &product, `
		SELECT
			product_id, product_name, description, price_cents, stock_available, image_url, version
		FROM
			products
		WHERE
			product_id = $1
	`, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Product{}, fmt.Errorf("product %s: %w", productID, entities.ErrNotFound)
	}
	if err != nil {
		return entities.Product{}, fmt.Errorf("could not get product: %w", err)
	}

	return product, nil
}

func (pr ProductRepository) List(ctx context.Context) ([]entities.Product, error) {
	var products []entities.Product
	err := pr.db.Conn.SelectContext(ctx, &products, `
		SELECT
			product_id, product_name, description, price_cents, stock_available, image_url, version
		FROM
			products
		ORDER BY
			product_name
	`)
	if err != nil {
		return nil, fmt.Errorf("could not list products: %w", err)
	}

	return products, nil
}

// Update replaces all mutable fields of the product. The write is rejected
// when product.Version no longer matches the stored row.
func (pr ProductRepository) Update(ctx context.Context, product entities.Product) (entities.Product, error) {
	var updated entities.Product
	err := pr.db.Conn.GetContext(ctx, &updated, `
		UPDATE products
		SET
			product_name = $1,
			description = $2,
			price_cents = $3,
			stock_available = $4,
			image_url = $5,
			version = version + 1
		WHERE
			product_id = $6 AND version = $7
		RETURNING
			product_id, product_name, description, price_cents, stock_available, image_url, version
	`, product.ProductName, product.Description, product.PriceCents,
		product.StockAvailable, product.ImageURL, product.ProductID, product.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Product{}, pr.notFoundOrConflict(ctx, product.ProductID)
	}
	if err != nil {
		return entities.Product{}, fmt.Errorf("could not update product: %w", err)
	}

	return updated, nil
}

// UpdateStock writes a new stock level for the product. The version must be
// the one observed when the stock was read; a stale version is a conflict the
// caller retries against re-read state.
func (pr ProductRepository) UpdateStock(ctx context.Context, productID string, stockAvailable int, version int64) error {
	res, err := pr.db.Conn.ExecContext(ctx, `
		UPDATE products
		SET
			stock_available = $1,
			version = version + 1
		WHERE
			product_id = $2 AND version = $3
	`, stockAvailable, productID, version)
	if err != nil {
		return fmt.Errorf("could not update product stock: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not check stock update result: %w", err)
	}
	if affected == 0 {
		return pr.notFoundOrConflict(ctx, productID)
	}

	return nil
}

func (pr ProductRepository) Delete(ctx context.Context, productID string) error {
	_, err := pr.db.Conn.ExecContext(ctx,
		`DELETE FROM products WHERE product_id = $1`,
		productID)
	if err != nil {
		return fmt.Errorf("could not delete product: %w", err)
	}
	return nil
}

func (pr ProductRepository) notFoundOrConflict(ctx context.Context, productID string) error {
	var exists bool
	err := pr.db.Conn.GetContext(ctx, &exists, `
		SELECT EXISTS (SELECT 1 FROM products WHERE product_id = $1)`, productID)
	if err != nil {
		return fmt.Errorf("could not check if product exists: %w", err)
	}
	if !exists {
		return fmt.Errorf("product %s: %w", productID, entities.ErrNotFound)
	}
	return fmt.Errorf("product %s was modified concurrently: %w", productID, entities.ErrConflict)
}
