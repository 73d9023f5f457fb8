package db

import (
	"context"
	"fmt"
	"sync"

	"retailer/entities"
)

// ProductRepositoryMock keeps products in a versioned map. Writes follow the
// same version-check contract as the Postgres repository so concurrency
// scenarios can be exercised without a database.
type ProductRepositoryMock struct {
	lock     sync.Mutex
	products map[string]entities.Product
}

func NewProductRepositoryMock() *ProductRepositoryMock {
	return &ProductRepositoryMock{
		products: map[string]entities.Product{},
	}
}

func (pr *ProductRepositoryMock) Create(ctx context.Context, product entities.Product) error {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	if _, ok := pr.products[product.ProductID]; ok {
		return fmt.Errorf("product %s already exists: %w", product.ProductID, entities.ErrConflict)
	}
	product.Version = 1
	pr.products[product.ProductID] = product
	return nil
}

func (pr *ProductRepositoryMock) GetByID(ctx context.Context, productID string) (entities.Product, error) {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	product, ok := pr.products[productID]
	if !ok {
		return entities.Product{}, fmt.Errorf("product %s: %w", productID, entities.ErrNotFound)
	}
	return product, nil
}

func (pr *ProductRepositoryMock) List(ctx context.Context) ([]entities.Product, error) {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	products := make([]entities.Product, 0, len(pr.products))
	for _, p := range pr.products {
		products = append(products, p)
	}
	return products, nil
}

func (pr *ProductRepositoryMock) Update(ctx context.Context, product entities.Product) (entities.Product, error) {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	stored, ok := pr.products[product.ProductID]
	if !ok {
		return entities.Product{}, fmt.Errorf("product %s: %w", product.ProductID, entities.ErrNotFound)
	}
	if stored.Version != product.Version {
		return entities.Product{}, fmt.Errorf("product %s was modified concurrently: %w", product.ProductID, entities.ErrConflict)
	}
	product.Version = stored.Version + 1
	pr.products[product.ProductID] = product
	return product, nil
}

func (pr *ProductRepositoryMock) UpdateStock(ctx context.Context, productID string, stockAvailable int, version int64) error {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	stored, ok := pr.products[productID]
	if !ok {
		return fmt.Errorf("product %s: %w", productID, entities.ErrNotFound)
	}
	if stored.Version != version {
		return fmt.Errorf("product %s was modified concurrently: %w", productID, entities.ErrConflict)
	}
	stored.StockAvailable = stockAvailable
	stored.Version++
	pr.products[productID] = stored
	return nil
}

func (pr *ProductRepositoryMock) Delete(ctx context.Context, productID string) error {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	delete(pr.products, productID)
	return nil
}
