package repo

import (
	"strings"
	"sync"

	"github.com/rogerio-castellano/kiosco-pos/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of
// ProductRepository. The mutex is shared with InMemorySaleRepository: a sale
// transaction holds it from Begin to Finalize/Rollback, which is how the
// per-row write lock of the Postgres implementation is rendered here.
type InMemoryProductRepository struct {
	mu       sync.Mutex
	products []models.Product
	nextID   int
	sales    *InMemorySaleRepository
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: []models.Product{},
		nextID:   1,
	}
}

// SetSaleRepository wires the sale ledger used to refuse deleting products
// that appear on sale lines.
func (r *InMemoryProductRepository) SetSaleRepository(s *InMemorySaleRepository) {
	r.sales = s
}

// Create adds a new product to the repository.
func (r *InMemoryProductRepository) Create(product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.products {
		if p.Barcode == product.Barcode {
			return models.Product{}, ErrDuplicatedValueUnique
		}
	}
	product.ID = r.nextID
	r.nextID++
	r.products = append(r.products, product)
	return product, nil
}

// GetAll retrieves all products from the repository.
func (r *InMemoryProductRepository) GetAll() ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

// GetByID retrieves a product by its ID.
func (r *InMemoryProductRepository) GetByID(id int) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getLocked(id)
}

// GetByBarcode retrieves a product by its barcode.
func (r *InMemoryProductRepository) GetByBarcode(barcode string) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.products {
		if p.Barcode == barcode {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Search matches name or barcode case-insensitively, in-stock products only,
// in insertion order, capped at limit.
func (r *InMemoryProductRepository) Search(query string, limit int) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q := strings.ToLower(query)
	var matches []models.Product
	for _, p := range r.products {
		if p.Stock <= 0 {
			continue
		}
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Barcode), q) {
			continue
		}
		matches = append(matches, p)
		if len(matches) == limit {
			break
		}
	}
	return matches, nil
}

// Update modifies an existing product in the repository.
func (r *InMemoryProductRepository) Update(product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.products {
		if p.Barcode == product.Barcode && p.ID != product.ID {
			return models.Product{}, ErrDuplicatedValueUnique
		}
	}
	for i, p := range r.products {
		if p.ID == product.ID {
			r.products[i] = product
			return product, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Delete removes a product unless a sale line references it.
func (r *InMemoryProductRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sales != nil && r.sales.referencesProduct(id) {
		return ErrProductReferenced
	}
	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}

func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = []models.Product{}
	r.nextID = 1
}

// getLocked and setStockLocked are used by sale transactions, which already
// hold the repository mutex for their whole scope.
func (r *InMemoryProductRepository) getLocked(id int) (models.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) setStockLocked(id, stock int) error {
	for i, p := range r.products {
		if p.ID == id {
			r.products[i].Stock = stock
			return nil
		}
	}
	return ErrProductNotFound
}
