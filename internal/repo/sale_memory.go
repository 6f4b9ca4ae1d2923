package repo

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/kiosco-pos/internal/models"
)

// InMemorySaleRepository is an in-memory implementation of SaleRepository.
// A transaction holds the product repository's mutex from Begin until
// Finalize or Rollback, so concurrent sales serialize exactly as they do
// under Postgres row locks, just at store granularity.
type InMemorySaleRepository struct {
	products   *InMemoryProductRepository
	mu         sync.Mutex
	sales      []models.Sale
	nextID     int
	nextLineID int
}

// NewInMemorySaleRepository creates a sale ledger over the given product store.
func NewInMemorySaleRepository(products *InMemoryProductRepository) *InMemorySaleRepository {
	r := &InMemorySaleRepository{
		products:   products,
		sales:      []models.Sale{},
		nextID:     1,
		nextLineID: 1,
	}
	products.SetSaleRepository(r)
	return r
}

func (r *InMemorySaleRepository) Begin(context.Context) (SaleTx, error) {
	r.products.mu.Lock()

	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.mu.Unlock()

	return &memorySaleTx{
		repo:      r,
		saleID:    id,
		createdAt: time.Now().UTC(),
		stock:     map[int]int{},
	}, nil
}

func (r *InMemorySaleRepository) GetByID(id int) (models.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.sales {
		if s.ID == id {
			return s, nil
		}
	}
	return models.Sale{}, ErrSaleNotFound
}

func (r *InMemorySaleRepository) ListRecent(limit int) ([]models.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Sale
	for i := len(r.sales) - 1; i >= 0 && len(out) < limit; i-- {
		s := r.sales[i]
		s.Lines = nil
		out = append(out, s)
	}
	return out, nil
}

func (r *InMemorySaleRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sales = []models.Sale{}
	r.nextID = 1
	r.nextLineID = 1
}

// referencesProduct reports whether any sale line snapshots the product.
// The caller holds the product repository mutex.
func (r *InMemorySaleRepository) referencesProduct(productID int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.sales {
		for _, l := range s.Lines {
			if l.ProductID == productID {
				return true
			}
		}
	}
	return false
}

type memorySaleTx struct {
	repo      *InMemorySaleRepository
	saleID    int
	createdAt time.Time
	stock     map[int]int
	lines     []models.SaleLine
	done      bool
}

func (t *memorySaleTx) SaleID() int { return t.saleID }

func (t *memorySaleTx) ProductForUpdate(_ context.Context, productID int) (models.Product, error) {
	p, err := t.repo.products.getLocked(productID)
	if err != nil {
		return models.Product{}, err
	}
	// A product updated earlier in this scope must be observed with its
	// staged stock, e.g. when the same product appears twice in a cart.
	if staged, ok := t.stock[productID]; ok {
		p.Stock = staged
	}
	return p, nil
}

func (t *memorySaleTx) UpdateProductStock(_ context.Context, productID, stock int) error {
	if _, err := t.repo.products.getLocked(productID); err != nil {
		return err
	}
	t.stock[productID] = stock
	return nil
}

func (t *memorySaleTx) AddLine(_ context.Context, line models.SaleLine) error {
	line.SaleID = t.saleID
	t.lines = append(t.lines, line)
	return nil
}

func (t *memorySaleTx) Finalize(_ context.Context, total decimal.Decimal) error {
	if t.done {
		return nil
	}

	for productID, stock := range t.stock {
		if err := t.repo.products.setStockLocked(productID, stock); err != nil {
			return err
		}
	}

	t.repo.mu.Lock()
	for i := range t.lines {
		t.lines[i].ID = t.repo.nextLineID
		t.repo.nextLineID++
	}
	t.repo.sales = append(t.repo.sales, models.Sale{
		ID:        t.saleID,
		CreatedAt: t.createdAt,
		Total:     total,
		Lines:     t.lines,
	})
	t.repo.mu.Unlock()

	t.done = true
	t.repo.products.mu.Unlock()
	return nil
}

func (t *memorySaleTx) Rollback(context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.repo.products.mu.Unlock()
	return nil
}
