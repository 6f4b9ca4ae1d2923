// Package sales registers sales atomically against the catalog: stock is
// decremented, line subtotals snapshotted and the sale total computed inside
// a single transactional scope, or not at all.
package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/kiosco-pos/internal/models"
	"github.com/rogerio-castellano/kiosco-pos/internal/repo"
)

// Item is one requested cart entry. A zero Quantity means 1.
type Item struct {
	ProductID int
	Quantity  int
}

// ErrEmptyOrder is returned when a sale is registered with no items.
var ErrEmptyOrder = errors.New("sale has no items")

// ErrInvalidQuantity is returned when an item requests a negative quantity.
var ErrInvalidQuantity = errors.New("quantity must be positive")

// ProductNotFoundError reports the cart item whose product does not exist.
type ProductNotFoundError struct {
	ID int
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ID)
}

// InsufficientStockError reports a product whose available stock does not
// cover the requested quantity.
type InsufficientStockError struct {
	ProductID int
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d",
		e.Name, e.Requested, e.Available)
}

// Service coordinates the sale registration transaction.
type Service struct {
	sales repo.SaleRepository
}

func NewService(sales repo.SaleRepository) *Service {
	return &Service{sales: sales}
}

// Register performs one sale atomically: per item, the product is loaded
// under a write lock, its stock checked and decremented, and a line with a
// price snapshot recorded; the accumulated total is persisted and the scope
// committed. Any failure rolls back every write, stock included.
func (s *Service) Register(ctx context.Context, items []Item) (int, error) {
	if len(items) == 0 {
		return 0, ErrEmptyOrder
	}

	tx, err := s.sales.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin sale: %w", err)
	}
	defer tx.Rollback(ctx)

	total := decimal.Zero
	for _, item := range items {
		qty := item.Quantity
		if qty == 0 {
			qty = 1
		}
		if qty < 0 {
			return 0, ErrInvalidQuantity
		}

		p, err := tx.ProductForUpdate(ctx, item.ProductID)
		if errors.Is(err, repo.ErrProductNotFound) {
			return 0, &ProductNotFoundError{ID: item.ProductID}
		}
		if err != nil {
			return 0, fmt.Errorf("load product %d: %w", item.ProductID, err)
		}

		if p.Stock < qty {
			return 0, &InsufficientStockError{
				ProductID: p.ID,
				Name:      p.Name,
				Requested: qty,
				Available: p.Stock,
			}
		}

		subtotal := p.Price.Mul(decimal.NewFromInt(int64(qty)))
		line := models.SaleLine{
			SaleID:    tx.SaleID(),
			ProductID: p.ID,
			Quantity:  qty,
			UnitPrice: p.Price,
			Subtotal:  subtotal,
		}
		if err := tx.AddLine(ctx, line); err != nil {
			return 0, fmt.Errorf("add sale line: %w", err)
		}
		if err := tx.UpdateProductStock(ctx, p.ID, p.Stock-qty); err != nil {
			return 0, fmt.Errorf("update stock for product %d: %w", p.ID, err)
		}
		total = total.Add(subtotal)
	}

	if err := tx.Finalize(ctx, total); err != nil {
		return 0, fmt.Errorf("finalize sale: %w", err)
	}
	return tx.SaleID(), nil
}
