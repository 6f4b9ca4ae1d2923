package repo

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/kiosco-pos/internal/models"
)

// SaleRepository opens sale transactions and reads the sale ledger.
type SaleRepository interface {
	// Begin opens the atomic scope of one sale registration and creates the
	// sale record with a zero total placeholder. The caller must end the
	// scope with Finalize or Rollback.
	Begin(ctx context.Context) (SaleTx, error)
	// GetByID returns a sale with its lines.
	GetByID(id int) (models.Sale, error)
	// ListRecent returns up to limit sales, newest first, without lines.
	ListRecent(limit int) ([]models.Sale, error)
}

// SaleTx is the explicit transactional scope of one sale registration. All
// operations act on the same underlying transaction. ProductForUpdate holds a
// write lock on the product row until Finalize or Rollback, so concurrent
// sales touching the same product serialize instead of racing.
type SaleTx interface {
	// SaleID is the identity of the sale created by Begin.
	SaleID() int
	// ProductForUpdate loads a product under a write lock. Within the same
	// scope it observes stock already written through UpdateProductStock.
	ProductForUpdate(ctx context.Context, productID int) (models.Product, error)
	// UpdateProductStock writes the product's new stock count.
	UpdateProductStock(ctx context.Context, productID, stock int) error
	// AddLine records one sale line for the sale created by Begin.
	AddLine(ctx context.Context, line models.SaleLine) error
	// Finalize persists the sale total and commits every write in the scope.
	Finalize(ctx context.Context, total decimal.Decimal) error
	// Rollback discards every write in the scope, including stock updates.
	// Calling it after Finalize is a no-op.
	Rollback(ctx context.Context) error
}
