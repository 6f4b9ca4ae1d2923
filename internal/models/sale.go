package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is one checkout. Total always equals the sum of its lines' subtotals.
type Sale struct {
	ID        int             `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Total     decimal.Decimal `json:"total"`
	Lines     []SaleLine      `json:"lines,omitempty"`
}

// SaleLine is one product entry within a sale. UnitPrice is a snapshot of the
// product price at the moment of sale, not a live reference.
type SaleLine struct {
	ID        int             `json:"id"`
	SaleID    int             `json:"sale_id"`
	ProductID int             `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}
