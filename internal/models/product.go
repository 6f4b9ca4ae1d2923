package models

import "github.com/shopspring/decimal"

// Product represents a sellable item in the kiosk catalog.
type Product struct {
	ID      int             `json:"id"`
	Name    string          `json:"name"`
	Barcode string          `json:"barcode"`
	Price   decimal.Decimal `json:"price"`
	Stock   int             `json:"stock"`
}
