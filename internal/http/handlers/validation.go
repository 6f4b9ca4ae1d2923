package handlers

import (
	"strings"

	"github.com/shopspring/decimal"
)

type ProductValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validateProduct(p ProductRequest) []ProductValidationError {
	errs := []ProductValidationError{}
	if strings.TrimSpace(p.Nombre) == "" {
		errs = append(errs, ProductValidationError{Field: "Nombre", Description: "Nombre is required"})
	}
	if strings.TrimSpace(p.CodigoBarras) == "" {
		errs = append(errs, ProductValidationError{Field: "CodigoBarras", Description: "CodigoBarras is required"})
	}
	if p.Precio.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, ProductValidationError{Field: "Precio", Description: "Precio must be greater than zero"})
	}
	if p.Stock < 0 {
		errs = append(errs, ProductValidationError{Field: "Stock", Description: "Stock cannot be negative"})
	}
	return errs
}
