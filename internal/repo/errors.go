package repo

import "errors"

var (
	// ErrProductNotFound is returned when a product is absent from the catalog.
	ErrProductNotFound = errors.New("product not found")
	// ErrProductReferenced is returned when deleting a product that appears on
	// at least one sale line.
	ErrProductReferenced = errors.New("product is referenced by sale lines")
	// ErrTicketNotFound is returned when a kitchen ticket is absent.
	ErrTicketNotFound = errors.New("ticket not found")
	// ErrSaleNotFound is returned when a sale is absent from the ledger.
	ErrSaleNotFound = errors.New("sale not found")
	// ErrUserNotFound is returned when a user is absent.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicatedValueUnique is returned on unique-constraint violations.
	ErrDuplicatedValueUnique = errors.New("duplicated value in unique column")
)
