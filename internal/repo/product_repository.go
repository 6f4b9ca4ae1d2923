package repo

import "github.com/rogerio-castellano/kiosco-pos/internal/models"

// ProductRepository defines the interface for catalog data operations.
type ProductRepository interface {
	Create(product models.Product) (models.Product, error)
	GetAll() ([]models.Product, error)
	GetByID(id int) (models.Product, error)
	GetByBarcode(barcode string) (models.Product, error)
	// Search matches a case-insensitive substring against name or barcode,
	// restricted to products with stock, returning at most limit results.
	Search(query string, limit int) ([]models.Product, error)
	Update(product models.Product) (models.Product, error)
	Delete(id int) error
}
