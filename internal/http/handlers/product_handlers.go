package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	models "github.com/rogerio-castellano/kiosco-pos/internal/models"
	repo "github.com/rogerio-castellano/kiosco-pos/internal/repo"
)

const searchLimit = 10

// GetProductByBarcodeHandler godoc
// @Summary Resolve a scanned barcode to a sellable product
// @Tags productos
// @Produce json
// @Param codigo path string true "Barcode"
// @Success 200 {object} ProductoResponse
// @Failure 404 {object} ErrorResult
// @Router /api/producto/{codigo} [get]
func GetProductByBarcodeHandler(w http.ResponseWriter, r *http.Request) {
	codigo := chi.URLParam(r, "codigo")

	if cache != nil {
		if body := cache.CachedProduct(codigo); body != "" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
			return
		}
	}

	product, err := productRepo.GetByBarcode(codigo)
	if errors.Is(err, repo.ErrProductNotFound) {
		writeError(w, http.StatusNotFound, "Producto no encontrado")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not fetch product")
		return
	}
	if product.Stock <= 0 {
		writeError(w, http.StatusNotFound, "Producto sin stock")
		return
	}

	resp := ProductoResponse{
		ID:     product.ID,
		Nombre: product.Name,
		Precio: product.Price,
		Stock:  product.Stock,
	}
	body, err := json.Marshal(resp)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}
	if cache != nil {
		cache.CacheProduct(codigo, body)
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

// SearchProductsHandler godoc
// @Summary Search in-stock products by name or barcode substring
// @Tags productos
// @Produce json
// @Param q query string false "Search term"
// @Success 200 {array} ProductoSearchResponse
// @Router /api/buscar_productos [get]
func SearchProductsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	results := []ProductoSearchResponse{}
	if q != "" {
		products, err := productRepo.Search(q, searchLimit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "could not search products")
			return
		}
		for _, p := range products {
			results = append(results, ProductoSearchResponse{
				ID:           p.ID,
				Nombre:       p.Name,
				CodigoBarras: p.Barcode,
				Precio:       p.Price,
				Stock:        p.Stock,
			})
		}
	}

	_ = writeJSON(w, http.StatusOK, results)
}

// GetProductsHandler godoc
// @Summary List the whole catalog
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Product
// @Failure 403 {string} string "Forbidden"
// @Router /api/admin/productos [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	products, err := productRepo.GetAll()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not fetch products")
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	_ = writeJSON(w, http.StatusOK, products)
}

// CreateProductHandler godoc
// @Summary Add a product to the catalog
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} models.Product
// @Failure 400 {object} []ProductValidationError
// @Router /api/admin/productos [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	validationErrors := validateProduct(req)
	if len(validationErrors) > 0 {
		_ = writeJSON(w, http.StatusBadRequest, validationErrors)
		return
	}

	created, err := productRepo.Create(models.Product{
		Name:    req.Nombre,
		Barcode: req.CodigoBarras,
		Price:   req.Precio,
		Stock:   req.Stock,
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			writeError(w, http.StatusConflict, "barcode already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "could not create product")
		return
	}

	_ = writeJSON(w, http.StatusCreated, created)
}

// UpdateProductHandler godoc
// @Summary Update a product
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param product body ProductRequest true "Updated product"
// @Success 200 {object} models.Product
// @Failure 404 {object} ErrorResult
// @Router /api/admin/productos/{id} [put]
func UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	validationErrors := validateProduct(req)
	if len(validationErrors) > 0 {
		_ = writeJSON(w, http.StatusBadRequest, validationErrors)
		return
	}

	updated, err := productRepo.Update(models.Product{
		ID:      id,
		Name:    req.Nombre,
		Barcode: req.CodigoBarras,
		Price:   req.Precio,
		Stock:   req.Stock,
	})
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			writeError(w, http.StatusConflict, "barcode already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "could not update product")
		return
	}

	if cache != nil {
		cache.InvalidateProduct(updated.Barcode)
	}
	_ = writeJSON(w, http.StatusOK, updated)
}

// DeleteProductHandler godoc
// @Summary Delete a product never sold
// @Tags admin
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 204 "Deleted successfully"
// @Failure 404 {object} ErrorResult
// @Failure 409 {object} ErrorResult "Referenced by sales"
// @Router /api/admin/productos/{id} [delete]
func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	product, err := productRepo.GetByID(id)
	if errors.Is(err, repo.ErrProductNotFound) {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not fetch product")
		return
	}

	if err := productRepo.Delete(id); err != nil {
		if errors.Is(err, repo.ErrProductReferenced) {
			writeError(w, http.StatusConflict, "product has recorded sales")
			return
		}
		if errors.Is(err, repo.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "could not delete product")
		return
	}

	if cache != nil {
		cache.InvalidateProduct(product.Barcode)
	}
	w.WriteHeader(http.StatusNoContent)
}

func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	role, err := GetRoleFromContext(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return false
	}
	if role != "admin" {
		writeError(w, http.StatusForbidden, "forbidden")
		return false
	}
	return true
}
