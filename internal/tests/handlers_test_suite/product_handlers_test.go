package handlers_test_suite

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	api "github.com/rogerio-castellano/kiosco-pos/internal/http"
	handler "github.com/rogerio-castellano/kiosco-pos/internal/http/handlers"
)

func TestGetProductByBarcode_Found(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()
	seedProduct("Leche Entera 1L", "7791234567890", "25.50", 8)

	w := doJSON(r, http.MethodGet, "/api/producto/7791234567890", nil, "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var resp handler.ProductoResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Nombre != "Leche Entera 1L" {
		t.Errorf("expected nombre 'Leche Entera 1L', got %q", resp.Nombre)
	}
	if !resp.Precio.Equal(decimal.RequireFromString("25.50")) {
		t.Errorf("expected precio 25.50, got %s", resp.Precio)
	}
	if resp.Stock != 8 {
		t.Errorf("expected stock 8, got %d", resp.Stock)
	}
}

func TestGetProductByBarcode_NotFound(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	w := doJSON(r, http.MethodGet, "/api/producto/000000", nil, "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var resp handler.ErrorResult
	_ = json.NewDecoder(w.Body).Decode(&resp)
	if resp.Error != "Producto no encontrado" {
		t.Errorf("unexpected error message: %q", resp.Error)
	}
}

func TestGetProductByBarcode_OutOfStock(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()
	seedProduct("Gaseosa", "555", "10.00", 0)

	w := doJSON(r, http.MethodGet, "/api/producto/555", nil, "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var resp handler.ErrorResult
	_ = json.NewDecoder(w.Body).Decode(&resp)
	if resp.Error != "Producto sin stock" {
		t.Errorf("unexpected error message: %q", resp.Error)
	}
}

func TestSearchProducts_MatchesNameAndBarcodeCaseInsensitive(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()
	seedProduct("Leche Entera", "100", "25.00", 5)
	seedProduct("leche descremada", "200", "27.00", 5)
	seedProduct("Pan Flauta", "leche-300", "15.00", 5) // barcode match
	seedProduct("Leche en polvo", "400", "30.00", 0)   // out of stock
	seedProduct("Yerba", "500", "200.00", 5)           // no match

	w := doJSON(r, http.MethodGet, "/api/buscar_productos?q=LECHE", nil, "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp []handler.ProductoSearchResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if len(resp) != 3 {
		t.Fatalf("expected 3 results, got %d", len(resp))
	}
	for _, p := range resp {
		if p.Stock <= 0 {
			t.Errorf("result %q has no stock", p.Nombre)
		}
		if p.Nombre == "Yerba" || p.Nombre == "Leche en polvo" {
			t.Errorf("unexpected result %q", p.Nombre)
		}
	}
}

func TestSearchProducts_CapAndEmptyQuery(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()
	for i := 0; i < 12; i++ {
		seedProduct(fmt.Sprintf("Leche %d", i), fmt.Sprintf("b-%d", i), "10.00", 3)
	}

	w := doJSON(r, http.MethodGet, "/api/buscar_productos?q=leche", nil, "")
	var resp []handler.ProductoSearchResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if len(resp) != 10 {
		t.Errorf("expected results capped at 10, got %d", len(resp))
	}

	w = doJSON(r, http.MethodGet, "/api/buscar_productos", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for empty query, got %d", w.Code)
	}
	if body := w.Body.String(); body != "[]" {
		t.Errorf("expected empty array for empty query, got %s", body)
	}
}

func TestAdminProducts_RequireAdminRole(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	payload := handler.ProductRequest{
		Nombre:       "Cafe",
		CodigoBarras: "900",
		Precio:       decimal.RequireFromString("150.00"),
		Stock:        3,
	}

	if w := doJSON(r, http.MethodPost, "/api/admin/productos", payload, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodPost, "/api/admin/productos", payload, token); w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for non-admin, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodPost, "/api/admin/productos", payload, adminToken); w.Code != http.StatusCreated {
		t.Errorf("expected 201 for admin, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateProduct_Validation(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/api/admin/productos", handler.ProductRequest{
		Nombre: "", CodigoBarras: "", Stock: -1,
	}, adminToken)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var errs []handler.ProductValidationError
	if err := json.NewDecoder(w.Body).Decode(&errs); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if len(errs) != 4 {
		t.Errorf("expected 4 validation errors, got %d: %+v", len(errs), errs)
	}
}

func TestDeleteProduct_RefusedWhenSold(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()
	p := seedProduct("Tostado", "800", "50.00", 5)

	sale := handler.RegisterSaleRequest{Items: []handler.SaleItemRequest{{ID: p.ID, Cantidad: 1}}}
	if w := doJSON(r, http.MethodPost, "/api/registrar_venta", sale, token); w.Code != http.StatusCreated {
		t.Fatalf("sale setup failed: %d %s", w.Code, w.Body.String())
	}

	w := doJSON(r, http.MethodDelete, fmt.Sprintf("/api/admin/productos/%d", p.ID), nil, adminToken)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 deleting a sold product, got %d", w.Code)
	}

	// An unsold product deletes fine.
	q := seedProduct("Medialunas", "801", "20.00", 5)
	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/api/admin/productos/%d", q.ID), nil, adminToken)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
}
