package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	repo "github.com/rogerio-castellano/kiosco-pos/internal/repo"
	"github.com/rogerio-castellano/kiosco-pos/internal/sales"
)

// RegisterSaleHandler godoc
// @Summary Register a sale atomically against inventory
// @Description Decrements stock, snapshots line prices and records the sale
// @Description total in one transaction; any failure rolls everything back.
// @Tags ventas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sale body RegisterSaleRequest true "Cart items"
// @Success 201 {object} RegisterSaleResult
// @Failure 400 {object} ErrorResult
// @Router /api/registrar_venta [post]
func RegisterSaleHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	items := make([]sales.Item, len(req.Items))
	for i, it := range req.Items {
		items[i] = sales.Item{ProductID: it.ID, Quantity: it.Cantidad}
	}

	saleID, err := saleSvc.Register(r.Context(), items)
	if err != nil {
		status, msg := saleErrorResponse(err)
		writeError(w, status, msg)
		return
	}

	invalidateSoldProducts(items)

	_ = writeJSON(w, http.StatusCreated, RegisterSaleResult{
		Success: "Venta registrada correctamente",
		VentaID: saleID,
	})
}

func saleErrorResponse(err error) (int, string) {
	var notFound *sales.ProductNotFoundError
	var noStock *sales.InsufficientStockError
	switch {
	case errors.Is(err, sales.ErrEmptyOrder):
		return http.StatusBadRequest, "La venta no tiene productos"
	case errors.Is(err, sales.ErrInvalidQuantity):
		return http.StatusBadRequest, "Cantidad inválida"
	case errors.As(err, &notFound):
		return http.StatusBadRequest, "Uno de los productos no existe"
	case errors.As(err, &noStock):
		return http.StatusBadRequest, "Stock insuficiente para " + noStock.Name
	default:
		return http.StatusInternalServerError, "could not register sale"
	}
}

// The committed sale changed stock, so cached barcode lookups for the sold
// products are stale until dropped.
func invalidateSoldProducts(items []sales.Item) {
	if cache == nil {
		return
	}
	for _, it := range items {
		if p, err := productRepo.GetByID(it.ProductID); err == nil {
			cache.InvalidateProduct(p.Barcode)
		}
	}
}

// GetSalesHandler godoc
// @Summary List recent sales
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} VentaResponse
// @Router /api/admin/ventas [get]
func GetSalesHandler(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	recent, err := saleRepo.ListRecent(50)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not fetch sales")
		return
	}

	resp := make([]VentaResponse, len(recent))
	for i, s := range recent {
		resp[i] = VentaResponse{ID: s.ID, FechaHora: s.CreatedAt, Total: s.Total}
	}
	_ = writeJSON(w, http.StatusOK, resp)
}

// GetSaleByIDHandler godoc
// @Summary Fetch one sale with its lines
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Sale ID"
// @Success 200 {object} VentaResponse
// @Failure 404 {object} ErrorResult
// @Router /api/admin/ventas/{id} [get]
func GetSaleByIDHandler(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid sale ID")
		return
	}

	sale, err := saleRepo.GetByID(id)
	if errors.Is(err, repo.ErrSaleNotFound) {
		writeError(w, http.StatusNotFound, "sale not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not fetch sale")
		return
	}

	resp := VentaResponse{ID: sale.ID, FechaHora: sale.CreatedAt, Total: sale.Total}
	for _, l := range sale.Lines {
		resp.Detalles = append(resp.Detalles, DetalleResponse{
			ProductoID:     l.ProductID,
			Cantidad:       l.Quantity,
			PrecioUnitario: l.UnitPrice,
			Subtotal:       l.Subtotal,
		})
	}
	_ = writeJSON(w, http.StatusOK, resp)
}
