package handlers

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wire DTOs. Field names are the ones the kiosk screens already speak.

type ProductoResponse struct {
	ID     int             `json:"id"`
	Nombre string          `json:"nombre"`
	Precio decimal.Decimal `json:"precio"`
	Stock  int             `json:"stock"`
}

type ProductoSearchResponse struct {
	ID           int             `json:"id"`
	Nombre       string          `json:"nombre"`
	CodigoBarras string          `json:"codigo_barras"`
	Precio       decimal.Decimal `json:"precio"`
	Stock        int             `json:"stock"`
}

type SaleItemRequest struct {
	ID       int `json:"id"`
	Cantidad int `json:"cantidad"`
}

type RegisterSaleRequest struct {
	Items []SaleItemRequest `json:"items"`
}

type RegisterSaleResult struct {
	Success string `json:"success"`
	VentaID int    `json:"venta_id"`
}

type TicketResponse struct {
	ID                int       `json:"id"`
	Descripcion       string    `json:"descripcion"`
	Estado            string    `json:"estado"`
	FechaHoraCreacion time.Time `json:"fecha_hora_creacion"`
	NotificadoCaja    bool      `json:"notificado_caja"`
}

type CreateTicketRequest struct {
	Descripcion string `json:"descripcion"`
}

type SuccessResult struct {
	Success string `json:"success"`
}

type ErrorResult struct {
	Error string `json:"error"`
}

type ProductRequest struct {
	Nombre       string          `json:"nombre"`
	CodigoBarras string          `json:"codigo_barras"`
	Precio       decimal.Decimal `json:"precio"`
	Stock        int             `json:"stock"`
}

type VentaResponse struct {
	ID        int               `json:"id"`
	FechaHora time.Time         `json:"fecha_hora"`
	Total     decimal.Decimal   `json:"total"`
	Detalles  []DetalleResponse `json:"detalles,omitempty"`
}

type DetalleResponse struct {
	ProductoID     int             `json:"producto_id"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RegisterAsAdminRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}
