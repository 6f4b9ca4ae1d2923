package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/rogerio-castellano/kiosco-pos/internal/http/handlers"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID, chimw.RealIP, chimw.Recoverer)
	r.Use(chimw.Timeout(15 * time.Second))

	// Kiosk screens. Pure views; all logic lives behind /api.
	r.Get("/", handlers.TerminalPageHandler)
	r.Get("/cocina", handlers.KitchenPageHandler)
	r.Get("/caja/pedidos", handlers.CashierBoardPageHandler)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Read endpoints polled by the terminals.
	r.Get("/api/producto/{codigo}", handlers.GetProductByBarcodeHandler)
	r.Get("/api/buscar_productos", handlers.SearchProductsHandler)
	r.Get("/api/pedidos", handlers.ListTicketsHandler)

	r.With(RateLimitMiddleware).Post("/api/login", handlers.LoginHandler)
	r.Post("/api/token/refresh", handlers.RefreshTokenHandler)

	r.Group(func(pr chi.Router) {
		pr.Use(AuthMiddleware)

		pr.Post("/api/registrar_venta", handlers.RegisterSaleHandler)
		pr.Post("/api/pedidos/crear", handlers.CreateTicketHandler)
		pr.Post("/api/pedidos/marcar_listo/{id}", handlers.MarkTicketReadyHandler)
		pr.Post("/api/pedidos/marcar_entregado/{id}", handlers.MarkTicketDeliveredHandler)
		pr.Post("/api/pedidos/marcar_notificado/{id}", handlers.MarkTicketNotifiedHandler)

		pr.Route("/api/admin", func(ar chi.Router) {
			ar.Get("/productos", handlers.GetProductsHandler)
			ar.Post("/productos", handlers.CreateProductHandler)
			ar.Put("/productos/{id}", handlers.UpdateProductHandler)
			ar.Delete("/productos/{id}", handlers.DeleteProductHandler)
			ar.Get("/ventas", handlers.GetSalesHandler)
			ar.Get("/ventas/{id}", handlers.GetSaleByIDHandler)
			ar.Post("/usuarios", handlers.RegisterAsAdminHandler)
		})
	})

	return r
}
