package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rogerio-castellano/kiosco-pos/internal/kitchen"
	repo "github.com/rogerio-castellano/kiosco-pos/internal/repo"
)

// ListTicketsHandler godoc
// @Summary List pending and ready kitchen tickets, oldest first
// @Tags pedidos
// @Produce json
// @Success 200 {array} TicketResponse
// @Router /api/pedidos [get]
func ListTicketsHandler(w http.ResponseWriter, _ *http.Request) {
	tickets, err := kitchenSvc.ListActive()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not fetch tickets")
		return
	}

	resp := make([]TicketResponse, len(tickets))
	for i, t := range tickets {
		resp[i] = TicketResponse{
			ID:                t.ID,
			Descripcion:       t.Description,
			Estado:            string(t.Status),
			FechaHoraCreacion: t.CreatedAt,
			NotificadoCaja:    t.CashierNotified,
		}
	}
	_ = writeJSON(w, http.StatusOK, resp)
}

// CreateTicketHandler godoc
// @Summary Open a new kitchen ticket
// @Tags pedidos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param ticket body CreateTicketRequest true "Ticket description"
// @Success 200 {object} SuccessResult
// @Failure 400 {object} ErrorResult
// @Router /api/pedidos/crear [post]
func CreateTicketHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Petición inválida")
		return
	}

	if _, err := kitchenSvc.Create(req.Descripcion); err != nil {
		if errors.Is(err, kitchen.ErrEmptyDescription) {
			writeError(w, http.StatusBadRequest, "Petición inválida")
			return
		}
		writeError(w, http.StatusInternalServerError, "could not create ticket")
		return
	}

	_ = writeJSON(w, http.StatusOK, SuccessResult{Success: "Pedido creado"})
}

// MarkTicketReadyHandler godoc
// @Summary Kitchen marks a pending ticket ready for pickup
// @Tags pedidos
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ticket ID"
// @Success 200 {object} SuccessResult
// @Failure 404 {object} ErrorResult
// @Failure 409 {object} ErrorResult "Out-of-order transition"
// @Router /api/pedidos/marcar_listo/{id} [post]
func MarkTicketReadyHandler(w http.ResponseWriter, r *http.Request) {
	transitionTicket(w, r, kitchenSvc.MarkReady, "Pedido marcado como listo")
}

// MarkTicketDeliveredHandler godoc
// @Summary Cashier marks a ready ticket delivered
// @Tags pedidos
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ticket ID"
// @Success 200 {object} SuccessResult
// @Failure 404 {object} ErrorResult
// @Failure 409 {object} ErrorResult "Out-of-order transition"
// @Router /api/pedidos/marcar_entregado/{id} [post]
func MarkTicketDeliveredHandler(w http.ResponseWriter, r *http.Request) {
	transitionTicket(w, r, kitchenSvc.MarkDelivered, "Pedido marcado como entregado")
}

// MarkTicketNotifiedHandler godoc
// @Summary Cashier acknowledges the ready alert so it stops sounding
// @Tags pedidos
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ticket ID"
// @Success 200 {object} SuccessResult
// @Failure 404 {object} ErrorResult
// @Router /api/pedidos/marcar_notificado/{id} [post]
func MarkTicketNotifiedHandler(w http.ResponseWriter, r *http.Request) {
	transitionTicket(w, r, kitchenSvc.MarkNotified, "Pedido marcado como notificado")
}

func transitionTicket(w http.ResponseWriter, r *http.Request, op func(int) error, successMsg string) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid ticket ID")
		return
	}

	err = op(id)
	var invalid *kitchen.InvalidTransitionError
	switch {
	case err == nil:
		_ = writeJSON(w, http.StatusOK, SuccessResult{Success: successMsg})
	case errors.Is(err, repo.ErrTicketNotFound):
		writeError(w, http.StatusNotFound, "Pedido no encontrado")
	case errors.As(err, &invalid):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "could not update ticket")
	}
}
