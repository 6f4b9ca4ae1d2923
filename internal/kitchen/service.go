// Package kitchen advances kitchen tickets through their lifecycle:
// PENDIENTE -> LISTO -> ENTREGADO.
package kitchen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rogerio-castellano/kiosco-pos/internal/models"
	"github.com/rogerio-castellano/kiosco-pos/internal/repo"
)

// ErrEmptyDescription is returned when a ticket is created without a description.
var ErrEmptyDescription = errors.New("ticket description is required")

// InvalidTransitionError reports a lifecycle transition not present in the
// transition table.
type InvalidTransitionError struct {
	From models.TicketStatus
	To   models.TicketStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid ticket transition %s -> %s", e.From, e.To)
}

// transitions is the full lifecycle; anything not listed here is rejected.
var transitions = map[models.TicketStatus]models.TicketStatus{
	models.TicketPending: models.TicketReady,
	models.TicketReady:   models.TicketDelivered,
}

// Service owns the kitchen ticket state machine.
type Service struct {
	tickets repo.TicketRepository
}

func NewService(tickets repo.TicketRepository) *Service {
	return &Service{tickets: tickets}
}

// Create opens a new pending ticket.
func (s *Service) Create(description string) (models.KitchenTicket, error) {
	if strings.TrimSpace(description) == "" {
		return models.KitchenTicket{}, ErrEmptyDescription
	}
	return s.tickets.Create(models.KitchenTicket{Description: description})
}

// ListActive returns pending and ready tickets, oldest first.
func (s *Service) ListActive() ([]models.KitchenTicket, error) {
	return s.tickets.ListActive()
}

// MarkReady moves a pending ticket to ready.
func (s *Service) MarkReady(id int) error {
	return s.advance(id, models.TicketReady)
}

// MarkDelivered moves a ready ticket to delivered.
func (s *Service) MarkDelivered(id int) error {
	return s.advance(id, models.TicketDelivered)
}

// MarkNotified records that the cashier acknowledged the ready alert. It is
// idempotent and independent of the ticket's lifecycle state.
func (s *Service) MarkNotified(id int) error {
	return s.tickets.MarkNotified(id)
}

func (s *Service) advance(id int, to models.TicketStatus) error {
	t, err := s.tickets.GetByID(id)
	if err != nil {
		return err
	}
	// Re-asserting the current state is a harmless double-tap.
	if t.Status == to {
		return nil
	}
	if transitions[t.Status] != to {
		return &InvalidTransitionError{From: t.Status, To: to}
	}
	return s.tickets.UpdateStatus(id, to)
}
