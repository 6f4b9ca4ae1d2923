package repo

import "github.com/rogerio-castellano/kiosco-pos/internal/models"

// TicketRepository defines the interface for kitchen ticket data operations.
type TicketRepository interface {
	Create(ticket models.KitchenTicket) (models.KitchenTicket, error)
	GetByID(id int) (models.KitchenTicket, error)
	// ListActive returns pending and ready tickets, oldest first.
	ListActive() ([]models.KitchenTicket, error)
	UpdateStatus(id int, status models.TicketStatus) error
	MarkNotified(id int) error
}
