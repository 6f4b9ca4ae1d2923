package repo

import (
	"sort"
	"sync"
	"time"

	"github.com/rogerio-castellano/kiosco-pos/internal/models"
)

// InMemoryTicketRepository is an in-memory implementation of TicketRepository.
type InMemoryTicketRepository struct {
	mu      sync.Mutex
	tickets []models.KitchenTicket
	nextID  int
}

// NewInMemoryTicketRepository creates a new instance of InMemoryTicketRepository.
func NewInMemoryTicketRepository() *InMemoryTicketRepository {
	return &InMemoryTicketRepository{
		tickets: []models.KitchenTicket{},
		nextID:  1,
	}
}

func (r *InMemoryTicketRepository) Create(t models.KitchenTicket) (models.KitchenTicket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t.ID = r.nextID
	r.nextID++
	t.Status = models.TicketPending
	t.CashierNotified = false
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	r.tickets = append(r.tickets, t)
	return t, nil
}

func (r *InMemoryTicketRepository) GetByID(id int) (models.KitchenTicket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.tickets {
		if t.ID == id {
			return t, nil
		}
	}
	return models.KitchenTicket{}, ErrTicketNotFound
}

func (r *InMemoryTicketRepository) ListActive() ([]models.KitchenTicket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var active []models.KitchenTicket
	for _, t := range r.tickets {
		if t.Status == models.TicketPending || t.Status == models.TicketReady {
			active = append(active, t)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		if !active[i].CreatedAt.Equal(active[j].CreatedAt) {
			return active[i].CreatedAt.Before(active[j].CreatedAt)
		}
		return active[i].ID < active[j].ID
	})
	return active, nil
}

func (r *InMemoryTicketRepository) UpdateStatus(id int, status models.TicketStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, t := range r.tickets {
		if t.ID == id {
			r.tickets[i].Status = status
			return nil
		}
	}
	return ErrTicketNotFound
}

func (r *InMemoryTicketRepository) MarkNotified(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, t := range r.tickets {
		if t.ID == id {
			r.tickets[i].CashierNotified = true
			return nil
		}
	}
	return ErrTicketNotFound
}

func (r *InMemoryTicketRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tickets = []models.KitchenTicket{}
	r.nextID = 1
}
