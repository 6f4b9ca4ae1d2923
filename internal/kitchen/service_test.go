package kitchen_test

import (
	"errors"
	"testing"
	"time"

	"github.com/rogerio-castellano/kiosco-pos/internal/kitchen"
	"github.com/rogerio-castellano/kiosco-pos/internal/models"
	"github.com/rogerio-castellano/kiosco-pos/internal/repo"
)

func newService() (*kitchen.Service, *repo.InMemoryTicketRepository) {
	tickets := repo.NewInMemoryTicketRepository()
	return kitchen.NewService(tickets), tickets
}

func TestCreate_RequiresDescription(t *testing.T) {
	svc, _ := newService()

	for _, desc := range []string{"", "   "} {
		if _, err := svc.Create(desc); !errors.Is(err, kitchen.ErrEmptyDescription) {
			t.Errorf("Create(%q): expected ErrEmptyDescription, got %v", desc, err)
		}
	}
}

func TestCreate_StartsPendingNotNotified(t *testing.T) {
	svc, _ := newService()

	ticket, err := svc.Create("Sandwich Milanesa Completo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ticket.Status != models.TicketPending {
		t.Errorf("expected PENDIENTE, got %s", ticket.Status)
	}
	if ticket.CashierNotified {
		t.Error("new ticket must not be marked notified")
	}
}

func TestLifecycle_PendingReadyDelivered(t *testing.T) {
	svc, tickets := newService()
	ticket, _ := svc.Create("Tostado")

	if err := svc.MarkReady(ticket.ID); err != nil {
		t.Fatalf("MarkReady: %v", err)
	}
	got, _ := tickets.GetByID(ticket.ID)
	if got.Status != models.TicketReady {
		t.Fatalf("expected LISTO, got %s", got.Status)
	}

	if err := svc.MarkDelivered(ticket.ID); err != nil {
		t.Fatalf("MarkDelivered: %v", err)
	}
	got, _ = tickets.GetByID(ticket.ID)
	if got.Status != models.TicketDelivered {
		t.Fatalf("expected ENTREGADO, got %s", got.Status)
	}
}

func TestTransitions_OutOfOrderRejected(t *testing.T) {
	svc, tickets := newService()

	pending, _ := svc.Create("Pebete")
	err := svc.MarkDelivered(pending.ID)
	var invalid *kitchen.InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
	if invalid.From != models.TicketPending || invalid.To != models.TicketDelivered {
		t.Errorf("unexpected transition detail: %+v", invalid)
	}
	if got, _ := tickets.GetByID(pending.ID); got.Status != models.TicketPending {
		t.Errorf("rejected transition mutated state: %s", got.Status)
	}

	delivered, _ := svc.Create("Lomito")
	_ = svc.MarkReady(delivered.ID)
	_ = svc.MarkDelivered(delivered.ID)
	if err := svc.MarkReady(delivered.ID); !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTransitionError reopening a delivered ticket, got %v", err)
	}
}

func TestTransitions_RepeatIsIdempotent(t *testing.T) {
	svc, tickets := newService()
	ticket, _ := svc.Create("Hamburguesa")

	if err := svc.MarkReady(ticket.ID); err != nil {
		t.Fatalf("MarkReady: %v", err)
	}
	if err := svc.MarkReady(ticket.ID); err != nil {
		t.Fatalf("second MarkReady must be a no-op, got %v", err)
	}
	if got, _ := tickets.GetByID(ticket.ID); got.Status != models.TicketReady {
		t.Errorf("expected LISTO, got %s", got.Status)
	}
}

func TestMarkNotified_AnyStateAndIdempotent(t *testing.T) {
	svc, tickets := newService()
	ticket, _ := svc.Create("Cafe con leche")

	for n := 0; n < 2; n++ {
		if err := svc.MarkNotified(ticket.ID); err != nil {
			t.Fatalf("MarkNotified: %v", err)
		}
	}
	if got, _ := tickets.GetByID(ticket.ID); !got.CashierNotified {
		t.Error("expected notified flag set")
	}
}

func TestOperations_OnMissingTicket(t *testing.T) {
	svc, _ := newService()

	ops := map[string]func(int) error{
		"MarkReady":     svc.MarkReady,
		"MarkDelivered": svc.MarkDelivered,
		"MarkNotified":  svc.MarkNotified,
	}
	for name, op := range ops {
		if err := op(999); !errors.Is(err, repo.ErrTicketNotFound) {
			t.Errorf("%s: expected ErrTicketNotFound, got %v", name, err)
		}
	}
}

func TestListActive_OldestFirstWithoutDelivered(t *testing.T) {
	svc, tickets := newService()

	base := time.Now().UTC()
	for i, desc := range []string{"primero", "segundo", "tercero"} {
		if _, err := tickets.Create(models.KitchenTicket{
			Description: desc,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	_ = svc.MarkReady(2)
	_ = svc.MarkReady(3)
	_ = svc.MarkDelivered(3)

	active, err := svc.ListActive()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("expected 2 active tickets, got %d", len(active))
	}
	if active[0].Description != "primero" || active[1].Description != "segundo" {
		t.Errorf("unexpected order: %q, %q", active[0].Description, active[1].Description)
	}
}
