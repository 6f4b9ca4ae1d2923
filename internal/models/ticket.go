package models

import "time"

// TicketStatus is the lifecycle state of a kitchen ticket. The stored values
// match the wire format consumed by the kitchen and cashier screens.
type TicketStatus string

const (
	TicketPending   TicketStatus = "PENDIENTE"
	TicketReady     TicketStatus = "LISTO"
	TicketDelivered TicketStatus = "ENTREGADO"
)

// KitchenTicket is a unit of kitchen work tracked from creation to pickup.
// CashierNotified is orthogonal to Status: it records that the cashier
// acknowledged the "ready" alert, and is only ever set to true.
type KitchenTicket struct {
	ID              int          `json:"id"`
	Description     string       `json:"description"`
	Status          TicketStatus `json:"status"`
	CreatedAt       time.Time    `json:"created_at"`
	CashierNotified bool         `json:"cashier_notified"`
}
