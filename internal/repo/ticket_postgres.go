package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rogerio-castellano/kiosco-pos/internal/models"
)

type PostgresTicketRepository struct {
	db *sql.DB
}

func NewPostgresTicketRepository(db *sql.DB) *PostgresTicketRepository {
	return &PostgresTicketRepository{db: db}
}

func (r *PostgresTicketRepository) Create(t models.KitchenTicket) (models.KitchenTicket, error) {
	query := `INSERT INTO kitchen_tickets (description, status, created_at, cashier_notified)
		VALUES ($1, $2, $3, false) RETURNING id, created_at`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	err := r.db.QueryRowContext(ctx, query, t.Description, models.TicketPending, t.CreatedAt).
		Scan(&t.ID, &t.CreatedAt)
	t.Status = models.TicketPending
	return t, err
}

func (r *PostgresTicketRepository) GetByID(id int) (models.KitchenTicket, error) {
	query := `SELECT id, description, status, created_at, cashier_notified
		FROM kitchen_tickets WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var t models.KitchenTicket
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&t.ID, &t.Description, &t.Status, &t.CreatedAt, &t.CashierNotified)
	if errors.Is(err, sql.ErrNoRows) {
		return models.KitchenTicket{}, ErrTicketNotFound
	}
	return t, err
}

func (r *PostgresTicketRepository) ListActive() ([]models.KitchenTicket, error) {
	query := `SELECT id, description, status, created_at, cashier_notified
		FROM kitchen_tickets WHERE status IN ($1, $2)
		ORDER BY created_at, id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, models.TicketPending, models.TicketReady)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []models.KitchenTicket
	for rows.Next() {
		var t models.KitchenTicket
		if err := rows.Scan(&t.ID, &t.Description, &t.Status, &t.CreatedAt, &t.CashierNotified); err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

func (r *PostgresTicketRepository) UpdateStatus(id int, status models.TicketStatus) error {
	query := `UPDATE kitchen_tickets SET status = $1 WHERE id = $2`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrTicketNotFound
	}
	return nil
}

func (r *PostgresTicketRepository) MarkNotified(id int) error {
	query := `UPDATE kitchen_tickets SET cashier_notified = true WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrTicketNotFound
	}
	return nil
}
