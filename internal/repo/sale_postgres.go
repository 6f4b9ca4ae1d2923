package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/kiosco-pos/internal/models"
)

type PostgresSaleRepository struct {
	db *sql.DB
}

func NewPostgresSaleRepository(db *sql.DB) *PostgresSaleRepository {
	return &PostgresSaleRepository{db: db}
}

func (r *PostgresSaleRepository) Begin(ctx context.Context) (SaleTx, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	var saleID int
	err = tx.QueryRowContext(ctx,
		`INSERT INTO sales (created_at, total) VALUES ($1, 0) RETURNING id`,
		time.Now().UTC()).Scan(&saleID)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	return &postgresSaleTx{tx: tx, saleID: saleID}, nil
}

func (r *PostgresSaleRepository) GetByID(id int) (models.Sale, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var s models.Sale
	err := r.db.QueryRowContext(ctx,
		`SELECT id, created_at, total FROM sales WHERE id = $1`, id).
		Scan(&s.ID, &s.CreatedAt, &s.Total)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Sale{}, ErrSaleNotFound
	}
	if err != nil {
		return models.Sale{}, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, sale_id, product_id, quantity, unit_price, subtotal
		 FROM sale_lines WHERE sale_id = $1 ORDER BY id`, id)
	if err != nil {
		return models.Sale{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var l models.SaleLine
		if err := rows.Scan(&l.ID, &l.SaleID, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.Subtotal); err != nil {
			return models.Sale{}, err
		}
		s.Lines = append(s.Lines, l)
	}
	return s, rows.Err()
}

func (r *PostgresSaleRepository) ListRecent(limit int) ([]models.Sale, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, created_at, total FROM sales ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []models.Sale
	for rows.Next() {
		var s models.Sale
		if err := rows.Scan(&s.ID, &s.CreatedAt, &s.Total); err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

type postgresSaleTx struct {
	tx     *sql.Tx
	saleID int
	done   bool
}

func (t *postgresSaleTx) SaleID() int { return t.saleID }

func (t *postgresSaleTx) ProductForUpdate(ctx context.Context, productID int) (models.Product, error) {
	var p models.Product
	err := t.tx.QueryRowContext(ctx,
		`SELECT id, name, barcode, price, stock FROM products WHERE id = $1 FOR UPDATE`,
		productID).Scan(&p.ID, &p.Name, &p.Barcode, &p.Price, &p.Stock)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (t *postgresSaleTx) UpdateProductStock(ctx context.Context, productID, stock int) error {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE products SET stock = $1 WHERE id = $2`, stock, productID)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (t *postgresSaleTx) AddLine(ctx context.Context, line models.SaleLine) error {
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO sale_lines (sale_id, product_id, quantity, unit_price, subtotal)
		 VALUES ($1, $2, $3, $4, $5)`,
		t.saleID, line.ProductID, line.Quantity, line.UnitPrice, line.Subtotal)
	return err
}

func (t *postgresSaleTx) Finalize(ctx context.Context, total decimal.Decimal) error {
	if _, err := t.tx.ExecContext(ctx,
		`UPDATE sales SET total = $1 WHERE id = $2`, total, t.saleID); err != nil {
		return err
	}
	if err := t.tx.Commit(); err != nil {
		return err
	}
	t.done = true
	return nil
}

func (t *postgresSaleTx) Rollback(context.Context) error {
	if t.done {
		return nil
	}
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}
