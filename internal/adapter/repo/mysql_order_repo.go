package repo

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	domain "github.com/aq2208/oms-api/internal/entity"
	"github.com/aq2208/oms-api/internal/usecase"
)

type MySQLOrderRepo struct{ db *sql.DB }

func NewMySQLOrderRepo(db *sql.DB) *MySQLOrderRepo { return &MySQLOrderRepo{db: db} }

// Create persists the order, its items and the lifecycle event in one
// transaction. The order number comes from the dedicated order_seq row, read
// FOR UPDATE: two concurrent creations serialize on the row lock and cannot
// mint the same number.
func (r *MySQLOrderRepo) Create(ctx context.Context, o *domain.Order, event usecase.EventFunc) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if o.OrderNumber == "" {
		var seq int64
		if err = tx.QueryRowContext(ctx,
			`SELECT next_number FROM order_seq WHERE id=1 FOR UPDATE`).Scan(&seq); err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx,
			`UPDATE order_seq SET next_number = next_number + 1 WHERE id=1`); err != nil {
			return err
		}
		o.OrderNumber = domain.FormatOrderNumber(seq)
	}
	o.CreatedAt = time.Now().UTC()

	res, err := tx.ExecContext(ctx, `
INSERT INTO orders (order_number, customer_id, order_date, address, created_at)
VALUES (?,?,?,?,?)`,
		o.OrderNumber, o.CustomerID, o.OrderDate.Format("2006-01-02"), o.Address, o.CreatedAt)
	if err != nil {
		return err
	}
	if o.ID, err = res.LastInsertId(); err != nil {
		return err
	}

	if err = insertItems(ctx, tx, o); err != nil {
		return err
	}
	if err = insertOutbox(ctx, tx, event(o)); err != nil {
		return err
	}
	return tx.Commit()
}

// Update rewrites the mutable fields and, when replaceItems is set, swaps the
// whole item set for o.Items, all within one transaction. order_number and
// created_at are never written.
func (r *MySQLOrderRepo) Update(ctx context.Context, o *domain.Order, replaceItems bool, event usecase.EventFunc) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `
UPDATE orders SET customer_id=?, order_date=?, address=? WHERE id=?`,
		o.CustomerID, o.OrderDate.Format("2006-01-02"), o.Address, o.ID)
	if err != nil {
		return err
	}
	if _, err = res.RowsAffected(); err != nil {
		return err
	}

	if replaceItems {
		if _, err = tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id=?`, o.ID); err != nil {
			return err
		}
		if err = insertItems(ctx, tx, o); err != nil {
			return err
		}
	}
	if err = insertOutbox(ctx, tx, event(o)); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *MySQLOrderRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, order_number, customer_id, order_date, address, created_at
FROM orders WHERE id=?`, id)

	var o domain.Order
	if err := row.Scan(&o.ID, &o.OrderNumber, &o.CustomerID, &o.OrderDate, &o.Address, &o.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, usecase.ErrNotFound
		}
		return nil, err
	}

	items, err := r.loadItems(ctx, []int64{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return &o, nil
}

func (r *MySQLOrderRepo) List(ctx context.Context, f usecase.OrderFilter) ([]domain.Order, error) {
	query, args := buildListQuery(f)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	var ids []int64
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.CustomerID, &o.OrderDate, &o.Address, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}
	return orders, nil
}

func (r *MySQLOrderRepo) Delete(ctx context.Context, id int64, event usecase.EventFunc) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Load before delete so the event carries the order number.
	var o domain.Order
	err = tx.QueryRowContext(ctx,
		`SELECT id, order_number, customer_id FROM orders WHERE id=?`, id).
		Scan(&o.ID, &o.OrderNumber, &o.CustomerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = usecase.ErrNotFound
		}
		return err
	}

	// Items go with the order via the FK cascade.
	if _, err = tx.ExecContext(ctx, `DELETE FROM orders WHERE id=?`, id); err != nil {
		return err
	}
	if err = insertOutbox(ctx, tx, event(&o)); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *MySQLOrderRepo) IDsForCustomer(ctx context.Context, customerID int64) ([]int64, error) {
	return r.queryIDs(ctx, `SELECT id FROM orders WHERE customer_id=?`, customerID)
}

func (r *MySQLOrderRepo) IDsForProduct(ctx context.Context, productID int64) ([]int64, error) {
	return r.queryIDs(ctx, `SELECT DISTINCT order_id FROM order_items WHERE product_id=?`, productID)
}

func (r *MySQLOrderRepo) queryIDs(ctx context.Context, query string, arg any) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// buildListQuery assembles the filtered listing. The customer filter is a
// case-insensitive substring on the customer's name; each product term adds
// its own EXISTS clause, so the terms are conjunctive: an order must contain
// a matching item for every term, not for any one of them.
func buildListQuery(f usecase.OrderFilter) (string, []any) {
	q := `
SELECT o.id, o.order_number, o.customer_id, o.order_date, o.address, o.created_at
FROM orders o`

	var conds []string
	var args []any

	if f.Customer != "" {
		q += ` JOIN customers c ON c.id = o.customer_id`
		conds = append(conds, `LOWER(c.name) LIKE ?`)
		args = append(args, containsPattern(f.Customer))
	}
	for _, term := range f.Products {
		conds = append(conds, `EXISTS (
    SELECT 1 FROM order_items oi
    JOIN products p ON p.id = oi.product_id
    WHERE oi.order_id = o.id AND LOWER(p.name) LIKE ?)`)
		args = append(args, containsPattern(term))
	}

	if len(conds) > 0 {
		q += "\nWHERE " + strings.Join(conds, "\n  AND ")
	}
	q += "\nORDER BY o.id"
	return q, args
}

func containsPattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}

func insertItems(ctx context.Context, tx *sql.Tx, o *domain.Order) error {
	for i := range o.Items {
		it := &o.Items[i]
		it.OrderID = o.ID
		res, err := tx.ExecContext(ctx, `
INSERT INTO order_items (order_id, product_id, quantity) VALUES (?,?,?)`,
			it.OrderID, it.ProductID, it.Quantity)
		if err != nil {
			return err
		}
		if it.ID, err = res.LastInsertId(); err != nil {
			return err
		}
	}
	return nil
}

func (r *MySQLOrderRepo) loadItems(ctx context.Context, orderIDs []int64) (map[int64][]domain.OrderItem, error) {
	out := make(map[int64][]domain.OrderItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return out, nil
	}

	args := make([]any, len(orderIDs))
	for i, id := range orderIDs {
		args[i] = id
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id, order_id, product_id, quantity FROM order_items
WHERE order_id IN (`+placeholders(len(orderIDs))+`) ORDER BY id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity); err != nil {
			return nil, err
		}
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	return out, rows.Err()
}

var _ usecase.OrderRepo = (*MySQLOrderRepo)(nil)
