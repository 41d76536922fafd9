package repo

import (
	"context"
	"database/sql"
	"errors"

	domain "github.com/aq2208/oms-api/internal/entity"
	"github.com/aq2208/oms-api/internal/usecase"
)

type MySQLCustomerRepo struct{ db *sql.DB }

func NewMySQLCustomerRepo(db *sql.DB) *MySQLCustomerRepo { return &MySQLCustomerRepo{db: db} }

func (r *MySQLCustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO customers (name, contact_number, email) VALUES (?,?,?)`,
		c.Name, c.ContactNumber, c.Email)
	if err != nil {
		return dupNameErr(err, "customer")
	}
	c.ID, err = res.LastInsertId()
	return err
}

func (r *MySQLCustomerRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, contact_number, email FROM customers WHERE id=?`, id)
	var c domain.Customer
	if err := row.Scan(&c.ID, &c.Name, &c.ContactNumber, &c.Email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, usecase.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *MySQLCustomerRepo) List(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, contact_number, email FROM customers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.ContactNumber, &c.Email); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *MySQLCustomerRepo) Update(ctx context.Context, c *domain.Customer) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE customers SET name=?, contact_number=?, email=? WHERE id=?`,
		c.Name, c.ContactNumber, c.Email, c.ID)
	if err != nil {
		return dupNameErr(err, "customer")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		// could also be a no-op write; confirm existence
		if _, err := r.GetByID(ctx, c.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the customer; the schema cascades to their orders and those
// orders' items.
func (r *MySQLCustomerRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id=?`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

var _ usecase.CustomerRepo = (*MySQLCustomerRepo)(nil)
