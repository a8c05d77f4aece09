package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
)

type customerRepository struct {
	db DBTX
}

func NewCustomerRepository(db DBTX) repository.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query := `INSERT INTO customers (name, phone, address, status, balance, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, c.Name, c.Phone, c.Address, c.Status, c.Balance, now, now).Scan(&c.ID)
}

func (r *customerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	c := &domain.Customer{}
	query := `SELECT id, name, phone, address, status, balance, created_on, updated_on FROM customers WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Phone, &c.Address,
		&c.Status, &c.Balance, &c.CreatedOn, &c.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *customerRepository) Update(ctx context.Context, c *domain.Customer) error {
	query := `UPDATE customers SET name=$1, phone=$2, address=$3, status=$4, updated_on=$5 WHERE id=$6`
	res, err := r.db.ExecContext(ctx, query, c.Name, c.Phone, c.Address, c.Status, time.Now(), c.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *customerRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *customerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	query := `SELECT id, name, phone, address, status, balance, created_on, updated_on FROM customers ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCustomers(rows)
}

func (r *customerRepository) ListByStatus(ctx context.Context, status domain.CustomerStatus) ([]domain.Customer, error) {
	query := `SELECT id, name, phone, address, status, balance, created_on, updated_on
	          FROM customers WHERE status = $1 ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCustomers(rows)
}

func (r *customerRepository) AdjustBalance(ctx context.Context, id int64, delta int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE customers SET balance = balance + $2, updated_on = now() WHERE id = $1`, id, delta)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *customerRepository) SetBalance(ctx context.Context, id int64, balance int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE customers SET balance = $2, updated_on = now() WHERE id = $1`, id, balance)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanCustomers(rows *sql.Rows) ([]domain.Customer, error) {
	var customers []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.Status, &c.Balance,
			&c.CreatedOn, &c.UpdatedOn); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}
