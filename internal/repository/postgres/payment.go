package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
)

type paymentRepository struct {
	db DBTX
}

func NewPaymentRepository(db DBTX) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `id, rental_id, customer_id, amount, discount, payment_type, payment_date, is_prepaid, description, created_on`

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (rental_id, customer_id, amount, discount, payment_type, payment_date, is_prepaid, description, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	return r.db.QueryRowContext(ctx, query, p.RentalID, p.CustomerID, p.Amount, p.Discount,
		p.PaymentType, p.PaymentDate, p.IsPrepaid, p.Description, time.Now()).Scan(&p.ID)
}

func (r *paymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	p := &domain.Payment{}
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.RentalID, &p.CustomerID, &p.Amount,
		&p.Discount, &p.PaymentType, &p.PaymentDate, &p.IsPrepaid, &p.Description, &p.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *paymentRepository) Update(ctx context.Context, p *domain.Payment) error {
	query := `UPDATE payments SET rental_id=$1, customer_id=$2, amount=$3, discount=$4, payment_type=$5,
	          payment_date=$6, is_prepaid=$7, description=$8 WHERE id=$9`
	res, err := r.db.ExecContext(ctx, query, p.RentalID, p.CustomerID, p.Amount, p.Discount,
		p.PaymentType, p.PaymentDate, p.IsPrepaid, p.Description, p.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *paymentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *paymentRepository) List(ctx context.Context) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments ORDER BY payment_date DESC, id DESC`
	return r.queryPayments(ctx, query)
}

func (r *paymentRepository) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE customer_id = $1 ORDER BY payment_date DESC, id DESC`
	return r.queryPayments(ctx, query, customerID)
}

func (r *paymentRepository) ListByRental(ctx context.Context, rentalID int64) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE rental_id = $1 ORDER BY payment_date DESC, id DESC`
	return r.queryPayments(ctx, query, rentalID)
}

func (r *paymentRepository) SumByRental(ctx context.Context, rentalID int64) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE rental_id = $1`, rentalID).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *paymentRepository) SumByCustomer(ctx context.Context, customerID int64) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE customer_id = $1`, customerID).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *paymentRepository) queryPayments(ctx context.Context, query string, args ...any) ([]domain.Payment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.RentalID, &p.CustomerID, &p.Amount, &p.Discount,
			&p.PaymentType, &p.PaymentDate, &p.IsPrepaid, &p.Description, &p.CreatedOn); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
