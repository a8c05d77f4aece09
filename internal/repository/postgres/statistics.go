package postgres

import (
	"context"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
)

type statsRepository struct {
	db DBTX
}

func NewStatsRepository(db DBTX) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) RevenueBetween(ctx context.Context, from, to time.Time) (*domain.RevenueStats, error) {
	stats := &domain.RevenueStats{}
	query := `SELECT COALESCE(SUM(amount), 0), COUNT(*)
	          FROM payments WHERE payment_date >= $1 AND payment_date <= $2`
	err := r.db.QueryRowContext(ctx, query, from, to).Scan(&stats.TotalAmount, &stats.PaymentCount)
	if err != nil {
		return nil, err
	}
	if stats.PaymentCount > 0 {
		stats.AverageAmount = stats.TotalAmount / stats.PaymentCount
	}
	return stats, nil
}

func (r *statsRepository) TopCustomers(ctx context.Context, from, to time.Time, limit int) ([]domain.TopCustomer, error) {
	query := `SELECT c.id, c.name, c.phone, COALESCE(SUM(p.amount), 0) AS total, COUNT(p.id)
	          FROM customers c
	          JOIN payments p ON p.customer_id = c.id
	          WHERE p.payment_date >= $1 AND p.payment_date <= $2
	          GROUP BY c.id, c.name, c.phone
	          ORDER BY total DESC
	          LIMIT $3`
	rows, err := r.db.QueryContext(ctx, query, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []domain.TopCustomer
	for rows.Next() {
		var tc domain.TopCustomer
		if err := rows.Scan(&tc.CustomerID, &tc.Name, &tc.Phone, &tc.TotalAmount, &tc.PaymentCount); err != nil {
			return nil, err
		}
		customers = append(customers, tc)
	}
	return customers, rows.Err()
}

func (r *statsRepository) MostRentedCars(ctx context.Context, limit int) ([]domain.Car, error) {
	query := `SELECT id, car_number, driver_name, driver_phone, status, rental_count, created_on, updated_on
	          FROM cars ORDER BY rental_count DESC, car_number ASC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cars []domain.Car
	for rows.Next() {
		var c domain.Car
		if err := rows.Scan(&c.ID, &c.CarNumber, &c.DriverName, &c.DriverPhone, &c.Status,
			&c.RentalCount, &c.CreatedOn, &c.UpdatedOn); err != nil {
			return nil, err
		}
		cars = append(cars, c)
	}
	return cars, rows.Err()
}
