package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
)

type carRepository struct {
	db DBTX
}

func NewCarRepository(db DBTX) repository.CarRepository {
	return &carRepository{db: db}
}

func (r *carRepository) Create(ctx context.Context, c *domain.Car) error {
	query := `INSERT INTO cars (car_number, driver_name, driver_phone, status, rental_count, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, c.CarNumber, c.DriverName, c.DriverPhone,
		c.Status, c.RentalCount, now, now).Scan(&c.ID)
}

func (r *carRepository) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	c := &domain.Car{}
	query := `SELECT id, car_number, driver_name, driver_phone, status, rental_count, created_on, updated_on
	          FROM cars WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.CarNumber, &c.DriverName,
		&c.DriverPhone, &c.Status, &c.RentalCount, &c.CreatedOn, &c.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *carRepository) Update(ctx context.Context, c *domain.Car) error {
	query := `UPDATE cars SET car_number=$1, driver_name=$2, driver_phone=$3, status=$4, updated_on=$5 WHERE id=$6`
	res, err := r.db.ExecContext(ctx, query, c.CarNumber, c.DriverName, c.DriverPhone, c.Status, time.Now(), c.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *carRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *carRepository) List(ctx context.Context) ([]domain.Car, error) {
	query := `SELECT id, car_number, driver_name, driver_phone, status, rental_count, created_on, updated_on
	          FROM cars ORDER BY car_number ASC`
	rows, err := r.db.QueryContext(ctx, query)
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

func (r *carRepository) IncrementRentalCount(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE cars SET rental_count = rental_count + 1 WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
