package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
)

type rentalRepository struct {
	db DBTX
}

func NewRentalRepository(db DBTX) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, rental_number, customer_id, car_id, work_start_date, total_cost, debt, status, description, end_date, created_on, updated_on`

func (r *rentalRepository) Create(ctx context.Context, rental *domain.Rental) error {
	query := `INSERT INTO rentals (rental_number, customer_id, car_id, work_start_date, total_cost, debt, status, description, end_date, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query, rental.RentalNumber, rental.CustomerID, rental.CarID,
		rental.WorkStartDate, rental.TotalCost, rental.Debt, rental.Status, rental.Description,
		rental.EndDate, now, now).Scan(&rental.ID)
	if err != nil {
		return err
	}
	return r.insertBorrowedItems(ctx, rental.ID, rental.BorrowedItems)
}

func (r *rentalRepository) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	rental := &domain.Rental{}
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	err := scanRental(r.db.QueryRowContext(ctx, query, id), rental)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, rental); err != nil {
		return nil, err
	}
	return rental, nil
}

func (r *rentalRepository) Update(ctx context.Context, rental *domain.Rental) error {
	query := `UPDATE rentals SET customer_id=$1, car_id=$2, work_start_date=$3, total_cost=$4, debt=$5,
	          status=$6, description=$7, end_date=$8, updated_on=$9 WHERE id=$10`
	res, err := r.db.ExecContext(ctx, query, rental.CustomerID, rental.CarID, rental.WorkStartDate,
		rental.TotalCost, rental.Debt, rental.Status, rental.Description, rental.EndDate, time.Now(), rental.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *rentalRepository) Delete(ctx context.Context, id int64) error {
	// Item rows cascade via FK constraints.
	res, err := r.db.ExecContext(ctx, `DELETE FROM rentals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *rentalRepository) List(ctx context.Context) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals ORDER BY rental_number DESC`
	return r.queryRentals(ctx, query)
}

func (r *rentalRepository) ListByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE status = $1 ORDER BY rental_number DESC`
	return r.queryRentals(ctx, query, status)
}

func (r *rentalRepository) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE customer_id = $1 ORDER BY rental_number DESC`
	return r.queryRentals(ctx, query, customerID)
}

func (r *rentalRepository) ListByCar(ctx context.Context, carID int64) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE car_id = $1 ORDER BY rental_number DESC`
	return r.queryRentals(ctx, query, carID)
}

func (r *rentalRepository) ListByProduct(ctx context.Context, productID int64) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals
	          WHERE id IN (SELECT rental_id FROM rental_borrowed_items WHERE product_id = $1)
	          ORDER BY rental_number DESC`
	return r.queryRentals(ctx, query, productID)
}

func (r *rentalRepository) NextRentalNumber(ctx context.Context) (int64, error) {
	var next int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(rental_number), 0) + 1 FROM rentals`).Scan(&next)
	if err != nil {
		return 0, err
	}
	return next, nil
}

func (r *rentalRepository) AddReturnedItems(ctx context.Context, rentalID int64, items []domain.ReturnedItem) error {
	var position int32
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position), -1) + 1 FROM rental_returned_items WHERE rental_id = $1`, rentalID).Scan(&position)
	if err != nil {
		return err
	}
	query := `INSERT INTO rental_returned_items
	          (rental_id, product_id, quantity, start_date, return_date, daily_rate, discount_days, days_billed, cost, position)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	for i, item := range items {
		_, err := r.db.ExecContext(ctx, query, rentalID, item.ProductID, item.Quantity,
			item.StartDate, item.ReturnDate, item.DailyRate, item.DiscountDays, item.DaysBilled,
			item.Cost, position+int32(i))
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *rentalRepository) ReplaceBorrowedItems(ctx context.Context, rentalID int64, items []domain.BorrowedItem) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM rental_borrowed_items WHERE rental_id = $1`, rentalID); err != nil {
		return err
	}
	return r.insertBorrowedItems(ctx, rentalID, items)
}

func (r *rentalRepository) CountActiveByProduct(ctx context.Context, productID int64) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM rentals r
	          JOIN rental_borrowed_items bi ON bi.rental_id = r.id
	          WHERE bi.product_id = $1 AND r.status = 'active'`
	err := r.db.QueryRowContext(ctx, query, productID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *rentalRepository) SumReturnChargesByCustomer(ctx context.Context, customerID int64) (int64, error) {
	var total int64
	query := `SELECT COALESCE(SUM(ri.cost), 0) FROM rental_returned_items ri
	          JOIN rentals r ON r.id = ri.rental_id
	          WHERE r.customer_id = $1`
	err := r.db.QueryRowContext(ctx, query, customerID).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *rentalRepository) insertBorrowedItems(ctx context.Context, rentalID int64, items []domain.BorrowedItem) error {
	query := `INSERT INTO rental_borrowed_items (rental_id, product_id, quantity, daily_rate, start_date, position)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	for i, item := range items {
		_, err := r.db.ExecContext(ctx, query, rentalID, item.ProductID, item.Quantity,
			item.DailyRate, item.StartDate, i)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *rentalRepository) queryRentals(ctx context.Context, query string, args ...any) ([]domain.Rental, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var rental domain.Rental
		if err := scanRental(rows, &rental); err != nil {
			return nil, err
		}
		rentals = append(rentals, rental)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range rentals {
		if err := r.loadItems(ctx, &rentals[i]); err != nil {
			return nil, err
		}
	}
	return rentals, nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRental(row rowScanner, rental *domain.Rental) error {
	return row.Scan(&rental.ID, &rental.RentalNumber, &rental.CustomerID, &rental.CarID,
		&rental.WorkStartDate, &rental.TotalCost, &rental.Debt, &rental.Status,
		&rental.Description, &rental.EndDate, &rental.CreatedOn, &rental.UpdatedOn)
}

func (r *rentalRepository) loadItems(ctx context.Context, rental *domain.Rental) error {
	borrowed, err := r.loadBorrowedItems(ctx, rental.ID)
	if err != nil {
		return err
	}
	rental.BorrowedItems = borrowed

	returned, err := r.loadReturnedItems(ctx, rental.ID)
	if err != nil {
		return err
	}
	rental.ReturnedItems = returned
	return nil
}

func (r *rentalRepository) loadBorrowedItems(ctx context.Context, rentalID int64) ([]domain.BorrowedItem, error) {
	query := `SELECT id, rental_id, product_id, quantity, daily_rate, start_date, position
	          FROM rental_borrowed_items WHERE rental_id = $1 ORDER BY position ASC`
	rows, err := r.db.QueryContext(ctx, query, rentalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.BorrowedItem
	for rows.Next() {
		var item domain.BorrowedItem
		if err := rows.Scan(&item.ID, &item.RentalID, &item.ProductID, &item.Quantity,
			&item.DailyRate, &item.StartDate, &item.Position); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *rentalRepository) loadReturnedItems(ctx context.Context, rentalID int64) ([]domain.ReturnedItem, error) {
	query := `SELECT id, rental_id, product_id, quantity, start_date, return_date, daily_rate, discount_days, days_billed, cost, position
	          FROM rental_returned_items WHERE rental_id = $1 ORDER BY position ASC`
	rows, err := r.db.QueryContext(ctx, query, rentalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.ReturnedItem
	for rows.Next() {
		var item domain.ReturnedItem
		if err := rows.Scan(&item.ID, &item.RentalID, &item.ProductID, &item.Quantity,
			&item.StartDate, &item.ReturnDate, &item.DailyRate, &item.DiscountDays,
			&item.DaysBilled, &item.Cost, &item.Position); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
