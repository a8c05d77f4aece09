package postgres

import (
	"context"
	"testing"
	"time"

	"rentdesk-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestRentalRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRentalRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		rental := &domain.Rental{
			RentalNumber:  41,
			CustomerID:    3,
			WorkStartDate: start,
			Status:        domain.RentalStatusActive,
			BorrowedItems: []domain.BorrowedItem{
				{ProductID: 1, Quantity: 2, DailyRate: 100, StartDate: start},
				{ProductID: 2, Quantity: 1, DailyRate: 250, StartDate: start},
			},
		}

		mock.ExpectQuery("INSERT INTO rentals").
			WithArgs(rental.RentalNumber, rental.CustomerID, rental.CarID, rental.WorkStartDate,
				rental.TotalCost, rental.Debt, rental.Status, rental.Description, rental.EndDate,
				sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(15))

		mock.ExpectExec("INSERT INTO rental_borrowed_items").
			WithArgs(int64(15), int64(1), int64(2), int64(100), start, 0).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO rental_borrowed_items").
			WithArgs(int64(15), int64(2), int64(1), int64(250), start, 1).
			WillReturnResult(sqlmock.NewResult(2, 1))

		err := repo.Create(ctx, rental)
		assert.NoError(t, err)
		assert.Equal(t, int64(15), rental.ID)
	})
}

func TestRentalRepository_NextRentalNumber(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRentalRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT COALESCE\\(MAX\\(rental_number\\), 0\\) \\+ 1 FROM rentals").
			WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(42))

		next, err := repo.NextRentalNumber(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(42), next)
	})

	t.Run("EmptyTableStartsAtOne", func(t *testing.T) {
		mock.ExpectQuery("SELECT COALESCE\\(MAX\\(rental_number\\), 0\\) \\+ 1 FROM rentals").
			WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(1))

		next, err := repo.NextRentalNumber(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), next)
	})
}

func TestRentalRepository_AddReturnedItems(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRentalRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		ret := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
		items := []domain.ReturnedItem{
			{ProductID: 1, Quantity: 2, StartDate: start, ReturnDate: ret, DailyRate: 100, DaysBilled: 3, Cost: 600},
		}

		mock.ExpectQuery("SELECT COALESCE\\(MAX\\(position\\), -1\\) \\+ 1 FROM rental_returned_items").
			WithArgs(int64(15)).
			WillReturnRows(sqlmock.NewRows([]string{"position"}).AddRow(2))

		mock.ExpectExec("INSERT INTO rental_returned_items").
			WithArgs(int64(15), int64(1), int64(2), start, ret, int64(100), int64(0), int64(3), int64(600), int32(2)).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.AddReturnedItems(ctx, 15, items)
		assert.NoError(t, err)
	})
}

func TestRentalRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRentalRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		rows := sqlmock.NewRows([]string{"id", "rental_number", "customer_id", "car_id", "work_start_date", "total_cost", "debt", "status", "description", "end_date", "created_on", "updated_on"}).
			AddRow(15, 41, 3, nil, now, 600, 600, "active", "", nil, now, now)

		mock.ExpectQuery("SELECT (.+) FROM rentals WHERE id = \\$1").
			WithArgs(int64(15)).
			WillReturnRows(rows)

		borrowedRows := sqlmock.NewRows([]string{"id", "rental_id", "product_id", "quantity", "daily_rate", "start_date", "position"}).
			AddRow(1, 15, 1, 2, 100, now, 0)
		mock.ExpectQuery("SELECT (.+) FROM rental_borrowed_items WHERE rental_id = \\$1").
			WithArgs(int64(15)).
			WillReturnRows(borrowedRows)

		mock.ExpectQuery("SELECT (.+) FROM rental_returned_items WHERE rental_id = \\$1").
			WithArgs(int64(15)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "rental_id", "product_id", "quantity", "start_date", "return_date", "daily_rate", "discount_days", "days_billed", "cost", "position"}))

		rental, err := repo.GetByID(ctx, 15)
		assert.NoError(t, err)
		assert.NotNil(t, rental)
		assert.Equal(t, int64(41), rental.RentalNumber)
		assert.Len(t, rental.BorrowedItems, 1)
		assert.Empty(t, rental.ReturnedItems)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM rentals WHERE id = \\$1").
			WithArgs(int64(404)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		rental, err := repo.GetByID(ctx, 404)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Nil(t, rental)
	})
}
