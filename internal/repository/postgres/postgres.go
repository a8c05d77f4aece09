package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"rentdesk-backend/internal/repository"

	_ "github.com/lib/pq"
)

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx, so every
// repository can run either directly or inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB

	users         repository.UserRepository
	customers     repository.CustomerRepository
	products      repository.ProductRepository
	cars          repository.CarRepository
	rentals       repository.RentalRepository
	payments      repository.PaymentRepository
	expenses      repository.ExpenseRepository
	calendarNotes repository.CalendarNoteRepository
	stats         repository.StatsRepository
}

func NewStore(db *sql.DB) *Store {
	s := &Store{db: db}
	s.bind(db)
	return s
}

func (s *Store) bind(q DBTX) {
	s.users = NewUserRepository(q)
	s.customers = NewCustomerRepository(q)
	s.products = NewProductRepository(q)
	s.cars = NewCarRepository(q)
	s.rentals = NewRentalRepository(q)
	s.payments = NewPaymentRepository(q)
	s.expenses = NewExpenseRepository(q)
	s.calendarNotes = NewCalendarNoteRepository(q)
	s.stats = NewStatsRepository(q)
}

func (s *Store) Users() repository.UserRepository                 { return s.users }
func (s *Store) Customers() repository.CustomerRepository         { return s.customers }
func (s *Store) Products() repository.ProductRepository           { return s.products }
func (s *Store) Cars() repository.CarRepository                   { return s.cars }
func (s *Store) Rentals() repository.RentalRepository             { return s.rentals }
func (s *Store) Payments() repository.PaymentRepository           { return s.payments }
func (s *Store) Expenses() repository.ExpenseRepository           { return s.expenses }
func (s *Store) CalendarNotes() repository.CalendarNoteRepository { return s.calendarNotes }
func (s *Store) Stats() repository.StatsRepository                { return s.stats }

// ExecTx runs fn against a Store bound to one transaction. Any error from fn
// rolls the whole transaction back, so compound writes across products,
// rentals, payments and customers commit together or not at all.
func (s *Store) ExecTx(ctx context.Context, fn func(repository.Store) error) error {
	if s.db == nil {
		// Already inside a transaction; nested calls just reuse it.
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	txStore := &Store{}
	txStore.bind(tx)

	if err := fn(txStore); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}
	return tx.Commit()
}
