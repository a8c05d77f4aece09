package repository

import (
	"context"
	"time"

	"rentdesk-backend/internal/domain"
)

// Store bundles all repositories behind one handle so services can run
// compound operations transactionally. ExecTx runs fn against a Store whose
// repositories share a single database transaction; an error from fn rolls
// everything back.
type Store interface {
	Users() UserRepository
	Customers() CustomerRepository
	Products() ProductRepository
	Cars() CarRepository
	Rentals() RentalRepository
	Payments() PaymentRepository
	Expenses() ExpenseRepository
	CalendarNotes() CalendarNoteRepository
	Stats() StatsRepository

	ExecTx(ctx context.Context, fn func(Store) error) error
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Customer, error)
	ListByStatus(ctx context.Context, status domain.CustomerStatus) ([]domain.Customer, error)
	// AdjustBalance applies a signed delta as a single atomic update.
	AdjustBalance(ctx context.Context, id int64, delta int64) error
	SetBalance(ctx context.Context, id int64, balance int64) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Product, error)
	// SetParts replaces a combo's parts and its derived daily rate in one go.
	SetParts(ctx context.Context, productID int64, parts []domain.ProductPart, dailyRate int64) error
	// Reserve is a conditional increment of rented: it applies only when
	// quantity - rented >= qty and reports whether it did.
	Reserve(ctx context.Context, id int64, qty int64) (bool, error)
	// Release decrements rented, floored at zero.
	Release(ctx context.Context, id int64, qty int64) error
	IncrementRentalCount(ctx context.Context, id int64) error
}

type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) error
	GetByID(ctx context.Context, id int64) (*domain.Car, error)
	Update(ctx context.Context, car *domain.Car) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Car, error)
	IncrementRentalCount(ctx context.Context, id int64) error
}

type RentalRepository interface {
	// Create persists the rental together with its borrowed items.
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id int64) (*domain.Rental, error)
	Update(ctx context.Context, rental *domain.Rental) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Rental, error)
	ListByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Rental, error)
	ListByCar(ctx context.Context, carID int64) ([]domain.Rental, error)
	ListByProduct(ctx context.Context, productID int64) ([]domain.Rental, error)
	// NextRentalNumber hands out the next sequential human-facing number.
	// Call inside a transaction so numbers stay gap-free.
	NextRentalNumber(ctx context.Context) (int64, error)
	AddReturnedItems(ctx context.Context, rentalID int64, items []domain.ReturnedItem) error
	ReplaceBorrowedItems(ctx context.Context, rentalID int64, items []domain.BorrowedItem) error
	CountActiveByProduct(ctx context.Context, productID int64) (int64, error)
	// SumReturnChargesByCustomer totals realized return costs across all of a
	// customer's rentals, for balance audits.
	SumReturnChargesByCustomer(ctx context.Context, customerID int64) (int64, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	Update(ctx context.Context, payment *domain.Payment) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Payment, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Payment, error)
	ListByRental(ctx context.Context, rentalID int64) ([]domain.Payment, error)
	SumByRental(ctx context.Context, rentalID int64) (int64, error)
	SumByCustomer(ctx context.Context, customerID int64) (int64, error)
}

type ExpenseRepository interface {
	Create(ctx context.Context, expense *domain.Expense) error
	GetByID(ctx context.Context, id int64) (*domain.Expense, error)
	Update(ctx context.Context, expense *domain.Expense) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, category string, from, to *time.Time) ([]domain.Expense, error)
}

type CalendarNoteRepository interface {
	Create(ctx context.Context, note *domain.CalendarNote) error
	GetByID(ctx context.Context, id int64) (*domain.CalendarNote, error)
	Update(ctx context.Context, note *domain.CalendarNote) error
	Delete(ctx context.Context, id int64) error
	ListByRange(ctx context.Context, from, to time.Time) ([]domain.CalendarNote, error)
}

type StatsRepository interface {
	RevenueBetween(ctx context.Context, from, to time.Time) (*domain.RevenueStats, error)
	TopCustomers(ctx context.Context, from, to time.Time, limit int) ([]domain.TopCustomer, error)
	MostRentedCars(ctx context.Context, limit int) ([]domain.Car, error)
}
