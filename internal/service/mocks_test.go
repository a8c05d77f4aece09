package service

import (
	"context"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockStore hands every repository accessor a testify mock and runs ExecTx
// callbacks directly against itself, so service tests exercise the same code
// path as a real transaction.
type MockStore struct {
	users         *MockUserRepo
	customers     *MockCustomerRepo
	products      *MockProductRepo
	cars          *MockCarRepo
	rentals       *MockRentalRepo
	payments      *MockPaymentRepo
	expenses      *MockExpenseRepo
	calendarNotes *MockCalendarNoteRepo
	stats         *MockStatsRepo
}

func newMockStore() *MockStore {
	return &MockStore{
		users:         new(MockUserRepo),
		customers:     new(MockCustomerRepo),
		products:      new(MockProductRepo),
		cars:          new(MockCarRepo),
		rentals:       new(MockRentalRepo),
		payments:      new(MockPaymentRepo),
		expenses:      new(MockExpenseRepo),
		calendarNotes: new(MockCalendarNoteRepo),
		stats:         new(MockStatsRepo),
	}
}

func (s *MockStore) Users() repository.UserRepository                 { return s.users }
func (s *MockStore) Customers() repository.CustomerRepository         { return s.customers }
func (s *MockStore) Products() repository.ProductRepository           { return s.products }
func (s *MockStore) Cars() repository.CarRepository                   { return s.cars }
func (s *MockStore) Rentals() repository.RentalRepository             { return s.rentals }
func (s *MockStore) Payments() repository.PaymentRepository           { return s.payments }
func (s *MockStore) Expenses() repository.ExpenseRepository           { return s.expenses }
func (s *MockStore) CalendarNotes() repository.CalendarNoteRepository { return s.calendarNotes }
func (s *MockStore) Stats() repository.StatsRepository                { return s.stats }

func (s *MockStore) ExecTx(ctx context.Context, fn func(repository.Store) error) error {
	return fn(s)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockCustomerRepo
type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) Create(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}
func (m *MockCustomerRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) Update(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}
func (m *MockCustomerRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockCustomerRepo) List(ctx context.Context) ([]domain.Customer, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) ListByStatus(ctx context.Context, status domain.CustomerStatus) ([]domain.Customer, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) AdjustBalance(ctx context.Context, id int64, delta int64) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}
func (m *MockCustomerRepo) SetBalance(ctx context.Context, id int64, balance int64) error {
	args := m.Called(ctx, id, balance)
	return args.Error(0)
}

// MockProductRepo
type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}
func (m *MockProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductRepo) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}
func (m *MockProductRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Product), args.Error(1)
}
func (m *MockProductRepo) SetParts(ctx context.Context, productID int64, parts []domain.ProductPart, dailyRate int64) error {
	args := m.Called(ctx, productID, parts, dailyRate)
	return args.Error(0)
}
func (m *MockProductRepo) Reserve(ctx context.Context, id int64, qty int64) (bool, error) {
	args := m.Called(ctx, id, qty)
	return args.Bool(0), args.Error(1)
}
func (m *MockProductRepo) Release(ctx context.Context, id int64, qty int64) error {
	args := m.Called(ctx, id, qty)
	return args.Error(0)
}
func (m *MockProductRepo) IncrementRentalCount(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCarRepo
type MockCarRepo struct {
	mock.Mock
}

func (m *MockCarRepo) Create(ctx context.Context, car *domain.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}
func (m *MockCarRepo) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}
func (m *MockCarRepo) Update(ctx context.Context, car *domain.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}
func (m *MockCarRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockCarRepo) List(ctx context.Context) ([]domain.Car, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Car), args.Error(1)
}
func (m *MockCarRepo) IncrementRentalCount(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) Update(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockRentalRepo) List(ctx context.Context) ([]domain.Rental, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Rental, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListByCar(ctx context.Context, carID int64) ([]domain.Rental, error) {
	args := m.Called(ctx, carID)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListByProduct(ctx context.Context, productID int64) ([]domain.Rental, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) NextRentalNumber(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockRentalRepo) AddReturnedItems(ctx context.Context, rentalID int64, items []domain.ReturnedItem) error {
	args := m.Called(ctx, rentalID, items)
	return args.Error(0)
}
func (m *MockRentalRepo) ReplaceBorrowedItems(ctx context.Context, rentalID int64, items []domain.BorrowedItem) error {
	args := m.Called(ctx, rentalID, items)
	return args.Error(0)
}
func (m *MockRentalRepo) CountActiveByProduct(ctx context.Context, productID int64) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockRentalRepo) SumReturnChargesByCustomer(ctx context.Context, customerID int64) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}
func (m *MockPaymentRepo) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) Update(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}
func (m *MockPaymentRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockPaymentRepo) List(ctx context.Context) ([]domain.Payment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Payment, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) ListByRental(ctx context.Context, rentalID int64) ([]domain.Payment, error) {
	args := m.Called(ctx, rentalID)
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) SumByRental(ctx context.Context, rentalID int64) (int64, error) {
	args := m.Called(ctx, rentalID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockPaymentRepo) SumByCustomer(ctx context.Context, customerID int64) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

// MockExpenseRepo
type MockExpenseRepo struct {
	mock.Mock
}

func (m *MockExpenseRepo) Create(ctx context.Context, expense *domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}
func (m *MockExpenseRepo) GetByID(ctx context.Context, id int64) (*domain.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockExpenseRepo) Update(ctx context.Context, expense *domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}
func (m *MockExpenseRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockExpenseRepo) List(ctx context.Context, category string, from, to *time.Time) ([]domain.Expense, error) {
	args := m.Called(ctx, category, from, to)
	return args.Get(0).([]domain.Expense), args.Error(1)
}

// MockCalendarNoteRepo
type MockCalendarNoteRepo struct {
	mock.Mock
}

func (m *MockCalendarNoteRepo) Create(ctx context.Context, note *domain.CalendarNote) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockCalendarNoteRepo) GetByID(ctx context.Context, id int64) (*domain.CalendarNote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CalendarNote), args.Error(1)
}
func (m *MockCalendarNoteRepo) Update(ctx context.Context, note *domain.CalendarNote) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockCalendarNoteRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockCalendarNoteRepo) ListByRange(ctx context.Context, from, to time.Time) ([]domain.CalendarNote, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.CalendarNote), args.Error(1)
}

// MockStatsRepo
type MockStatsRepo struct {
	mock.Mock
}

func (m *MockStatsRepo) RevenueBetween(ctx context.Context, from, to time.Time) (*domain.RevenueStats, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RevenueStats), args.Error(1)
}
func (m *MockStatsRepo) TopCustomers(ctx context.Context, from, to time.Time, limit int) ([]domain.TopCustomer, error) {
	args := m.Called(ctx, from, to, limit)
	return args.Get(0).([]domain.TopCustomer), args.Error(1)
}
func (m *MockStatsRepo) MostRentedCars(ctx context.Context, limit int) ([]domain.Car, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.Car), args.Error(1)
}
