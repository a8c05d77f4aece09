package service

import (
	"context"
	"time"

	"rentdesk-backend/internal/domain"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}

type InventoryService interface {
	// CheckAvailability reports whether qty units of the product are free and
	// how many currently are.
	CheckAvailability(ctx context.Context, productID, qty int64) (bool, int64, error)
	Reserve(ctx context.Context, productID, qty int64) error
	Release(ctx context.Context, productID, qty int64) error
}

// RentalItemInput is one requested borrow line. A zero StartDate falls back to
// the rental's work start date.
type RentalItemInput struct {
	ProductID int64     `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	StartDate time.Time `json:"start_date"`
}

type CreateRentalInput struct {
	CustomerID    int64             `json:"customer_id"`
	CarID         *int64            `json:"car_id"`
	WorkStartDate time.Time         `json:"work_start_date"`
	Description   string            `json:"description"`
	Items         []RentalItemInput `json:"items"`
	// TotalCost is an optional caller estimate; realized cost accrues at
	// return. When zero and ExpectedEndDate is set, the estimate is priced
	// from the planned period instead.
	TotalCost       int64              `json:"total_cost"`
	ExpectedEndDate time.Time          `json:"expected_end_date"`
	PrepaidAmount   int64              `json:"prepaid_amount"`
	PrepaidType     domain.PaymentType `json:"prepaid_type"`
}

type EditRentalInput struct {
	CustomerID    int64             `json:"customer_id"`
	CarID         *int64            `json:"car_id"`
	WorkStartDate time.Time         `json:"work_start_date"`
	Description   string            `json:"description"`
	Items         []RentalItemInput `json:"items"`
}

// ReturnLine is one product line handed back.
type ReturnLine struct {
	ProductID    int64     `json:"product_id"`
	Quantity     int64     `json:"quantity"`
	ReturnDate   time.Time `json:"return_date"`
	DiscountDays int64     `json:"discount_days"`
	// DailyRate overrides the borrow-time snapshot when set.
	DailyRate *int64 `json:"daily_rate"`
}

type RentalService interface {
	CreateRental(ctx context.Context, input CreateRentalInput) (*domain.Rental, error)
	// ReturnItems processes a batch of return lines and reports the rental
	// plus the total charged by this call.
	ReturnItems(ctx context.Context, rentalID int64, lines []ReturnLine) (*domain.Rental, int64, error)
	EditRental(ctx context.Context, rentalID int64, input EditRentalInput) (*domain.Rental, error)
	DeleteRental(ctx context.Context, rentalID int64) error
	GetRental(ctx context.Context, rentalID int64) (*domain.Rental, error)
	ListRentals(ctx context.Context) ([]domain.Rental, error)
	ListRentalsByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error)
	ListRentalsByCustomer(ctx context.Context, customerID int64) ([]domain.Rental, error)
	ListRentalsByCar(ctx context.Context, carID int64) ([]domain.Rental, error)
	ListRentalsByProduct(ctx context.Context, productID int64) ([]domain.Rental, error)
}

type AddPaymentInput struct {
	RentalID    *int64             `json:"rental_id"`
	CustomerID  int64              `json:"customer_id"`
	Amount      int64              `json:"amount"`
	Discount    int64              `json:"discount"`
	PaymentType domain.PaymentType `json:"payment_type"`
	PaymentDate time.Time          `json:"payment_date"`
	Description string             `json:"description"`
}

type PaymentService interface {
	AddPayment(ctx context.Context, input AddPaymentInput) (*domain.Payment, error)
	UpdatePayment(ctx context.Context, id int64, input AddPaymentInput) (*domain.Payment, error)
	DeletePayment(ctx context.Context, id int64) error
	GetPayment(ctx context.Context, id int64) (*domain.Payment, error)
	ListPayments(ctx context.Context) ([]domain.Payment, error)
	ListPaymentsByCustomer(ctx context.Context, customerID int64) ([]domain.Payment, error)
	ListPaymentsByRental(ctx context.Context, rentalID int64) ([]domain.Payment, error)
}

type CustomerService interface {
	CreateCustomer(ctx context.Context, customer *domain.Customer) error
	GetCustomer(ctx context.Context, id int64) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, customer *domain.Customer) error
	DeleteCustomer(ctx context.Context, id int64) error
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	ListCustomersByStatus(ctx context.Context, status domain.CustomerStatus) ([]domain.Customer, error)
	// RecomputeBalance rebuilds the balance from payment and return-charge
	// history, for audits after manual ledger edits.
	RecomputeBalance(ctx context.Context, customerID int64) (*domain.Customer, error)
}

type ProductPartInput struct {
	PartProductID int64 `json:"part_product_id"`
	Quantity      int64 `json:"quantity"`
}

type ProductService interface {
	CreateProduct(ctx context.Context, product *domain.Product, parts []ProductPartInput) error
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) error
	DeleteProduct(ctx context.Context, id int64) error
	ListProducts(ctx context.Context) ([]domain.Product, error)
	SetParts(ctx context.Context, productID int64, parts []ProductPartInput) (*domain.Product, error)
}

type CarService interface {
	CreateCar(ctx context.Context, car *domain.Car) error
	GetCar(ctx context.Context, id int64) (*domain.Car, error)
	UpdateCar(ctx context.Context, car *domain.Car) error
	DeleteCar(ctx context.Context, id int64) error
	ListCars(ctx context.Context) ([]domain.Car, error)
}

type ExpenseService interface {
	CreateExpense(ctx context.Context, expense *domain.Expense) error
	GetExpense(ctx context.Context, id int64) (*domain.Expense, error)
	UpdateExpense(ctx context.Context, expense *domain.Expense) error
	DeleteExpense(ctx context.Context, id int64) error
	ListExpenses(ctx context.Context, category string, from, to *time.Time) ([]domain.Expense, error)
}

type CalendarNoteService interface {
	CreateNote(ctx context.Context, note *domain.CalendarNote) error
	GetNote(ctx context.Context, id int64) (*domain.CalendarNote, error)
	UpdateNote(ctx context.Context, note *domain.CalendarNote) error
	DeleteNote(ctx context.Context, id int64) error
	ListNotes(ctx context.Context, from, to time.Time) ([]domain.CalendarNote, error)
}

type StatisticsService interface {
	// Revenue aggregates payments for a named period: daily, weekly, monthly
	// or yearly, ending now.
	Revenue(ctx context.Context, period string) (*domain.RevenueStats, error)
	TopCustomers(ctx context.Context, period string, limit int) ([]domain.TopCustomer, error)
	MostRentedCars(ctx context.Context, limit int) ([]domain.Car, error)
}
