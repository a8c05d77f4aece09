package domain

import "time"

type RentalStatus string

const (
	RentalStatusActive    RentalStatus = "active"
	RentalStatusCompleted RentalStatus = "completed"
	RentalStatusCancelled RentalStatus = "cancelled"
)

type Rental struct {
	ID           int64  `json:"id"`
	RentalNumber int64  `json:"rental_number"`
	CustomerID   int64  `json:"customer_id"`
	CarID        *int64 `json:"car_id,omitempty"`
	// Rate snapshot fields live on the borrowed items: cost calculations
	// use those snapshots, not live product prices.
	BorrowedItems []BorrowedItem `json:"borrowed_items"`
	ReturnedItems []ReturnedItem `json:"returned_items"`
	WorkStartDate time.Time      `json:"work_start_date"`
	// TotalCost accrues as items are returned and their costs are realized.
	TotalCost   int64        `json:"total_cost"`
	Debt        int64        `json:"debt"`
	Status      RentalStatus `json:"status"`
	Description string       `json:"description"`
	EndDate     *time.Time   `json:"end_date,omitempty"`
	CreatedOn   time.Time    `json:"created_on"`
	UpdatedOn   time.Time    `json:"updated_on"`

	// Computed on read for list/detail responses, never persisted.
	RentalDays      int64 `json:"rental_days,omitempty"`
	TotalPayments   int64 `json:"total_payments,omitempty"`
	RemainingAmount int64 `json:"remaining_amount,omitempty"`
}

// BorrowedItem is one product line checked out on a rental.
type BorrowedItem struct {
	ID        int64     `json:"id"`
	RentalID  int64     `json:"rental_id"`
	ProductID int64     `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	DailyRate int64     `json:"daily_rate"` // snapshot at borrow time
	StartDate time.Time `json:"start_date"`
	Position  int32     `json:"position"`
}

// ReturnedItem records a partial or full return of a borrowed line.
type ReturnedItem struct {
	ID           int64     `json:"id"`
	RentalID     int64     `json:"rental_id"`
	ProductID    int64     `json:"product_id"`
	Quantity     int64     `json:"quantity"`
	StartDate    time.Time `json:"start_date"`
	ReturnDate   time.Time `json:"return_date"`
	DailyRate    int64     `json:"daily_rate"` // snapshot, possibly overridden
	DiscountDays int64     `json:"discount_days"`
	DaysBilled   int64     `json:"days_billed"`
	Cost         int64     `json:"cost"`
	Position     int32     `json:"position"`
}

// ReturnedQuantity sums prior returns for one product line.
func (r *Rental) ReturnedQuantity(productID int64) int64 {
	var total int64
	for _, ri := range r.ReturnedItems {
		if ri.ProductID == productID {
			total += ri.Quantity
		}
	}
	return total
}

// BorrowedQuantity sums borrowed lines for one product.
func (r *Rental) BorrowedQuantity(productID int64) int64 {
	var total int64
	for _, bi := range r.BorrowedItems {
		if bi.ProductID == productID {
			total += bi.Quantity
		}
	}
	return total
}

// FullyReturned reports whether every borrowed product has cumulative
// returned quantity >= borrowed quantity.
func (r *Rental) FullyReturned() bool {
	if len(r.BorrowedItems) == 0 {
		return false
	}
	for _, bi := range r.BorrowedItems {
		if r.ReturnedQuantity(bi.ProductID) < r.BorrowedQuantity(bi.ProductID) {
			return false
		}
	}
	return true
}
