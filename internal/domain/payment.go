package domain

import "time"

type PaymentType string

const (
	PaymentTypeCash     PaymentType = "cash"
	PaymentTypeCard     PaymentType = "card"
	PaymentTypeTransfer PaymentType = "transfer"
)

type Payment struct {
	ID          int64       `json:"id"`
	RentalID    *int64      `json:"rental_id,omitempty"`
	CustomerID  int64       `json:"customer_id"`
	Amount      int64       `json:"amount"`
	Discount    int64       `json:"discount"`
	PaymentType PaymentType `json:"payment_type"`
	PaymentDate time.Time   `json:"payment_date"`
	// IsPrepaid marks the deposit created together with the rental.
	IsPrepaid   bool      `json:"is_prepaid"`
	Description string    `json:"description"`
	CreatedOn   time.Time `json:"created_on"`
}

func ValidPaymentType(t PaymentType) bool {
	switch t {
	case PaymentTypeCash, PaymentTypeCard, PaymentTypeTransfer:
		return true
	}
	return false
}
