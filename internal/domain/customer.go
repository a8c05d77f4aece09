package domain

import "time"

type CustomerStatus string

const (
	CustomerStatusVIP      CustomerStatus = "VIP"
	CustomerStatusOrdinary CustomerStatus = "ordinary"
	CustomerStatusBad      CustomerStatus = "bad"
)

type Customer struct {
	ID      int64          `json:"id"`
	Name    string         `json:"name"`
	Phone   string         `json:"phone"`
	Address string         `json:"address"`
	Status  CustomerStatus `json:"status"`
	// Balance is a signed running total: payments received increase it,
	// return charges decrease it. Mutated only by the payment ledger and
	// the rental return path.
	Balance   int64     `json:"balance"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

func ValidCustomerStatus(s CustomerStatus) bool {
	switch s {
	case CustomerStatusVIP, CustomerStatusOrdinary, CustomerStatusBad:
		return true
	}
	return false
}
