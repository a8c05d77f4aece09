package domain

// RevenueStats aggregates payments over a period.
type RevenueStats struct {
	TotalAmount   int64 `json:"total_amount"`
	PaymentCount  int64 `json:"payment_count"`
	AverageAmount int64 `json:"average_amount"`
}

// TopCustomer is a reporting row: a customer ranked by payment volume.
type TopCustomer struct {
	CustomerID   int64  `json:"customer_id"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	TotalAmount  int64  `json:"total_amount"`
	PaymentCount int64  `json:"payment_count"`
}
