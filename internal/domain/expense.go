package domain

import "time"

type Expense struct {
	ID            int64     `json:"id"`
	Description   string    `json:"description"`
	Amount        int64     `json:"amount"`
	Category      string    `json:"category"`
	PaymentMethod string    `json:"payment_method"`
	SpentOn       time.Time `json:"spent_on"`
	CreatedOn     time.Time `json:"created_on"`
}

type CalendarNote struct {
	ID        int64     `json:"id"`
	NoteDate  time.Time `json:"note_date"`
	Note      string    `json:"note"`
	Color     string    `json:"color"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}
