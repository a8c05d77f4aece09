package domain

import "time"

type Car struct {
	ID          int64     `json:"id"`
	CarNumber   string    `json:"car_number"`
	DriverName  string    `json:"driver_name"`
	DriverPhone string    `json:"driver_phone"`
	Status      string    `json:"status"`
	RentalCount int64     `json:"rental_count"`
	CreatedOn   time.Time `json:"created_on"`
	UpdatedOn   time.Time `json:"updated_on"`
}
