package domain

import "time"

type ProductType string

const (
	ProductTypeSingle ProductType = "single"
	ProductTypeCombo  ProductType = "combo"
)

type Product struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	DailyRate   int64       `json:"daily_rate"`
	Quantity    int64       `json:"quantity"`
	Rented      int64       `json:"rented"`
	Type        ProductType `json:"type"`
	// Parts is populated for combo products only. The combo's DailyRate is
	// derived from it and recomputed whenever the parts list changes.
	Parts       []ProductPart `json:"parts,omitempty"`
	RentalCount int64         `json:"rental_count"`
	CreatedOn   time.Time     `json:"created_on"`
	UpdatedOn   time.Time     `json:"updated_on"`
}

// ProductPart is one constituent line of a combo product.
type ProductPart struct {
	ID            int64 `json:"id"`
	ProductID     int64 `json:"product_id"`
	PartProductID int64 `json:"part_product_id"`
	Quantity      int64 `json:"quantity"`
	DailyRate     int64 `json:"daily_rate"`
	Position      int32 `json:"position"`
}

// Available reports how many units are free to reserve.
func (p *Product) Available() int64 {
	return p.Quantity - p.Rented
}

// IsAvailable is derived, never stored: quantity - rented > 0.
func (p *Product) IsAvailable() bool {
	return p.Available() > 0
}
