package domain

import "time"

// Product is an export-side listing with available stock.
// Quantity never goes below zero; transfers decrement it through a
// conditional update keyed on the current value.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	Price     float64   `json:"price"`
	Origin    string    `json:"origin"`
	Rating    float64   `json:"rating"`
	Quantity  int64     `json:"quantity"`
	Category  string    `json:"category,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`
}
