package domain

import "time"

// ProductSnapshot freezes a product's descriptive fields at transfer time.
// QuantityAtImport records the stock level before the decrement; it is
// distinct from the transferred quantity stored on the record itself.
type ProductSnapshot struct {
	ProductID        string    `json:"p_id"`
	Name             string    `json:"name"`
	Image            string    `json:"image"`
	Origin           string    `json:"origin"`
	Rating           float64   `json:"rating"`
	Price            float64   `json:"price"`
	QuantityAtImport int64     `json:"quantityAtImport"`
	CreatedAt        time.Time `json:"createdAt"`
	CreatedBy        string    `json:"createdBy"`
}

// ImportRecord is an immutable ledger entry for a completed stock transfer.
// Deleting a record does not restore stock to the source product.
type ImportRecord struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"productId"`
	Importer   string          `json:"importer"`
	Quantity   int64           `json:"quantity"`
	Product    ProductSnapshot `json:"fullProduct"`
	ImportedAt time.Time       `json:"importedAt"`
}
