package product

import (
	"context"

	"importexport-hub/internal/domain"
)

// UpdateInput carries optional fields for a partial product update.
type UpdateInput struct {
	Name     *string  `json:"name,omitempty"`
	Image    *string  `json:"image,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Origin   *string  `json:"origin,omitempty"`
	Rating   *float64 `json:"rating,omitempty"`
	Quantity *int64   `json:"quantity,omitempty"`
	Category *string  `json:"category,omitempty"`
}

type Repository interface {
	List(ctx context.Context, search string) ([]domain.Product, error)
	ListLatest(ctx context.Context, limit int) ([]domain.Product, error)
	ListByOwner(ctx context.Context, owner, search string) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	// Upsert inserts the product or refreshes the existing listing with the
	// same name and owner. Used by the catalog importer; the API keeps plain
	// Create so duplicate listings stay possible there.
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id string, in UpdateInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	// DecrementStock subtracts amount from the product's quantity only when
	// enough stock remains. It reports false when the condition did not match.
	DecrementStock(ctx context.Context, id string, amount int64) (bool, error)
}
