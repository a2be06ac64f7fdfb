package transfer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"importexport-hub/internal/domain"

	"github.com/google/uuid"
)

var (
	// ErrMissingFields is returned when productId, quantity or importer is
	// absent, zero or otherwise unusable.
	ErrMissingFields = errors.New("missing fields")
	// ErrInsufficientStock is returned when the requested quantity exceeds
	// the product's available stock.
	ErrInsufficientStock = errors.New("import quantity exceeds available stock")
)

type productStore interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	DecrementStock(ctx context.Context, id string, amount int64) (bool, error)
}

type ledgerStore interface {
	Insert(ctx context.Context, rec domain.ImportRecord) error
	Delete(ctx context.Context, id string) error
}

// Service moves stock from an export listing into the import ledger.
type Service struct {
	products productStore
	ledger   ledgerStore
	now      func() time.Time
	newID    func() string
}

func New(products productStore, ledger ledgerStore) *Service {
	return &Service{
		products: products,
		ledger:   ledger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Input is the transfer request payload. Quantity arrives as a JSON number
// and must be a positive integer; fractional values are rejected.
type Input struct {
	ProductID string  `json:"productId"`
	Quantity  float64 `json:"quantity"`
	Importer  string  `json:"importer"`
}

// Transfer validates the request, snapshots the product, appends a ledger
// entry and decrements the product's stock. The decrement is conditional on
// sufficient stock; when it does not match (a concurrent transfer won the
// race) the just-written ledger entry is deleted and ErrInsufficientStock
// is returned, so stock is never observed negative.
func (s *Service) Transfer(ctx context.Context, in Input) error {
	productID := strings.TrimSpace(in.ProductID)
	importer := strings.TrimSpace(in.Importer)
	if productID == "" || importer == "" || in.Quantity <= 0 || in.Quantity != math.Trunc(in.Quantity) {
		return ErrMissingFields
	}
	quantity := int64(in.Quantity)

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("fetch product: %w", err)
	}
	if quantity > product.Quantity {
		return ErrInsufficientStock
	}

	rec := domain.ImportRecord{
		ID:         s.newID(),
		ProductID:  product.ID,
		Importer:   importer,
		Quantity:   quantity,
		Product:    snapshotFromProduct(*product),
		ImportedAt: s.now().UTC(),
	}
	if err := s.ledger.Insert(ctx, rec); err != nil {
		return fmt.Errorf("insert import record: %w", err)
	}

	matched, err := s.products.DecrementStock(ctx, product.ID, quantity)
	if err != nil {
		if delErr := s.ledger.Delete(ctx, rec.ID); delErr != nil {
			return fmt.Errorf("decrement stock: %v (compensating delete failed: %w)", err, delErr)
		}
		return fmt.Errorf("decrement stock: %w", err)
	}
	if !matched {
		// Another transfer consumed the stock between the read and the
		// conditional update.
		if delErr := s.ledger.Delete(ctx, rec.ID); delErr != nil {
			return fmt.Errorf("compensate oversold transfer: %w", delErr)
		}
		return ErrInsufficientStock
	}
	return nil
}

func snapshotFromProduct(p domain.Product) domain.ProductSnapshot {
	return domain.ProductSnapshot{
		ProductID:        p.ID,
		Name:             p.Name,
		Image:            p.Image,
		Origin:           p.Origin,
		Rating:           p.Rating,
		Price:            p.Price,
		QuantityAtImport: p.Quantity,
		CreatedAt:        p.CreatedAt,
		CreatedBy:        p.CreatedBy,
	}
}
