package product

import (
	"context"
	"errors"
	"strings"
	"time"

	"importexport-hub/internal/domain"
	productrepo "importexport-hub/internal/repository/product"
)

// ErrInvalidProduct is returned when a creation payload misses required fields.
var ErrInvalidProduct = errors.New("invalid product data")

// LatestLimit is the number of products returned for the home page.
const LatestLimit = 6

type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput mirrors the product creation payload. Every field is required;
// zero values are treated as missing.
type CreateInput struct {
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	Price     float64   `json:"price"`
	Origin    string    `json:"origin"`
	Rating    float64   `json:"rating"`
	Quantity  int64     `json:"quantity"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`
}

func (s *Service) List(ctx context.Context, search string) ([]domain.Product, error) {
	return s.repo.List(ctx, search)
}

func (s *Service) Latest(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListLatest(ctx, LatestLimit)
}

func (s *Service) ListByOwner(ctx context.Context, owner, search string) ([]domain.Product, error) {
	return s.repo.ListByOwner(ctx, owner, search)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Product, error) {
	if strings.TrimSpace(in.Name) == "" ||
		strings.TrimSpace(in.Image) == "" ||
		in.Price <= 0 ||
		strings.TrimSpace(in.Origin) == "" ||
		in.Rating <= 0 ||
		in.Quantity <= 0 ||
		in.CreatedAt.IsZero() ||
		strings.TrimSpace(in.CreatedBy) == "" {
		return nil, ErrInvalidProduct
	}
	return s.repo.Create(ctx, domain.Product{
		Name:      in.Name,
		Image:     in.Image,
		Price:     in.Price,
		Origin:    in.Origin,
		Rating:    in.Rating,
		Quantity:  in.Quantity,
		Category:  in.Category,
		CreatedAt: in.CreatedAt,
		CreatedBy: in.CreatedBy,
	})
}

func (s *Service) Update(ctx context.Context, id string, in productrepo.UpdateInput) (*domain.Product, error) {
	return s.repo.Update(ctx, id, in)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
