package user

import (
	"context"
	"errors"
	"strings"

	"importexport-hub/internal/domain"
	userrepo "importexport-hub/internal/repository/user"
)

// ErrEmailRequired is returned when an upsert or lookup misses the email.
var ErrEmailRequired = errors.New("email required")

// Service maintains user profiles by upsert keyed on email.
type Service struct {
	repo userrepo.Repository
}

func New(repo userrepo.Repository) *Service {
	return &Service{repo: repo}
}

// UpsertInput mirrors the login/registration payload.
type UpsertInput struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Photo string `json:"photo"`
}

func (s *Service) Upsert(ctx context.Context, in UpsertInput) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		return nil, ErrEmailRequired
	}
	return s.repo.UpsertByEmail(ctx, userrepo.UpsertInput{
		Email: email,
		Name:  strings.TrimSpace(in.Name),
		Photo: strings.TrimSpace(in.Photo),
	})
}

func (s *Service) Get(ctx context.Context, email string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, ErrEmailRequired
	}
	return s.repo.GetByEmail(ctx, email)
}
