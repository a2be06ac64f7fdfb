package user

import (
	"context"

	"importexport-hub/internal/domain"
)

// UpsertInput carries the profile fields refreshed on every login.
type UpsertInput struct {
	Email string
	Name  string
	Photo string
}

type Repository interface {
	UpsertByEmail(ctx context.Context, in UpsertInput) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
