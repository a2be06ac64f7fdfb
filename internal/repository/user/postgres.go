package user

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"importexport-hub/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) UpsertByEmail(ctx context.Context, in UpsertInput) (*domain.User, error) {
	const q = `
INSERT INTO users (email, name, photo)
VALUES ($1, $2, $3)
ON CONFLICT (email) DO UPDATE SET
    name = EXCLUDED.name,
    photo = EXCLUDED.photo,
    last_login_at = now()
RETURNING id::text, email, name, photo, created_at, last_login_at
`
	var u domain.User
	err := r.pool.QueryRow(ctx, q, strings.ToLower(in.Email), in.Name, in.Photo).
		Scan(&u.ID, &u.Email, &u.Name, &u.Photo, &u.CreatedAt, &u.LastLoginAt)
	if err != nil {
		r.logger.Printf("user repo: upsert email=%s error=%v", in.Email, err)
		return nil, err
	}
	r.logger.Printf("user repo: upserted email=%s id=%s", u.Email, u.ID)
	return &u, nil
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `
SELECT id::text, email, name, photo, created_at, last_login_at
FROM users
WHERE email = $1
`
	var u domain.User
	err := r.pool.QueryRow(ctx, q, strings.ToLower(email)).
		Scan(&u.ID, &u.Email, &u.Name, &u.Photo, &u.CreatedAt, &u.LastLoginAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("user repo: get email=%s error=%v", email, err)
		return nil, err
	}
	return &u, nil
}
