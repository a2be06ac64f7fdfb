package product

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"importexport-hub/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const productColumns = `id::text, name, image, price, origin, rating, quantity, COALESCE(category, ''), created_at, created_by`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) List(ctx context.Context, search string) ([]domain.Product, error) {
	q := `
SELECT ` + productColumns + `
FROM products
ORDER BY created_at DESC
`
	args := []interface{}{}
	if strings.TrimSpace(search) != "" {
		q = `
SELECT ` + productColumns + `
FROM products
WHERE name ILIKE '%' || $1 || '%'
ORDER BY created_at DESC
`
		args = append(args, search)
	}
	return r.queryProducts(ctx, "list", q, args...)
}

func (r *postgresRepo) ListLatest(ctx context.Context, limit int) ([]domain.Product, error) {
	q := `
SELECT ` + productColumns + `
FROM products
ORDER BY created_at DESC
LIMIT $1
`
	return r.queryProducts(ctx, "list latest", q, limit)
}

func (r *postgresRepo) ListByOwner(ctx context.Context, owner, search string) ([]domain.Product, error) {
	q := `
SELECT ` + productColumns + `
FROM products
WHERE created_by = $1
ORDER BY created_at DESC
`
	args := []interface{}{owner}
	if strings.TrimSpace(search) != "" {
		q = `
SELECT ` + productColumns + `
FROM products
WHERE created_by = $1 AND name ILIKE '%' || $2 || '%'
ORDER BY created_at DESC
`
		args = append(args, search)
	}
	return r.queryProducts(ctx, "list by owner", q, args...)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	q := `
SELECT ` + productColumns + `
FROM products
WHERE id::text = $1
`
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, id).Scan(&p.ID, &p.Name, &p.Image, &p.Price, &p.Origin, &p.Rating, &p.Quantity, &p.Category, &p.CreatedAt, &p.CreatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("product repo: get id=%s not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (name, image, price, origin, rating, quantity, category, created_at, created_by)
VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9)
RETURNING id::text, created_at
`
	res := p
	err := r.pool.QueryRow(ctx, q,
		p.Name,
		p.Image,
		p.Price,
		p.Origin,
		p.Rating,
		p.Quantity,
		p.Category,
		p.CreatedAt,
		p.CreatedBy,
	).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		r.logger.Printf("product repo: create name=%q owner=%s error=%v", p.Name, p.CreatedBy, err)
		return nil, err
	}
	r.logger.Printf("product repo: created id=%s name=%q owner=%s", res.ID, res.Name, res.CreatedBy)
	return &res, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
UPDATE products
SET image = $3, price = $4, origin = $5, rating = $6, quantity = $7, category = NULLIF($8, '')
WHERE name = $1 AND created_by = $2
RETURNING ` + productColumns + `
`
	var res domain.Product
	err := r.pool.QueryRow(ctx, q,
		p.Name,
		p.CreatedBy,
		p.Image,
		p.Price,
		p.Origin,
		p.Rating,
		p.Quantity,
		p.Category,
	).Scan(&res.ID, &res.Name, &res.Image, &res.Price, &res.Origin, &res.Rating, &res.Quantity, &res.Category, &res.CreatedAt, &res.CreatedBy)
	if err == nil {
		r.logger.Printf("product repo: upsert refreshed id=%s name=%q owner=%s", res.ID, res.Name, res.CreatedBy)
		return &res, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		r.logger.Printf("product repo: upsert name=%q owner=%s error=%v", p.Name, p.CreatedBy, err)
		return nil, err
	}
	return r.Create(ctx, p)
}

func (r *postgresRepo) Update(ctx context.Context, id string, in UpdateInput) (*domain.Product, error) {
	set := make([]string, 0, 7)
	args := []interface{}{id}
	add := func(col string, v interface{}) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if in.Name != nil {
		add("name", *in.Name)
	}
	if in.Image != nil {
		add("image", *in.Image)
	}
	if in.Price != nil {
		add("price", *in.Price)
	}
	if in.Origin != nil {
		add("origin", *in.Origin)
	}
	if in.Rating != nil {
		add("rating", *in.Rating)
	}
	if in.Quantity != nil {
		add("quantity", *in.Quantity)
	}
	if in.Category != nil {
		args = append(args, *in.Category)
		set = append(set, fmt.Sprintf("category = NULLIF($%d, '')", len(args)))
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	q := fmt.Sprintf(`
UPDATE products
SET %s
WHERE id::text = $1
RETURNING %s
`, strings.Join(set, ", "), productColumns)

	var p domain.Product
	err := r.pool.QueryRow(ctx, q, args...).Scan(&p.ID, &p.Name, &p.Image, &p.Price, &p.Origin, &p.Rating, &p.Quantity, &p.Category, &p.CreatedAt, &p.CreatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: update id=%s error=%v", id, err)
		return nil, err
	}
	r.logger.Printf("product repo: updated id=%s", id)
	return &p, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM products WHERE id::text = $1`
	ct, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		r.logger.Printf("product repo: delete id=%s error=%v", id, err)
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("product repo: deleted id=%s", id)
	return nil
}

func (r *postgresRepo) DecrementStock(ctx context.Context, id string, amount int64) (bool, error) {
	const q = `
UPDATE products
SET quantity = quantity - $2
WHERE id::text = $1 AND quantity >= $2
`
	ct, err := r.pool.Exec(ctx, q, id, amount)
	if err != nil {
		r.logger.Printf("product repo: decrement id=%s amount=%d error=%v", id, amount, err)
		return false, err
	}
	matched := ct.RowsAffected() > 0
	r.logger.Printf("product repo: decrement id=%s amount=%d matched=%t", id, amount, matched)
	return matched, nil
}

func (r *postgresRepo) queryProducts(ctx context.Context, op, q string, args ...interface{}) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("product repo: %s error=%v", op, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Image, &p.Price, &p.Origin, &p.Rating, &p.Quantity, &p.Category, &p.CreatedAt, &p.CreatedBy); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: %s rows error=%v", op, err)
		return nil, err
	}
	r.logger.Printf("product repo: %s count=%d", op, len(result))
	return result, nil
}
