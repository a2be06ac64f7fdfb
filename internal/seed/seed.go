package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	Name      string
	Image     string
	Price     float64
	Origin    string
	Rating    float64
	Quantity  int64
	Category  string
	CreatedBy string
}

type userSeed struct {
	Email string
	Name  string
}

// Apply inserts basic seed data for manual testing. Products are keyed by
// (owner, name) so repeated runs do not duplicate rows.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	users := []userSeed{
		{Email: "exporter@demo.test", Name: "Demo Exporter"},
		{Email: "importer@demo.test", Name: "Demo Importer"},
	}
	for _, u := range users {
		if err := ensureUser(ctx, pool, u); err != nil {
			return fmt.Errorf("ensure user %s: %w", u.Email, err)
		}
	}

	products := []productSeed{
		{
			Name:      "Basmati Rice 25kg",
			Image:     "https://images.demo.test/rice.jpg",
			Price:     38.5,
			Origin:    "India",
			Rating:    4.7,
			Quantity:  120,
			Category:  "grains",
			CreatedBy: "exporter@demo.test",
		},
		{
			Name:      "Arabica Coffee Beans 10kg",
			Image:     "https://images.demo.test/coffee.jpg",
			Price:     95.0,
			Origin:    "Ethiopia",
			Rating:    4.9,
			Quantity:  40,
			Category:  "beverages",
			CreatedBy: "exporter@demo.test",
		},
		{
			Name:      "Olive Oil 5L",
			Image:     "https://images.demo.test/olive-oil.jpg",
			Price:     54.25,
			Origin:    "Spain",
			Rating:    4.5,
			Quantity:  75,
			Category:  "oils",
			CreatedBy: "exporter@demo.test",
		},
	}
	for _, p := range products {
		if err := ensureProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("ensure product %q: %w", p.Name, err)
		}
	}

	return nil
}

func ensureUser(ctx context.Context, pool *pgxpool.Pool, u userSeed) error {
	const q = `
INSERT INTO users (email, name)
VALUES ($1, $2)
ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
`
	_, err := pool.Exec(ctx, q, u.Email, u.Name)
	return err
}

func ensureProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (name, image, price, origin, rating, quantity, category, created_at, created_by)
SELECT $1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9
WHERE NOT EXISTS (
    SELECT 1 FROM products WHERE name = $1 AND created_by = $9
)
`
	_, err := pool.Exec(ctx, q, p.Name, p.Image, p.Price, p.Origin, p.Rating, p.Quantity, p.Category, time.Now().UTC(), p.CreatedBy)
	return err
}
