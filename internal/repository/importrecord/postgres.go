package importrecord

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"strings"

	"importexport-hub/internal/domain"

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

func (r *postgresRepo) Insert(ctx context.Context, rec domain.ImportRecord) error {
	snapJSON, err := json.Marshal(rec.Product)
	if err != nil {
		return err
	}

	const q = `
INSERT INTO imports (id, product_id, importer, quantity, product_snapshot, imported_at)
VALUES ($1, $2, $3, $4, $5, $6)
`
	if _, err := r.pool.Exec(ctx, q, rec.ID, rec.ProductID, rec.Importer, rec.Quantity, snapJSON, rec.ImportedAt); err != nil {
		r.logger.Printf("import repo: insert id=%s product_id=%s error=%v", rec.ID, rec.ProductID, err)
		return err
	}
	r.logger.Printf("import repo: inserted id=%s product_id=%s importer=%s quantity=%d", rec.ID, rec.ProductID, rec.Importer, rec.Quantity)
	return nil
}

func (r *postgresRepo) ListByImporter(ctx context.Context, importer, search string) ([]domain.ImportRecord, error) {
	q := `
SELECT id::text, product_id::text, importer, quantity, product_snapshot, imported_at
FROM imports
WHERE importer = $1
ORDER BY imported_at DESC
`
	args := []interface{}{importer}
	if strings.TrimSpace(search) != "" {
		q = `
SELECT id::text, product_id::text, importer, quantity, product_snapshot, imported_at
FROM imports
WHERE importer = $1 AND product_snapshot->>'name' ILIKE '%' || $2 || '%'
ORDER BY imported_at DESC
`
		args = append(args, search)
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("import repo: list importer=%s error=%v", importer, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.ImportRecord
	for rows.Next() {
		var (
			rec      domain.ImportRecord
			snapJSON []byte
		)
		if err := rows.Scan(&rec.ID, &rec.ProductID, &rec.Importer, &rec.Quantity, &snapJSON, &rec.ImportedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(snapJSON, &rec.Product); err != nil {
			r.logger.Printf("import repo: decode snapshot id=%s error=%v", rec.ID, err)
			return nil, err
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("import repo: list rows importer=%s error=%v", importer, err)
		return nil, err
	}
	r.logger.Printf("import repo: list importer=%s count=%d", importer, len(result))
	return result, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM imports WHERE id::text = $1`
	ct, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		r.logger.Printf("import repo: delete id=%s error=%v", id, err)
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("import repo: deleted id=%s", id)
	return nil
}
