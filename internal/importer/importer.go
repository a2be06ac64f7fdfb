package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"importexport-hub/internal/domain"
)

// ProductWriter persists catalog rows parsed from the CSV. Upsert keys on
// (name, createdBy) so re-running the importer refreshes listings instead
// of duplicating them.
type ProductWriter interface {
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}

// CSVImporter bulk-loads export listings from a CSV catalog file with a
// header row of: name, image, price, origin, rating, quantity, category,
// createdBy.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
	now         func() time.Time
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
		now:         time.Now,
	}
}

// Run parses CSV rows and upserts a product per valid row. It stops on the
// first malformed row and reports how many products were written.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	imported := 0
	line := 1
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line++

		product, ok, err := i.parseRow(record, index)
		if err != nil {
			return imported, fmt.Errorf("row %d: %w", line, err)
		}
		if !ok {
			continue
		}

		if _, err := i.productRepo.Upsert(ctx, product); err != nil {
			return imported, fmt.Errorf("row %d: upsert %q: %w", line, product.Name, err)
		}
		imported++
	}

	return imported, nil
}

func (i *CSVImporter) parseRow(record []string, index map[string]int) (domain.Product, bool, error) {
	get := func(col string) string {
		idx, ok := index[col]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	name := get("name")
	if name == "" {
		return domain.Product{}, false, nil
	}
	owner := get("createdby")
	if owner == "" {
		return domain.Product{}, false, fmt.Errorf("missing createdBy for %q", name)
	}

	price, err := strconv.ParseFloat(get("price"), 64)
	if err != nil || price < 0 {
		return domain.Product{}, false, fmt.Errorf("invalid price %q", get("price"))
	}
	quantity, err := strconv.ParseInt(get("quantity"), 10, 64)
	if err != nil || quantity < 0 {
		return domain.Product{}, false, fmt.Errorf("invalid quantity %q", get("quantity"))
	}

	rating := 0.0
	if v := get("rating"); v != "" {
		rating, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return domain.Product{}, false, fmt.Errorf("invalid rating %q", v)
		}
	}

	return domain.Product{
		Name:      name,
		Image:     get("image"),
		Price:     price,
		Origin:    get("origin"),
		Rating:    rating,
		Quantity:  quantity,
		Category:  get("category"),
		CreatedAt: i.now().UTC(),
		CreatedBy: owner,
	}, true, nil
}

func headerIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return index
}
