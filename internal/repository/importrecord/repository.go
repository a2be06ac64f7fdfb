package importrecord

import (
	"context"

	"importexport-hub/internal/domain"
)

type Repository interface {
	Insert(ctx context.Context, rec domain.ImportRecord) error
	ListByImporter(ctx context.Context, importer, search string) ([]domain.ImportRecord, error)
	Delete(ctx context.Context, id string) error
}
