package ledger

import (
	"context"
	"errors"
	"strings"

	"importexport-hub/internal/domain"
	importrepo "importexport-hub/internal/repository/importrecord"
)

// ErrImporterRequired is returned when a listing request carries no importer.
var ErrImporterRequired = errors.New("importer required")

// Service exposes read and delete access to the import ledger. Entries are
// only ever created by the transfer service; deleting one does not restore
// stock to the source product.
type Service struct {
	repo importrepo.Repository
}

func New(repo importrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListByImporter(ctx context.Context, importer, search string) ([]domain.ImportRecord, error) {
	if strings.TrimSpace(importer) == "" {
		return nil, ErrImporterRequired
	}
	return s.repo.ListByImporter(ctx, importer, search)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
