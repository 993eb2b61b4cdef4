// internal/repository/postgres/catalog_repository.go
package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"fillrate/internal/domain"
)

type catalogRepository struct {
	db *DB
}

// NewCatalogRepository builds the read-only SKU catalog gateway.
func NewCatalogRepository(db *DB) *catalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) List(ctx context.Context) ([]domain.CatalogEntry, error) {
	release, err := r.db.acquire(ctx)
	if err != nil {
		return nil, mapError("list catalog", err, domain.ReportItem{})
	}
	defer release()

	query := `
		SELECT sku, description, um, COALESCE(price, 0) AS price, type
		FROM catalog_items
		ORDER BY sku
	`

	var entries []domain.CatalogEntry
	if err := sqlx.SelectContext(ctx, r.db, &entries, query); err != nil {
		return nil, mapError("list catalog", err, domain.ReportItem{})
	}

	return entries, nil
}
