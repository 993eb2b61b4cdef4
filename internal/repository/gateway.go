// internal/repository/gateway.go
package repository

import (
	"context"

	"fillrate/internal/domain"
)

// ReportGateway is the boundary to the remote persistent store holding report
// items. Insert and Update return the canonical row as stored (including the
// server-assigned id); callers must only mutate their caches with that row.
type ReportGateway interface {
	SelectAll(ctx context.Context) ([]domain.ReportItem, error)
	SelectByStoreAndWindow(ctx context.Context, store string, window domain.WeekWindow) ([]domain.ReportItem, error)
	Insert(ctx context.Context, item domain.ReportItem) (domain.ReportItem, error)
	Update(ctx context.Context, item domain.ReportItem) (domain.ReportItem, error)
	DeleteByID(ctx context.Context, id int64) error
	DeleteByStoreAndWindow(ctx context.Context, store string, window domain.WeekWindow) (int64, error)
	DeleteByWindow(ctx context.Context, window domain.WeekWindow) (int64, error)
}

// CatalogGateway exposes the read-only SKU reference list in its source order.
type CatalogGateway interface {
	List(ctx context.Context) ([]domain.CatalogEntry, error)
}
