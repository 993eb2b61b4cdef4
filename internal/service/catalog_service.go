// internal/service/catalog_service.go
package service

import (
	"context"

	"fillrate/internal/domain"
	"fillrate/internal/repository"
)

// CatalogService exposes the read-only SKU reference list.
type CatalogService struct {
	catalog repository.CatalogGateway
}

func NewCatalogService(catalog repository.CatalogGateway) *CatalogService {
	return &CatalogService{catalog: catalog}
}

func (s *CatalogService) List(ctx context.Context) ([]domain.CatalogEntry, error) {
	return s.catalog.List(ctx)
}
