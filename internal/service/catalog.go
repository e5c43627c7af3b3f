package service

import (
	"context"
	"fmt"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// CatalogService exposes the wizard's closed choice sets.
type CatalogService struct {
	repo repo.CatalogRepo
}

// NewCatalogService constructs a CatalogService backed by the provided CatalogRepo.
func NewCatalogService(r repo.CatalogRepo) *CatalogService {
	return &CatalogService{repo: r}
}

// Catalog returns the full catalog.
func (s *CatalogService) Catalog(ctx context.Context) (*domain.Catalog, error) {
	c, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.CatalogService.Catalog: %w", err)
	}
	return c, nil
}

// Places returns one page of the candidate places for city and the total
// number of candidates. Returns domain.ErrNotFound for an unknown city.
func (s *CatalogService) Places(ctx context.Context, city string, p domain.PaginationParams) ([]domain.Place, int, error) {
	c, err := s.repo.Load(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("service.CatalogService.Places: %w", err)
	}
	if _, ok := c.CountryOf(city); !ok {
		return nil, 0, fmt.Errorf("service.CatalogService.Places: city %q: %w", city, domain.ErrNotFound)
	}

	all := c.Places(city)
	start, end := p.Bounds(len(all))
	return all[start:end], len(all), nil
}
