package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/handler"
	"github.com/pkordes/trip-planner/backend/internal/repo"
	"github.com/pkordes/trip-planner/backend/internal/service"
)

// mockCatalogServicer is a test double for handler.CatalogServicer.
type mockCatalogServicer struct {
	catalog func(ctx context.Context) (*domain.Catalog, error)
	places  func(ctx context.Context, city string, p domain.PaginationParams) ([]domain.Place, int, error)
}

func (m *mockCatalogServicer) Catalog(ctx context.Context) (*domain.Catalog, error) {
	return m.catalog(ctx)
}
func (m *mockCatalogServicer) Places(ctx context.Context, city string, p domain.PaginationParams) ([]domain.Place, int, error) {
	return m.places(ctx, city, p)
}

// compile-time check: mockCatalogServicer must satisfy handler.CatalogServicer.
var _ handler.CatalogServicer = (*mockCatalogServicer)(nil)

func newCatalogHTTPHandler(svc handler.CatalogServicer) http.Handler {
	return handler.NewServer(nil, svc, nil, nil).Routes()
}

func TestGetCatalog(t *testing.T) {
	c, err := domain.NewCatalog(domain.CatalogInput{
		Countries:   []domain.Country{{Name: "Fransa", Cities: []string{"Paris", "Nice"}}},
		BudgetBands: []string{"₺10,000+"},
		TripTypes:   []domain.TripType{{ID: "food", Title: "Yeme İçme", Emoji: "🍽️"}},
	})
	require.NoError(t, err)
	h := newCatalogHTTPHandler(&mockCatalogServicer{
		catalog: func(context.Context) (*domain.Catalog, error) { return c, nil },
	})

	rec := do(h, http.MethodGet, "/catalog", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var got handler.Catalog
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got.Countries, 1)
	assert.Equal(t, []string{"Paris", "Nice"}, got.Countries[0].Cities)
	assert.Equal(t, []string{"₺10,000+"}, got.BudgetBands)
	assert.Equal(t, "food", got.TripTypes[0].ID)
}

func TestListPlaces_Paginated(t *testing.T) {
	var gotCity string
	var gotParams domain.PaginationParams
	h := newCatalogHTTPHandler(&mockCatalogServicer{
		places: func(_ context.Context, city string, p domain.PaginationParams) ([]domain.Place, int, error) {
			gotCity, gotParams = city, p
			return []domain.Place{placeFixture(3, "İstiklal Caddesi")}, 5, nil
		},
	})

	rec := do(h, http.MethodGet, "/catalog/places?city=%C4%B0stanbul&page=3&limit=2", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "İstanbul", gotCity)
	assert.Equal(t, domain.PaginationParams{Page: 3, Limit: 2}, gotParams)

	var got handler.PlaceList
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Len(t, got.Data, 1)
	assert.Equal(t, handler.Pagination{Page: 3, Limit: 2, Total: 5}, got.Pagination)
}

func TestListPlaces_MissingCity_Returns422(t *testing.T) {
	h := newCatalogHTTPHandler(&mockCatalogServicer{})

	rec := do(h, http.MethodGet, "/catalog/places", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestListPlaces_BadLimit_Returns422(t *testing.T) {
	h := newCatalogHTTPHandler(&mockCatalogServicer{})

	rec := do(h, http.MethodGet, "/catalog/places?city=Paris&limit=lots", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestListPlaces_UnknownCity_Returns404(t *testing.T) {
	h := newCatalogHTTPHandler(&mockCatalogServicer{
		places: func(context.Context, string, domain.PaginationParams) ([]domain.Place, int, error) {
			return nil, 0, fmt.Errorf("city %q: %w", "Atlantis", domain.ErrNotFound)
		},
	})

	rec := do(h, http.MethodGet, "/catalog/places?city=Atlantis", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "city not found", decodeError(t, rec).Message)
}

func TestListPlaces_HugePage_ReturnsEmptyPage(t *testing.T) {
	h := newCatalogHTTPHandler(service.NewCatalogService(repo.NewBuiltinCatalogRepo()))

	rec := do(h, http.MethodGet, "/catalog/places?city=%C4%B0stanbul&page=100000000000000000&limit=100", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var got handler.PlaceList
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.NotNil(t, got.Data)
	assert.Empty(t, got.Data)
	assert.Equal(t, handler.Pagination{Page: 100000000000000000, Limit: 100, Total: 5}, got.Pagination)
}
