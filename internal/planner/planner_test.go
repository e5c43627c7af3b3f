package planner_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// ---- helpers ---------------------------------------------------------------

var today = time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)

// day returns the n-th date of a window opened on today.
func day(n int) time.Time {
	return time.Date(2025, 6, 1+n, 0, 0, 0, 0, time.UTC)
}

func istanbulPlaces() []domain.Place {
	return []domain.Place{
		{ID: 1, Name: "Galata Kulesi", Category: "Tarihi Mekanlar", Rating: 4.6},
		{ID: 2, Name: "Karaköy Lokantası", Category: "Restoranlar", Rating: 4.7},
		{ID: 3, Name: "İstiklal Caddesi", Category: "Popüler Sokaklar", Rating: 4.4},
		{ID: 4, Name: "Minimalist Café", Category: "Kafeler", Rating: 4.5},
		{ID: 5, Name: "Rooftop Bar", Category: "Bar & Eğlence", Rating: 4.3},
	}
}

func testCatalog(t *testing.T) *domain.Catalog {
	t.Helper()
	c, err := domain.NewCatalog(domain.CatalogInput{
		Countries: []domain.Country{
			{Name: "Türkiye", Cities: []string{"İstanbul", "Antalya", "Kapadokya"}},
			{Name: "Fransa", Cities: []string{"Paris", "Nice"}},
		},
		BudgetBands: []string{"₺1,000 - ₺2,500", "₺2,500 - ₺5,000"},
		TripTypes: []domain.TripType{
			{ID: "food", Title: "Yeme İçme"},
			{ID: "culture", Title: "Kültürel"},
			{ID: "social", Title: "Sosyal"},
		},
		Places: map[string][]domain.Place{"İstanbul": istanbulPlaces()},
	})
	require.NoError(t, err)
	return c
}
