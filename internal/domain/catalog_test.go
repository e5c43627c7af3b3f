package domain_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

func validInput() domain.CatalogInput {
	return domain.CatalogInput{
		Countries: []domain.Country{
			{Name: "Türkiye", Cities: []string{"İstanbul", "Antalya"}},
			{Name: "Fransa", Cities: []string{"Paris"}},
		},
		BudgetBands: []string{"₺1,000 - ₺2,500", "₺10,000+"},
		TripTypes: []domain.TripType{
			{ID: "food", Title: "Yeme İçme", Emoji: "🍽️"},
			{ID: "culture", Title: "Kültürel", Emoji: "🏛️"},
		},
		Places: map[string][]domain.Place{
			"İstanbul": {{ID: 1, Name: "Galata Kulesi"}, {ID: 2, Name: "Karaköy Lokantası"}},
		},
	}
}

func TestNewCatalog_Valid(t *testing.T) {
	c, err := domain.NewCatalog(validInput())
	require.NoError(t, err)

	assert.True(t, c.HasCountry("Türkiye"))
	assert.False(t, c.HasCountry("Almanya"))
	assert.True(t, c.HasCity("Türkiye", "İstanbul"))
	assert.False(t, c.HasCity("Fransa", "İstanbul"), "city must belong to the given country")
	assert.True(t, c.HasBudgetBand("₺10,000+"))

	tt, ok := c.TripType("culture")
	require.True(t, ok)
	assert.Equal(t, "Kültürel", tt.Title)

	places := c.Places("İstanbul")
	require.Len(t, places, 2)
	assert.Equal(t, "Galata Kulesi", places[0].Name)
	assert.Equal(t, "Karaköy Lokantası", places[1].Name)
}

// TestNewCatalog_LookupsAreExact verifies that lookups do not trim: the
// stored keys carry no padding, so padded input never matches.
func TestNewCatalog_LookupsAreExact(t *testing.T) {
	c, err := domain.NewCatalog(validInput())
	require.NoError(t, err)

	assert.False(t, c.HasCountry(" Türkiye"))
	assert.False(t, c.HasCity("Türkiye", "İstanbul "))
	_, ok := c.CountryOf(" İstanbul")
	assert.False(t, ok)
}

func TestNewCatalog_PlacesForCityWithoutCandidates(t *testing.T) {
	c, err := domain.NewCatalog(validInput())
	require.NoError(t, err)

	places := c.Places("Paris")
	assert.NotNil(t, places)
	assert.Empty(t, places)
}

func TestNewCatalog_ReturnsCopies(t *testing.T) {
	c, err := domain.NewCatalog(validInput())
	require.NoError(t, err)

	countries := c.Countries()
	countries[0].Cities[0] = "mutated"
	places := c.Places("İstanbul")
	places[0].Name = "mutated"

	assert.Equal(t, "İstanbul", c.Countries()[0].Cities[0])
	assert.Equal(t, "Galata Kulesi", c.Places("İstanbul")[0].Name)
}

func TestNewCatalog_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *domain.CatalogInput)
	}{
		{"blank country", func(in *domain.CatalogInput) { in.Countries[0].Name = "  " }},
		{"duplicate country", func(in *domain.CatalogInput) { in.Countries[1].Name = "Türkiye" }},
		{"country without cities", func(in *domain.CatalogInput) { in.Countries[1].Cities = nil }},
		{"duplicate city", func(in *domain.CatalogInput) { in.Countries[0].Cities = []string{"İzmir", "İzmir"} }},
		{"blank budget band", func(in *domain.CatalogInput) { in.BudgetBands = append(in.BudgetBands, "") }},
		{"duplicate budget band", func(in *domain.CatalogInput) { in.BudgetBands = append(in.BudgetBands, "₺10,000+") }},
		{"blank trip type id", func(in *domain.CatalogInput) { in.TripTypes[0].ID = "" }},
		{"duplicate trip type", func(in *domain.CatalogInput) { in.TripTypes[1].ID = "food" }},
		{"padded country", func(in *domain.CatalogInput) { in.Countries[1].Name = " Fransa" }},
		{"padded city", func(in *domain.CatalogInput) { in.Countries[0].Cities = []string{"İstanbul", "Antalya "} }},
		{"padded budget band", func(in *domain.CatalogInput) { in.BudgetBands = append(in.BudgetBands, "₺1,000 - ₺2,500 ") }},
		{"padded trip type id", func(in *domain.CatalogInput) { in.TripTypes[0].ID = "food\t" }},
		{"places for unknown city", func(in *domain.CatalogInput) { in.Places["Berlin"] = []domain.Place{{ID: 9}} }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)

			_, err := domain.NewCatalog(in)

			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestPaginationParams_Bounds(t *testing.T) {
	two := 2
	lim := 2
	p := domain.NewPaginationParams(&two, &lim)

	start, end := p.Bounds(5)
	assert.Equal(t, 2, start)
	assert.Equal(t, 4, end)

	start, end = p.Bounds(3)
	assert.Equal(t, 2, start)
	assert.Equal(t, 3, end)

	start, end = p.Bounds(1)
	assert.Equal(t, 1, start)
	assert.Equal(t, 1, end)
}

func TestPaginationParams_BoundsHugePage(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		limit int
	}{
		{name: "page times limit overflows", page: 100000000000000000, limit: 100},
		{name: "max page", page: math.MaxInt, limit: 1},
		{name: "max page max limit", page: math.MaxInt, limit: domain.MaxPageLimit},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := domain.NewPaginationParams(&tc.page, &tc.limit)

			assert.Positive(t, p.Offset())
			start, end := p.Bounds(5)
			assert.Equal(t, 5, start)
			assert.Equal(t, 5, end)
		})
	}
}

func TestPaginationParams_OffsetSaturates(t *testing.T) {
	p := domain.PaginationParams{Page: 100000000000000000, Limit: 100}
	assert.Equal(t, math.MaxInt, p.Offset())
}

func TestPaginationParams_BoundsEmptyList(t *testing.T) {
	start, end := domain.PaginationParams{Page: 3, Limit: 20}.Bounds(0)
	assert.Zero(t, start)
	assert.Zero(t, end)
}

func TestNewPaginationParams_Defaults(t *testing.T) {
	big := 500
	p := domain.NewPaginationParams(nil, &big)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, domain.MaxPageLimit, p.Limit)

	p = domain.NewPaginationParams(nil, nil)
	assert.Equal(t, domain.DefaultPageLimit, p.Limit)
	assert.Equal(t, 0, p.Offset())
}
