package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/repo"
)

func TestBuiltinCatalogRepo_Load(t *testing.T) {
	c, err := repo.NewBuiltinCatalogRepo().Load(context.Background())
	require.NoError(t, err)

	countries := c.Countries()
	require.Len(t, countries, 5)
	assert.Equal(t, "Türkiye", countries[0].Name)
	assert.Equal(t, []string{"İstanbul", "Antalya", "Kapadokya", "İzmir", "Bodrum"}, countries[0].Cities)

	assert.True(t, c.HasCity("Yunanistan", "Santorini"))
	assert.False(t, c.HasCity("Yunanistan", "Paris"))
	assert.Len(t, c.BudgetBands(), 4)
	assert.Len(t, c.TripTypes(), 5)

	places := c.Places("İstanbul")
	require.Len(t, places, 5)
	assert.Equal(t, "Galata Kulesi", places[0].Name)
	assert.Equal(t, "Rooftop Bar", places[4].Name)
}

func TestBuiltinCatalogInput_PlaceTagsAreTripTypes(t *testing.T) {
	in := repo.BuiltinCatalogInput()
	known := map[string]bool{}
	for _, tt := range in.TripTypes {
		known[tt.ID] = true
	}

	for city, places := range in.Places {
		for _, p := range places {
			for _, tag := range p.Tags {
				assert.True(t, known[tag], "%s/%s has unknown tag %q", city, p.Name, tag)
			}
		}
	}
}
