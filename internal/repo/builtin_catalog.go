package repo

import (
	"context"
	"fmt"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// builtinCatalogRepo serves the catalog the mobile app ships with.
// It is used when no DATABASE_URL is configured.
type builtinCatalogRepo struct{}

// NewBuiltinCatalogRepo constructs a CatalogRepo over the built-in data set.
func NewBuiltinCatalogRepo() CatalogRepo {
	return builtinCatalogRepo{}
}

// Load builds the catalog from BuiltinCatalogInput.
func (builtinCatalogRepo) Load(_ context.Context) (*domain.Catalog, error) {
	c, err := domain.NewCatalog(BuiltinCatalogInput())
	if err != nil {
		return nil, fmt.Errorf("repo.builtinCatalogRepo.Load: %w", err)
	}
	return c, nil
}

const pexels = "https://images.pexels.com/photos/"

// BuiltinCatalogInput returns a fresh copy of the built-in catalog data.
// The Postgres seed migration carries the same rows.
func BuiltinCatalogInput() domain.CatalogInput {
	return domain.CatalogInput{
		Countries: []domain.Country{
			{Name: "Türkiye", Cities: []string{"İstanbul", "Antalya", "Kapadokya", "İzmir", "Bodrum"}},
			{Name: "Fransa", Cities: []string{"Paris", "Nice", "Lyon", "Cannes"}},
			{Name: "İtalya", Cities: []string{"Roma", "Milano", "Venedik", "Floransa"}},
			{Name: "İspanya", Cities: []string{"Barcelona", "Madrid", "Sevilla", "Valencia"}},
			{Name: "Yunanistan", Cities: []string{"Atina", "Santorini", "Mykonos", "Selanik"}},
		},
		BudgetBands: []string{
			"₺1,000 - ₺2,500",
			"₺2,500 - ₺5,000",
			"₺5,000 - ₺10,000",
			"₺10,000+",
		},
		TripTypes: []domain.TripType{
			{ID: "food", Title: "Yeme İçme", Emoji: "🍽️"},
			{ID: "culture", Title: "Kültürel", Emoji: "🏛️"},
			{ID: "social", Title: "Sosyal", Emoji: "🎉"},
			{ID: "city", Title: "Şehir Gezmesi", Emoji: "🏙️"},
			{ID: "general", Title: "Genel", Emoji: "🌍"},
		},
		Places: map[string][]domain.Place{
			"İstanbul": {
				{
					ID: 1, Name: "Galata Kulesi", Kind: "Tarihi Mekan", Category: "Tarihi Mekanlar",
					Rating: 4.6, Duration: "1-2 saat",
					Description: "İstanbul'un panoramik manzarasını görebileceğiniz tarihi kule.",
					ImageURL:    pexels + "1413414/pexels-photo-1413414.jpeg",
					Tags:        []string{"city", "culture"},
				},
				{
					ID: 2, Name: "Karaköy Lokantası", Kind: "Restoran", Category: "Restoranlar",
					Rating: 4.7, Duration: "1-1.5 saat",
					Description: "Modern Osmanlı mutfağının en iyi örneklerinden biri.",
					ImageURL:    pexels + "262978/pexels-photo-262978.jpeg",
					Tags:        []string{"food"},
				},
				{
					ID: 3, Name: "İstiklal Caddesi", Kind: "Popüler Sokak", Category: "Popüler Sokaklar",
					Rating: 4.4, Duration: "2-3 saat",
					Description: "Alışveriş, yeme-içme ve eğlence mekanlarının kalbi.",
					ImageURL:    pexels + "1134166/pexels-photo-1134166.jpeg",
					Tags:        []string{"city", "social"},
				},
				{
					ID: 4, Name: "Minimalist Café", Kind: "Kafe", Category: "Kafeler",
					Rating: 4.5, Duration: "1 saat",
					Description: "Sakin atmosferde kaliteli kahve keyfi.",
					ImageURL:    pexels + "1850595/pexels-photo-1850595.jpeg",
					Tags:        []string{"food"},
				},
				{
					ID: 5, Name: "Rooftop Bar", Kind: "Bar", Category: "Bar & Eğlence",
					Rating: 4.3, Duration: "2-3 saat",
					Description: "Şehir manzaralı çatı barında unutulmaz bir gece.",
					ImageURL:    pexels + "681847/pexels-photo-681847.jpeg",
					Tags:        []string{"social"},
				},
			},
			"Paris": {
				{
					ID: 6, Name: "Eiffel Kulesi", Kind: "Tarihi Mekan", Category: "Tarihi Mekanlar",
					Rating: 4.8, Duration: "2 saat",
					Description: "Paris'in simgesi, şehre tepeden bakan demir kule.",
					ImageURL:    pexels + "338515/pexels-photo-338515.jpeg",
					Tags:        []string{"city", "culture"},
				},
			},
		},
	}
}
