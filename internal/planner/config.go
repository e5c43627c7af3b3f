// Package planner holds the trip-planning wizard's state machines: the trip
// configuration, the two-tap date range picker and the place curation stream,
// plus the Session that ties them together.
//
// Every type here is a plain, exclusively owned state object. Transitions run
// synchronously and either fully apply or leave state untouched. Nothing in
// this package locks; callers that share a Session across goroutines must
// serialize access (see repo.SessionRepo).
package planner

import (
	"fmt"
	"slices"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// Configuration is an immutable copy of a TripConfiguration.
type Configuration struct {
	Country    string
	City       string
	DateRange  DateRange
	BudgetBand string
	TripTypes  []string // sorted by id
	Ready      bool
}

// TripConfiguration is the in-progress trip request. Choices are validated
// against the catalog it was created with.
type TripConfiguration struct {
	catalog   *domain.Catalog
	country   string
	city      string
	dates     DateRange
	budget    string
	tripTypes map[string]struct{}
}

// NewTripConfiguration returns an empty configuration backed by catalog.
func NewTripConfiguration(catalog *domain.Catalog) *TripConfiguration {
	return &TripConfiguration{
		catalog:   catalog,
		tripTypes: make(map[string]struct{}),
	}
}

// SelectCountry sets the country and always clears the city, even when
// country is already selected.
func (t *TripConfiguration) SelectCountry(country string) error {
	if !t.catalog.HasCountry(country) {
		return fmt.Errorf("%w: unknown country %q", domain.ErrValidation, country)
	}
	t.country = country
	t.city = ""
	return nil
}

// SelectCity sets the city. It must belong to the selected country.
func (t *TripConfiguration) SelectCity(city string) error {
	if t.country == "" {
		return fmt.Errorf("%w: select a country before a city", domain.ErrValidation)
	}
	if !t.catalog.HasCity(t.country, city) {
		return fmt.Errorf("%w: %q is not a city of %q", domain.ErrValidation, city, t.country)
	}
	t.city = city
	return nil
}

// SetBudgetBand sets the budget band.
func (t *TripConfiguration) SetBudgetBand(band string) error {
	if !t.catalog.HasBudgetBand(band) {
		return fmt.Errorf("%w: unknown budget band %q", domain.ErrValidation, band)
	}
	t.budget = band
	return nil
}

// ToggleTripType adds id to the trip types when absent and removes it when
// present. It reports whether id is selected afterwards.
func (t *TripConfiguration) ToggleTripType(id string) (bool, error) {
	if _, ok := t.catalog.TripType(id); !ok {
		return false, fmt.Errorf("%w: unknown trip type %q", domain.ErrValidation, id)
	}
	if _, on := t.tripTypes[id]; on {
		delete(t.tripTypes, id)
		return false, nil
	}
	t.tripTypes[id] = struct{}{}
	return true, nil
}

// SetDateRange replaces the date range.
func (t *TripConfiguration) SetDateRange(r DateRange) {
	t.dates = r
}

// Ready reports whether the configuration may advance to place curation.
func (t *TripConfiguration) Ready() bool {
	return t.country != "" &&
		t.city != "" &&
		t.budget != "" &&
		t.dates.Days >= 1 &&
		len(t.tripTypes) > 0
}

func (t *TripConfiguration) Country() string      { return t.country }
func (t *TripConfiguration) City() string         { return t.city }
func (t *TripConfiguration) BudgetBand() string   { return t.budget }
func (t *TripConfiguration) DateRange() DateRange { return t.dates }

// TripTypes returns the selected trip type ids sorted by id.
func (t *TripConfiguration) TripTypes() []string {
	ids := make([]string, 0, len(t.tripTypes))
	for id := range t.tripTypes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Snapshot returns an immutable copy of the configuration.
func (t *TripConfiguration) Snapshot() Configuration {
	return Configuration{
		Country:    t.country,
		City:       t.city,
		DateRange:  t.dates,
		BudgetBand: t.budget,
		TripTypes:  t.TripTypes(),
		Ready:      t.Ready(),
	}
}
