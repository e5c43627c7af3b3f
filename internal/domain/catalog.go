package domain

import (
	"fmt"
	"strings"
)

// Country is a selectable destination country and its closed set of cities.
type Country struct {
	Name   string
	Cities []string
}

// TripType is one interest tag the traveller can toggle (food, culture, ...).
// ID is the stable identifier; Title and Emoji are display data.
type TripType struct {
	ID    string
	Title string
	Emoji string
}

// CatalogInput is the raw material for NewCatalog. Places is keyed by city name.
type CatalogInput struct {
	Countries   []Country
	BudgetBands []string
	TripTypes   []TripType
	Places      map[string][]Place
}

// Catalog is the closed set of choices the planning wizard offers.
// It is built once by NewCatalog, which rejects unknown or duplicate keys, so
// lookups on a Catalog never need to guard against a malformed mapping.
// A Catalog is read-only after construction and safe for concurrent use.
type Catalog struct {
	countries   []Country
	cities      map[string]map[string]bool
	owner       map[string]string // city -> country
	budgetBands []string
	budgetSet   map[string]bool
	tripTypes   []TripType
	tripTypeSet map[string]TripType
	places      map[string][]Place
}

// NewCatalog validates in and returns the resulting Catalog.
// Names are keys and are matched exactly, so they are never trimmed.
// Returns an error wrapping ErrValidation when:
//   - a country, city, budget band or trip type id is blank, padded with
//     whitespace, or duplicated;
//   - a country has no cities;
//   - a city is listed under two countries;
//   - places are listed for a city no country owns.
func NewCatalog(in CatalogInput) (*Catalog, error) {
	c := &Catalog{
		cities:      make(map[string]map[string]bool, len(in.Countries)),
		owner:       make(map[string]string),
		budgetSet:   make(map[string]bool, len(in.BudgetBands)),
		tripTypeSet: make(map[string]TripType, len(in.TripTypes)),
		places:      make(map[string][]Place, len(in.Places)),
	}

	for _, country := range in.Countries {
		name := country.Name
		if err := checkKey("country", name); err != nil {
			return nil, err
		}
		if _, dup := c.cities[name]; dup {
			return nil, fmt.Errorf("%w: duplicate country %q", ErrValidation, name)
		}
		if len(country.Cities) == 0 {
			return nil, fmt.Errorf("%w: country %q has no cities", ErrValidation, name)
		}
		set := make(map[string]bool, len(country.Cities))
		for _, city := range country.Cities {
			if err := checkKey("city", city); err != nil {
				return nil, fmt.Errorf("%w (in %q)", err, name)
			}
			if set[city] {
				return nil, fmt.Errorf("%w: duplicate city %q in %q", ErrValidation, city, name)
			}
			if other, taken := c.owner[city]; taken {
				return nil, fmt.Errorf("%w: city %q listed under both %q and %q", ErrValidation, city, other, name)
			}
			set[city] = true
			c.owner[city] = name
		}
		c.cities[name] = set
		c.countries = append(c.countries, Country{Name: name, Cities: append([]string(nil), country.Cities...)})
	}

	for _, band := range in.BudgetBands {
		if err := checkKey("budget band", band); err != nil {
			return nil, err
		}
		if c.budgetSet[band] {
			return nil, fmt.Errorf("%w: duplicate budget band %q", ErrValidation, band)
		}
		c.budgetSet[band] = true
		c.budgetBands = append(c.budgetBands, band)
	}

	for _, tt := range in.TripTypes {
		if err := checkKey("trip type id", tt.ID); err != nil {
			return nil, err
		}
		if _, dup := c.tripTypeSet[tt.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate trip type %q", ErrValidation, tt.ID)
		}
		c.tripTypeSet[tt.ID] = tt
		c.tripTypes = append(c.tripTypes, tt)
	}

	for city, places := range in.Places {
		if _, ok := c.owner[city]; !ok {
			return nil, fmt.Errorf("%w: places listed for unknown city %q", ErrValidation, city)
		}
		c.places[city] = append([]Place(nil), places...)
	}

	return c, nil
}

// checkKey rejects catalog keys that are blank or carry surrounding whitespace.
func checkKey(kind, key string) error {
	switch {
	case strings.TrimSpace(key) == "":
		return fmt.Errorf("%w: %s is required", ErrValidation, kind)
	case strings.TrimSpace(key) != key:
		return fmt.Errorf("%w: %s %q has surrounding whitespace", ErrValidation, kind, key)
	}
	return nil
}

// Countries returns the countries in catalog order.
func (c *Catalog) Countries() []Country {
	out := make([]Country, len(c.countries))
	for i, country := range c.countries {
		out[i] = Country{Name: country.Name, Cities: append([]string(nil), country.Cities...)}
	}
	return out
}

// HasCountry reports whether name is a known country.
func (c *Catalog) HasCountry(name string) bool {
	_, ok := c.cities[name]
	return ok
}

// HasCity reports whether city belongs to country.
func (c *Catalog) HasCity(country, city string) bool {
	return c.cities[country][city]
}

// BudgetBands returns the budget bands in catalog order.
func (c *Catalog) BudgetBands() []string {
	return append([]string(nil), c.budgetBands...)
}

// CountryOf returns the country that owns city.
func (c *Catalog) CountryOf(city string) (string, bool) {
	country, ok := c.owner[city]
	return country, ok
}

// HasBudgetBand reports whether band is a known budget band.
func (c *Catalog) HasBudgetBand(band string) bool {
	return c.budgetSet[band]
}

// TripTypes returns the trip types in catalog order.
func (c *Catalog) TripTypes() []TripType {
	return append([]TripType(nil), c.tripTypes...)
}

// TripType looks up a trip type by id.
func (c *Catalog) TripType(id string) (TripType, bool) {
	tt, ok := c.tripTypeSet[id]
	return tt, ok
}

// Places returns the ordered candidate places for city.
// Cities without candidates yield an empty, non-nil slice.
func (c *Catalog) Places(city string) []Place {
	out := make([]Place, len(c.places[city]))
	copy(out, c.places[city])
	return out
}
