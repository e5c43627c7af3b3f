// Package repo contains all data access for the trip planner.
// The catalog (countries, cities, budget bands, trip types, candidate places)
// comes either from Postgres or from the built-in data set; planning sessions
// live in memory only. No business logic lives here.
package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CatalogRepo loads the closed set of choices the planning wizard offers.
// The service layer depends on this interface, not on a concrete source.
type CatalogRepo interface {
	// Load returns a validated catalog. Implementations return an error
	// wrapping domain.ErrValidation when the stored data is inconsistent.
	Load(ctx context.Context) (*domain.Catalog, error)
}

// pgCatalogRepo is the Postgres implementation of CatalogRepo.
type pgCatalogRepo struct {
	db db
}

// NewCatalogRepo constructs a CatalogRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewCatalogRepo(db db) CatalogRepo {
	return &pgCatalogRepo{db: db}
}

// Load reads every catalog table and assembles a domain.Catalog.
func (r *pgCatalogRepo) Load(ctx context.Context) (*domain.Catalog, error) {
	var (
		in  domain.CatalogInput
		err error
	)

	if in.Countries, err = r.countries(ctx); err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.Load: %w", err)
	}
	if in.BudgetBands, err = r.budgetBands(ctx); err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.Load: %w", err)
	}
	if in.TripTypes, err = r.tripTypes(ctx); err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.Load: %w", err)
	}
	if in.Places, err = r.places(ctx); err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.Load: %w", err)
	}

	catalog, err := domain.NewCatalog(in)
	if err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.Load: %w", err)
	}
	return catalog, nil
}

// countries returns every country with its cities, both in display order.
func (r *pgCatalogRepo) countries(ctx context.Context) ([]domain.Country, error) {
	const q = `
		SELECT co.name, ci.name
		FROM countries co
		JOIN cities ci ON ci.country_id = co.id
		ORDER BY co.position, co.name, ci.position, ci.name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("countries: %w", err)
	}
	defer rows.Close()

	var out []domain.Country
	for rows.Next() {
		var country, city string
		if err := rows.Scan(&country, &city); err != nil {
			return nil, fmt.Errorf("countries: scan: %w", err)
		}
		if n := len(out); n == 0 || out[n-1].Name != country {
			out = append(out, domain.Country{Name: country})
		}
		last := &out[len(out)-1]
		last.Cities = append(last.Cities, city)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("countries: rows: %w", err)
	}
	return out, nil
}

// budgetBands returns the budget band labels in display order.
func (r *pgCatalogRepo) budgetBands(ctx context.Context) ([]string, error) {
	const q = `SELECT label FROM budget_bands ORDER BY position, label`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("budget bands: %w", err)
	}
	bands, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("budget bands: scan: %w", err)
	}
	return bands, nil
}

// tripTypes returns the trip types in display order.
func (r *pgCatalogRepo) tripTypes(ctx context.Context) ([]domain.TripType, error) {
	const q = `SELECT id, title, emoji FROM trip_types ORDER BY position, id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("trip types: %w", err)
	}
	defer rows.Close()

	var out []domain.TripType
	for rows.Next() {
		var tt domain.TripType
		if err := rows.Scan(&tt.ID, &tt.Title, &tt.Emoji); err != nil {
			return nil, fmt.Errorf("trip types: scan: %w", err)
		}
		out = append(out, tt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("trip types: rows: %w", err)
	}
	return out, nil
}

// places returns candidate places keyed by city name, each list in curation order.
// Tags are aggregated from place_tags so one row maps to one place.
func (r *pgCatalogRepo) places(ctx context.Context) (map[string][]domain.Place, error) {
	const q = `
		SELECT ci.name, p.id, p.name, p.kind, p.category, p.rating, p.duration,
		       p.description, p.image_url,
		       COALESCE(array_agg(pt.trip_type_id ORDER BY pt.trip_type_id)
		                FILTER (WHERE pt.trip_type_id IS NOT NULL), '{}') AS tags
		FROM places p
		JOIN cities ci ON ci.id = p.city_id
		LEFT JOIN place_tags pt ON pt.place_id = p.id
		GROUP BY ci.name, p.id
		ORDER BY ci.name, p.position, p.id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("places: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.Place)
	for rows.Next() {
		var (
			city string
			p    domain.Place
		)
		err := rows.Scan(&city, &p.ID, &p.Name, &p.Kind, &p.Category, &p.Rating,
			&p.Duration, &p.Description, &p.ImageURL, &p.Tags)
		if err != nil {
			return nil, fmt.Errorf("places: scan: %w", err)
		}
		out[city] = append(out[city], p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("places: rows: %w", err)
	}
	return out, nil
}
