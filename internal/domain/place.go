// Package domain contains the core data types for the trip planner.
// This package has zero external dependencies and is imported by every other
// internal package (planner, repo, service, handler).
package domain

// Place is a candidate point of interest offered during curation.
// Places are immutable catalog entries; their order within a city is the
// order in which the curation stream presents them.
type Place struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Kind        string   `json:"kind"`     // e.g. "Tarihi Mekan"
	Category    string   `json:"category"` // e.g. "Tarihi Mekanlar"
	Rating      float64  `json:"rating"`
	Duration    string   `json:"duration"` // free-form estimate, e.g. "1-2 saat"
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	Tags        []string `json:"tags,omitempty"`
}
