package domain

// ExportRow is a single row in the export of a finished planning session.
// It is a flat, denormalized view: one row per liked place, with the trip
// configuration repeated on every row. A session whose traveller liked no
// places yields one row with zero values for all place fields.
//
// TripTypes is sorted by id. Callers that need a joined string (e.g. CSV)
// should join with "|".
type ExportRow struct {
	// Trip fields, repeated for every liked place.
	SessionID  string
	Country    string
	City       string
	StartDate  string // "2006-01-02" formatted date
	EndDate    string // "2006-01-02" formatted date
	Days       int
	BudgetBand string
	TripTypes  []string

	// Place fields, zero values when nothing was liked.
	Position      int // 1-based order in the liked set
	PlaceID       int64
	PlaceName     string
	PlaceCategory string
	PlaceRating   float64
	PlaceDuration string
}
