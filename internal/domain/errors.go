package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource (a session, a city in the catalog) does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input is not one of the legal choices the
// catalog offers (unknown country, city outside the selected country, a date
// outside the calendar window).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when an operation is not legal in the current phase
// of a planning session, e.g. starting curation before the configuration is
// ready or deciding on a finished curation stream.
// Handlers should map this to HTTP 409 Conflict.
var ErrConflict = errors.New("conflict")
