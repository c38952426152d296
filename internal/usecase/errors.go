package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// Ingestion failure classes. ErrMapping and ErrStore are per-record
	// failures; callers count them and move on rather than aborting a run.
	ErrProvider = errors.New("provider request failed")
	ErrMapping  = errors.New("provider payload missing required field")
	ErrStore    = errors.New("store operation rejected")
	ErrParse    = errors.New("generated response does not match schema")
)
