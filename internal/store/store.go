package store

import "github.com/tuxprep/trainer/internal/domain/history"

// Repository persists the history aggregate as a whole. Load never surfaces
// a missing or corrupt document as an error: it recovers into an empty valid
// store and logs, per the application's best-effort persistence model. Save
// failures are returned so callers can report them, but they are never fatal.
type Repository interface {
	Load() (*history.Store, error)
	Save(st *history.Store) error
	Close() error
}
