// Package store is the data-access layer. All operations are
// single-statement request/response calls; upsert correctness relies on the
// database's native conflict resolution, which is safe under concurrent
// writers for the same key.
package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/filmfriend/filmfriend/internal/cache"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEntry is returned when a uniqueness constraint is violated.
	ErrDuplicateEntry = errors.New("duplicate entry")
	// ErrNoFields is returned when a partial update supplies no fields.
	ErrNoFields = errors.New("no fields to update")
	// ErrNotOwner is returned when a caller mutates a list they do not own.
	ErrNotOwner = errors.New("not the owner of this resource")
)

// Store bundles the database handle with the fail-open cache in front of
// the read paths.
type Store struct {
	db    *gorm.DB
	cache *cache.Cache
}

// New creates a Store. The cache may be disabled; it is never required for
// correctness.
func New(db *gorm.DB, c *cache.Cache) *Store {
	return &Store{db: db, cache: c}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
