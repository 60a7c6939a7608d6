// Package docstore is a small adapter over a schemaless document store. Components talk
// to the Store interface with typed Query values; drivers translate those into their
// native form. The mongo driver is used in production and the memory driver in tests
// and local runs.
package docstore

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by FindOne when nothing matches.
	ErrNotFound = errors.New("docstore: document not found")
	// ErrDuplicate is returned by Insert when a unique key already exists.
	ErrDuplicate = errors.New("docstore: duplicate key")
	// ErrInvalidTarget is returned when a result argument has the wrong shape.
	ErrInvalidTarget = errors.New("docstore: result must be a non-nil pointer")
)

// Index describes a single-field index
type Index struct {
	Field  string
	Unique bool
}

// Store is the document store surface used by the repositories.
//
// Documents are plain structs with bson tags; the `_id` field is the primary key.
// A nil *Query matches every document.
type Store interface {
	// Find decodes all matches into results, which must point to a slice.
	Find(ctx context.Context, collection string, q *Query, results interface{}) error
	// FindOne decodes the first match (after sorting) into result or returns ErrNotFound.
	FindOne(ctx context.Context, collection string, q *Query, result interface{}) error
	// Count returns the number of matches, ignoring the query limit.
	Count(ctx context.Context, collection string, q *Query) (int64, error)
	// Insert stores doc, returning ErrDuplicate on a unique-key violation.
	Insert(ctx context.Context, collection string, doc interface{}) error
	// DeleteOne deletes at most one match and returns how many were deleted.
	DeleteOne(ctx context.Context, collection string, q *Query) (int64, error)
	// EnsureIndex creates the index if it does not exist yet.
	EnsureIndex(ctx context.Context, collection string, idx Index) error
	// Ping checks connectivity.
	Ping(ctx context.Context) error
	// Close releases the connection.
	Close(ctx context.Context) error
}
