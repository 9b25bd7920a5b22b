// package models defines the data model for the jukebox test fixtures
package models

import "context"

// Document is implemented by every fixture inserted into a collection.
type Document interface {
	DocumentID() string // DocumentID returns the value stored in _id
	Validate() error    // Validate checks the document is well formed before it is written
}

// Repository defines the document store operations used for fixtures.
type Repository[T Document] interface {
	Insert(ctx context.Context, doc T) error                 // Insert writes doc; it fails if _id is taken
	Get(ctx context.Context, id string) (T, error)           // Get reads the document with the given _id
	CountByID(ctx context.Context, id string) (int64, error) // CountByID counts documents with the given _id
}
