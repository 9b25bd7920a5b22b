package repositories

import (
	"context"
	"fmt"

	"github.com/desertthunder/jukeseed/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// DocumentRepository implements [models.Repository] over one collection.
type DocumentRepository[T models.Document] struct {
	coll   *mongo.Collection
	newDoc func() T
}

var (
	_ models.Repository[*models.User]    = (*DocumentRepository[*models.User])(nil)
	_ models.Repository[*models.Session] = (*DocumentRepository[*models.Session])(nil)
)

// NewDocumentRepository creates a repository for the named collection. newDoc allocates the value Get decodes into.
func NewDocumentRepository[T models.Document](db *mongo.Database, collection string, newDoc func() T) *DocumentRepository[T] {
	return &DocumentRepository[T]{coll: db.Collection(collection), newDoc: newDoc}
}

// NewUserRepository creates a [DocumentRepository] for [models.User] documents.
func NewUserRepository(db *mongo.Database, collection string) *DocumentRepository[*models.User] {
	return NewDocumentRepository(db, collection, func() *models.User { return &models.User{} })
}

// NewSessionRepository creates a [DocumentRepository] for [models.Session] documents.
func NewSessionRepository(db *mongo.Database, collection string) *DocumentRepository[*models.Session] {
	return NewDocumentRepository(db, collection, func() *models.Session { return &models.Session{} })
}

// Collection returns the name of the backing collection.
func (r *DocumentRepository[T]) Collection() string {
	return r.coll.Name()
}

// Insert validates and inserts doc. A taken _id yields [shared.ErrAlreadyExists].
func (r *DocumentRepository[T]) Insert(ctx context.Context, doc T) error {
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return Classify(fmt.Sprintf("insert %s %q", r.coll.Name(), doc.DocumentID()), err)
	}
	return nil
}

// Get retrieves the document with the given _id.
func (r *DocumentRepository[T]) Get(ctx context.Context, id string) (T, error) {
	doc := r.newDoc()
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(doc); err != nil {
		var zero T
		return zero, Classify(fmt.Sprintf("get %s %q", r.coll.Name(), id), err)
	}
	return doc, nil
}

// CountByID counts documents whose _id equals id.
func (r *DocumentRepository[T]) CountByID(ctx context.Context, id string) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return 0, Classify(fmt.Sprintf("count %s %q", r.coll.Name(), id), err)
	}
	return n, nil
}
