package book

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"library-backend/internal/shared/query"
)

type Service interface {
	// Create persists the book iff its authorId resolves to a live
	// author at call time; otherwise it is a no-op returning
	// ErrAuthorRefNotFound.
	Create(ctx context.Context, req CreateRequest) (*Book, error)
	// CreateMany is the partial-success bulk contract: the distinct set
	// of referenced authors is resolved in a single lookup, author-less
	// items are skipped with a reason, and the rest are inserted in one
	// unordered bulk write.
	CreateMany(ctx context.Context, reqs []CreateRequest) (inserted []Book, skipped []SkippedBook, err error)
	List(ctx context.Context, params query.Params) ([]Book, int64, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*Book, error)
	GetWithAuthor(ctx context.Context, id primitive.ObjectID) (*WithAuthor, error)
	Update(ctx context.Context, id primitive.ObjectID, req UpdateRequest) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
