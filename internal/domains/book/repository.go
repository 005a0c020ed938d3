package book

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"library-backend/internal/shared/query"
)

type Repository interface {
	Insert(ctx context.Context, b *Book) (primitive.ObjectID, error)
	// InsertMany performs one unordered bulk write: a failure on one
	// document does not block insertion of the others. It returns the
	// books that were actually persisted.
	InsertMany(ctx context.Context, books []Book) ([]Book, error)
	List(ctx context.Context, params query.Params) ([]Book, error)
	Count(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*Book, error)
	GetWithAuthor(ctx context.Context, id primitive.ObjectID) (*WithAuthor, error)
	// Update applies the non-nil fields of req and bumps updatedAt.
	// Returns ErrBookNotFound when no document matched.
	Update(ctx context.Context, id primitive.ObjectID, req UpdateRequest) error
	// Delete hard-deletes and returns the deleted count (0 or 1).
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}
