package author

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"library-backend/internal/shared/query"
)

type Repository interface {
	Insert(ctx context.Context, a *Author) (primitive.ObjectID, error)
	List(ctx context.Context, params query.Params) ([]Author, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*Author, error)
	// Update applies the non-nil fields of req and bumps updatedAt.
	// Returns ErrAuthorNotFound when no document matched.
	Update(ctx context.Context, id primitive.ObjectID, req UpdateRequest) error
	GetWithBooks(ctx context.Context, id primitive.ObjectID) (*WithBooks, error)

	// Exists and ExistingIDs back the book domain's referential-integrity
	// checks. ExistingIDs resolves a distinct id set in one round-trip.
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
	ExistingIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]struct{}, error)
}
