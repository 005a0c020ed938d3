package author

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"library-backend/internal/shared/query"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Author, error)
	List(ctx context.Context, params query.Params) ([]Author, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*Author, error)
	Update(ctx context.Context, id primitive.ObjectID, req UpdateRequest) error
	GetWithBooks(ctx context.Context, id primitive.ObjectID) (*WithBooks, error)
}
