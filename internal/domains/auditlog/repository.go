package auditlog

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"library-backend/internal/shared/query"
)

type Repository interface {
	Insert(ctx context.Context, entry *Entry) error
	List(ctx context.Context, params query.Params) ([]Entry, error)
	Count(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*Entry, error)
}
