package auditlog

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"library-backend/internal/shared/query"
)

// Writer is the side-effect surface mutating domains depend on. Append
// returns nothing: the write is best-effort and its failure must never
// fail or roll back the primary mutation. Failures are logged and
// swallowed by the implementation.
type Writer interface {
	Append(ctx context.Context, action Action, entityType EntityType, entityID primitive.ObjectID)
}

// Service adds the read-only surface exposed over HTTP. There is no
// update or delete operation: the log is append-only by contract.
type Service interface {
	Writer
	List(ctx context.Context, params query.Params) ([]Entry, int64, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*Entry, error)
}
