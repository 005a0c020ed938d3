package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"library-backend/internal/domains/auditlog"
	"library-backend/internal/shared/query"
	"library-backend/pkg/logger"
)

type LogService struct {
	repo auditlog.Repository
}

func NewService(repo auditlog.Repository) auditlog.Service {
	return &LogService{repo: repo}
}

// Append records a mutation after the primary operation already
// succeeded. It is fire-and-forget by contract: a failed append is logged
// at error level and swallowed so it can never undo the mutation.
func (s *LogService) Append(ctx context.Context, action auditlog.Action, entityType auditlog.EntityType, entityID primitive.ObjectID) {
	entry := &auditlog.Entry{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Timestamp:  time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		logger.Error("audit log append failed", err)
	}
}

func (s *LogService) List(ctx context.Context, params query.Params) ([]auditlog.Entry, int64, error) {
	entries, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

func (s *LogService) GetByID(ctx context.Context, id primitive.ObjectID) (*auditlog.Entry, error) {
	return s.repo.GetByID(ctx, id)
}
