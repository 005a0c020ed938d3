package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"library-backend/internal/domains/auditlog"
	"library-backend/internal/domains/author"
	"library-backend/internal/shared/query"
)

type AuthorService struct {
	repo  author.Repository
	audit auditlog.Writer
}

func NewService(repo author.Repository, audit auditlog.Writer) author.Service {
	return &AuthorService{repo: repo, audit: audit}
}

func (s *AuthorService) Create(ctx context.Context, req author.CreateRequest) (*author.Author, error) {
	now := time.Now().UTC()
	a := &author.Author{
		Name:      req.Name,
		Bio:       req.Bio,
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := s.repo.Insert(ctx, a)
	if err != nil {
		return nil, err
	}

	s.audit.Append(ctx, auditlog.ActionCreate, auditlog.EntityAuthor, id)
	return a, nil
}

func (s *AuthorService) List(ctx context.Context, params query.Params) ([]author.Author, error) {
	return s.repo.List(ctx, params)
}

func (s *AuthorService) GetByID(ctx context.Context, id primitive.ObjectID) (*author.Author, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AuthorService) Update(ctx context.Context, id primitive.ObjectID, req author.UpdateRequest) error {
	if err := s.repo.Update(ctx, id, req); err != nil {
		return err
	}

	s.audit.Append(ctx, auditlog.ActionUpdate, auditlog.EntityAuthor, id)
	return nil
}

func (s *AuthorService) GetWithBooks(ctx context.Context, id primitive.ObjectID) (*author.WithBooks, error) {
	return s.repo.GetWithBooks(ctx, id)
}
