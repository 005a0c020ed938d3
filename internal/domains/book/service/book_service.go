package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"library-backend/internal/domains/auditlog"
	"library-backend/internal/domains/author"
	"library-backend/internal/domains/book"
	"library-backend/internal/shared/query"
)

// BookService enforces the book↔author referential invariant at the
// application level, since the store has no foreign keys. Every write
// that introduces an authorId verifies it first (check-then-act; the
// race window between check and insert is accepted, since no author
// delete path exists).
type BookService struct {
	repo    book.Repository
	authors author.Repository
	audit   auditlog.Writer
}

func NewService(repo book.Repository, authors author.Repository, audit auditlog.Writer) book.Service {
	return &BookService{repo: repo, authors: authors, audit: audit}
}

func (s *BookService) Create(ctx context.Context, req book.CreateRequest) (*book.Book, error) {
	b := req.Document(time.Now().UTC())

	exists, err := s.authors.Exists(ctx, b.AuthorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, book.ErrAuthorRefNotFound
	}

	id, err := s.repo.Insert(ctx, &b)
	if err != nil {
		return nil, err
	}

	s.audit.Append(ctx, auditlog.ActionCreate, auditlog.EntityBook, id)
	return &b, nil
}

// CreateMany resolves the distinct set of referenced authors with one
// lookup before any insert, partitions the batch into insertable and
// skipped, and writes the insertable books in a single unordered bulk
// operation.
func (s *BookService) CreateMany(ctx context.Context, reqs []book.CreateRequest) ([]book.Book, []book.SkippedBook, error) {
	if len(reqs) == 0 {
		return nil, nil, nil
	}

	now := time.Now().UTC()
	docs := make([]book.Book, len(reqs))
	distinct := make([]primitive.ObjectID, 0, len(reqs))
	seen := map[primitive.ObjectID]struct{}{}

	for i, req := range reqs {
		docs[i] = req.Document(now)
		if _, ok := seen[docs[i].AuthorID]; !ok {
			seen[docs[i].AuthorID] = struct{}{}
			distinct = append(distinct, docs[i].AuthorID)
		}
	}

	existing, err := s.authors.ExistingIDs(ctx, distinct)
	if err != nil {
		return nil, nil, err
	}

	insertable := make([]book.Book, 0, len(docs))
	skipped := []book.SkippedBook{}
	for _, doc := range docs {
		if _, ok := existing[doc.AuthorID]; !ok {
			skipped = append(skipped, book.SkippedBook{
				Title:    doc.Title,
				AuthorID: doc.AuthorID.Hex(),
				Reason:   "author not found",
			})
			continue
		}
		insertable = append(insertable, doc)
	}

	if len(insertable) == 0 {
		return nil, skipped, nil
	}

	inserted, err := s.repo.InsertMany(ctx, insertable)
	if err != nil {
		return nil, skipped, err
	}

	for _, b := range inserted {
		s.audit.Append(ctx, auditlog.ActionCreate, auditlog.EntityBook, b.ID)
	}
	return inserted, skipped, nil
}

func (s *BookService) List(ctx context.Context, params query.Params) ([]book.Book, int64, error) {
	books, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return books, total, nil
}

func (s *BookService) GetByID(ctx context.Context, id primitive.ObjectID) (*book.Book, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *BookService) GetWithAuthor(ctx context.Context, id primitive.ObjectID) (*book.WithAuthor, error) {
	return s.repo.GetWithAuthor(ctx, id)
}

func (s *BookService) Update(ctx context.Context, id primitive.ObjectID, req book.UpdateRequest) error {
	if req.AuthorID != nil {
		authorID, err := primitive.ObjectIDFromHex(*req.AuthorID)
		if err != nil {
			return book.ErrInvalidID
		}

		exists, err := s.authors.Exists(ctx, authorID)
		if err != nil {
			return err
		}
		if !exists {
			return book.ErrAuthorRefNotFound
		}
	}

	if err := s.repo.Update(ctx, id, req); err != nil {
		return err
	}

	s.audit.Append(ctx, auditlog.ActionUpdate, auditlog.EntityBook, id)
	return nil
}

func (s *BookService) Delete(ctx context.Context, id primitive.ObjectID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return book.ErrBookNotFound
	}

	s.audit.Append(ctx, auditlog.ActionDelete, auditlog.EntityBook, id)
	return nil
}
