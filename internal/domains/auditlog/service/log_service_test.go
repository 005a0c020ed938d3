package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"library-backend/internal/domains/auditlog"
	"library-backend/internal/shared/query"
)

type fakeLogRepo struct {
	entries   []auditlog.Entry
	insertErr error
}

func (f *fakeLogRepo) Insert(_ context.Context, entry *auditlog.Entry) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	entry.ID = primitive.NewObjectID()
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeLogRepo) List(context.Context, query.Params) ([]auditlog.Entry, error) {
	return f.entries, nil
}

func (f *fakeLogRepo) Count(context.Context) (int64, error) {
	return int64(len(f.entries)), nil
}

func (f *fakeLogRepo) GetByID(_ context.Context, id primitive.ObjectID) (*auditlog.Entry, error) {
	for i := range f.entries {
		if f.entries[i].ID == id {
			return &f.entries[i], nil
		}
	}
	return nil, auditlog.ErrLogNotFound
}

func TestAppend_RecordsEntry(t *testing.T) {
	repo := &fakeLogRepo{}
	svc := NewService(repo)

	entityID := primitive.NewObjectID()
	before := time.Now().UTC()
	svc.Append(context.Background(), auditlog.ActionCreate, auditlog.EntityBook, entityID)

	require.Len(t, repo.entries, 1)
	entry := repo.entries[0]
	assert.Equal(t, auditlog.ActionCreate, entry.Action)
	assert.Equal(t, auditlog.EntityBook, entry.EntityType)
	assert.Equal(t, entityID, entry.EntityID)
	assert.False(t, entry.Timestamp.Before(before))
}

func TestAppend_SwallowsRepositoryFailure(t *testing.T) {
	repo := &fakeLogRepo{insertErr: errors.New("connection reset")}
	svc := NewService(repo)

	// Must not panic and must not surface the error to the caller.
	svc.Append(context.Background(), auditlog.ActionDelete, auditlog.EntityAuthor, primitive.NewObjectID())

	assert.Empty(t, repo.entries)
}

func TestList_ReturnsEntriesWithTotal(t *testing.T) {
	repo := &fakeLogRepo{}
	svc := NewService(repo)

	for i := 0; i < 3; i++ {
		svc.Append(context.Background(), auditlog.ActionCreate, auditlog.EntityBook, primitive.NewObjectID())
	}

	entries, total, err := svc.List(context.Background(), query.Params{Limit: 10, SortField: "timestamp", Desc: true})
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.Equal(t, int64(3), total)
}

func TestGetByID(t *testing.T) {
	repo := &fakeLogRepo{}
	svc := NewService(repo)
	svc.Append(context.Background(), auditlog.ActionUpdate, auditlog.EntityAuthor, primitive.NewObjectID())

	t.Run("found", func(t *testing.T) {
		got, err := svc.GetByID(context.Background(), repo.entries[0].ID)
		require.NoError(t, err)
		assert.Equal(t, auditlog.ActionUpdate, got.Action)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(t, err, auditlog.ErrLogNotFound)
	})
}
