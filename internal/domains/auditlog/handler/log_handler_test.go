package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"library-backend/internal/domains/auditlog"
	"library-backend/internal/shared/query"
	"library-backend/internal/shared/response"
)

type fakeService struct {
	entries []auditlog.Entry

	listParams *query.Params
}

func (f *fakeService) Append(_ context.Context, action auditlog.Action, entityType auditlog.EntityType, entityID primitive.ObjectID) {
	f.entries = append(f.entries, auditlog.Entry{
		ID:         primitive.NewObjectID(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Timestamp:  time.Now().UTC(),
	})
}

func (f *fakeService) List(_ context.Context, params query.Params) ([]auditlog.Entry, int64, error) {
	f.listParams = &params
	return f.entries, int64(len(f.entries)), nil
}

func (f *fakeService) GetByID(_ context.Context, id primitive.ObjectID) (*auditlog.Entry, error) {
	for i := range f.entries {
		if f.entries[i].ID == id {
			return &f.entries[i], nil
		}
	}
	return nil, auditlog.ErrLogNotFound
}

func newRouter(svc auditlog.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc)

	r := gin.New()
	r.GET("/api/logs", h.ListLogs)
	r.GET("/api/logs/:id", h.GetLog)
	return r
}

func get(r *gin.Engine, path string) (*httptest.ResponseRecorder, response.Response) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var envelope response.Response
	_ = json.Unmarshal(w.Body.Bytes(), &envelope)
	return w, envelope
}

func TestListLogs(t *testing.T) {
	svc := &fakeService{}
	svc.Append(context.Background(), auditlog.ActionCreate, auditlog.EntityAuthor, primitive.NewObjectID())
	svc.Append(context.Background(), auditlog.ActionCreate, auditlog.EntityBook, primitive.NewObjectID())
	r := newRouter(svc)

	t.Run("defaults to timestamp descending", func(t *testing.T) {
		w, env := get(r, "/api/logs")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, env.Success)
		require.NotNil(t, env.Meta)
		assert.Equal(t, int64(2), env.Meta.Total)

		require.NotNil(t, svc.listParams)
		assert.Equal(t, "timestamp", svc.listParams.SortField)
		assert.True(t, svc.listParams.Desc)
	})

	t.Run("sort by action", func(t *testing.T) {
		w, _ := get(r, "/api/logs?sort=action")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "action", svc.listParams.SortField)
		assert.False(t, svc.listParams.Desc)
	})

	t.Run("unlisted sort field rejected", func(t *testing.T) {
		w, env := get(r, "/api/logs?sort=entityId")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid sort field", env.Message)
	})

	t.Run("limit above cap rejected", func(t *testing.T) {
		w, env := get(r, "/api/logs?limit=101")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "limit must be a positive integer (max 100)", env.Message)
	})
}

func TestGetLog(t *testing.T) {
	svc := &fakeService{}
	svc.Append(context.Background(), auditlog.ActionDelete, auditlog.EntityBook, primitive.NewObjectID())
	r := newRouter(svc)

	t.Run("found", func(t *testing.T) {
		w, env := get(r, "/api/logs/"+svc.entries[0].ID.Hex())

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "log found", env.Message)
	})

	t.Run("malformed id", func(t *testing.T) {
		w, env := get(r, "/api/logs/zzz")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid log id", env.Message)
	})

	t.Run("unknown id", func(t *testing.T) {
		w, env := get(r, "/api/logs/"+primitive.NewObjectID().Hex())

		assert.Equal(t, http.StatusNotFound, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "log not found", env.Error.Message)
	})
}
