package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"library-backend/internal/domains/author"
	"library-backend/internal/shared/query"
	"library-backend/internal/shared/response"
)

type fakeService struct {
	createFn func(ctx context.Context, req author.CreateRequest) (*author.Author, error)
	listFn   func(ctx context.Context, params query.Params) ([]author.Author, error)
	getFn    func(ctx context.Context, id primitive.ObjectID) (*author.Author, error)
	updateFn func(ctx context.Context, id primitive.ObjectID, req author.UpdateRequest) error
	booksFn  func(ctx context.Context, id primitive.ObjectID) (*author.WithBooks, error)

	listParams *query.Params
}

func (f *fakeService) Create(ctx context.Context, req author.CreateRequest) (*author.Author, error) {
	return f.createFn(ctx, req)
}

func (f *fakeService) List(ctx context.Context, params query.Params) ([]author.Author, error) {
	f.listParams = &params
	return f.listFn(ctx, params)
}

func (f *fakeService) GetByID(ctx context.Context, id primitive.ObjectID) (*author.Author, error) {
	return f.getFn(ctx, id)
}

func (f *fakeService) Update(ctx context.Context, id primitive.ObjectID, req author.UpdateRequest) error {
	return f.updateFn(ctx, id, req)
}

func (f *fakeService) GetWithBooks(ctx context.Context, id primitive.ObjectID) (*author.WithBooks, error) {
	return f.booksFn(ctx, id)
}

func newRouter(svc author.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc)

	r := gin.New()
	r.POST("/api/authors", h.CreateAuthor)
	r.GET("/api/authors", h.ListAuthors)
	r.GET("/api/authors/:id", h.GetAuthor)
	r.GET("/api/authors/:id/books", h.GetAuthorBooks)
	r.PATCH("/api/authors/:id", h.UpdateAuthor)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, response.Response) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var envelope response.Response
	_ = json.Unmarshal(w.Body.Bytes(), &envelope)
	return w, envelope
}

func TestCreateAuthor(t *testing.T) {
	svc := &fakeService{
		createFn: func(_ context.Context, req author.CreateRequest) (*author.Author, error) {
			now := time.Now().UTC()
			return &author.Author{
				ID:        primitive.NewObjectID(),
				Name:      req.Name,
				Bio:       req.Bio,
				CreatedAt: now,
				UpdatedAt: now,
			}, nil
		},
	}
	r := newRouter(svc)

	t.Run("created", func(t *testing.T) {
		w, env := doJSON(r, http.MethodPost, "/api/authors",
			`{"name":"George Orwell","bio":"English novelist"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, env.Success)
		assert.Equal(t, "author created successfully", env.Message)
		require.NotNil(t, env.Data)
	})

	t.Run("missing name", func(t *testing.T) {
		w, env := doJSON(r, http.MethodPost, "/api/authors", `{"bio":"anonymous"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, env.Success)
		require.NotNil(t, env.Error)
		assert.Equal(t, response.NameValidationError, env.Error.Name)
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		w, env := doJSON(r, http.MethodPost, "/api/authors",
			`{"name":"George Orwell","nationality":"British"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid request body", env.Message)
	})
}

func TestListAuthors(t *testing.T) {
	svc := &fakeService{
		listFn: func(context.Context, query.Params) ([]author.Author, error) {
			return []author.Author{}, nil
		},
	}
	r := newRouter(svc)

	t.Run("empty list is a success", func(t *testing.T) {
		w, env := doJSON(r, http.MethodGet, "/api/authors", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, env.Success)
		assert.Equal(t, "authors retrieved successfully", env.Message)
	})

	t.Run("defaults to name ascending", func(t *testing.T) {
		_, _ = doJSON(r, http.MethodGet, "/api/authors", "")

		require.NotNil(t, svc.listParams)
		assert.Equal(t, "name", svc.listParams.SortField)
		assert.False(t, svc.listParams.Desc)
		assert.Equal(t, 0, svc.listParams.Skip)
		assert.Equal(t, 10, svc.listParams.Limit)
	})

	t.Run("negative skip rejected", func(t *testing.T) {
		w, env := doJSON(r, http.MethodGet, "/api/authors?skip=-1", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "skip must be a non-negative integer", env.Message)
	})
}

func TestGetAuthor(t *testing.T) {
	existing := author.Author{ID: primitive.NewObjectID(), Name: "George Orwell"}
	svc := &fakeService{
		getFn: func(_ context.Context, id primitive.ObjectID) (*author.Author, error) {
			if id != existing.ID {
				return nil, author.ErrAuthorNotFound
			}
			return &existing, nil
		},
	}
	r := newRouter(svc)

	t.Run("found", func(t *testing.T) {
		w, env := doJSON(r, http.MethodGet, "/api/authors/"+existing.ID.Hex(), "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "author found", env.Message)
	})

	t.Run("malformed id", func(t *testing.T) {
		w, env := doJSON(r, http.MethodGet, "/api/authors/abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid author id", env.Message)
	})

	t.Run("unknown id", func(t *testing.T) {
		w, env := doJSON(r, http.MethodGet, "/api/authors/"+primitive.NewObjectID().Hex(), "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, response.NameNotFoundError, env.Error.Name)
		assert.Equal(t, "author not found", env.Error.Message)
	})
}

func TestGetAuthorBooks(t *testing.T) {
	existing := author.WithBooks{
		ID:    primitive.NewObjectID(),
		Name:  "George Orwell",
		Books: []author.BookRef{},
	}
	svc := &fakeService{
		booksFn: func(_ context.Context, id primitive.ObjectID) (*author.WithBooks, error) {
			if id != existing.ID {
				return nil, author.ErrAuthorNotFound
			}
			return &existing, nil
		},
	}
	r := newRouter(svc)

	t.Run("author with no books keeps an empty list", func(t *testing.T) {
		w, env := doJSON(r, http.MethodGet, "/api/authors/"+existing.ID.Hex()+"/books", "")

		assert.Equal(t, http.StatusOK, w.Code)
		data := struct {
			Books []author.BookRef `json:"books"`
		}{Books: nil}
		b, err := json.Marshal(env.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(b, &data))
		assert.NotNil(t, data.Books)
		assert.Empty(t, data.Books)
	})

	t.Run("unknown author", func(t *testing.T) {
		w, _ := doJSON(r, http.MethodGet, "/api/authors/"+primitive.NewObjectID().Hex()+"/books", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUpdateAuthor(t *testing.T) {
	svc := &fakeService{
		updateFn: func(context.Context, primitive.ObjectID, author.UpdateRequest) error { return nil },
	}
	r := newRouter(svc)
	id := primitive.NewObjectID().Hex()

	t.Run("empty body rejected", func(t *testing.T) {
		w, env := doJSON(r, http.MethodPatch, "/api/authors/"+id, `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "no data provided for update", env.Message)
	})

	t.Run("updated", func(t *testing.T) {
		w, env := doJSON(r, http.MethodPatch, "/api/authors/"+id, `{"age":46}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "author updated successfully", env.Message)
	})

	t.Run("unknown id", func(t *testing.T) {
		svc.updateFn = func(context.Context, primitive.ObjectID, author.UpdateRequest) error {
			return author.ErrAuthorNotFound
		}

		w, _ := doJSON(r, http.MethodPatch, "/api/authors/"+id, `{"age":46}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
