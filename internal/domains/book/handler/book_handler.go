package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"library-backend/internal/domains/book"
	"library-backend/internal/shared/binding"
	"library-backend/internal/shared/query"
	"library-backend/internal/shared/response"
	"library-backend/pkg/logger"
)

type Handler struct {
	service book.Service
}

func NewHandler(service book.Service) *Handler {
	return &Handler{service: service}
}

// CreateBook - POST /api/books
func (h *Handler) CreateBook(c *gin.Context) {
	var req book.CreateRequest
	if err := binding.JSON(c, &req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.NameValidationError,
			book.ValidationMessage(err), err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if errors.Is(err, book.ErrAuthorRefNotFound) {
		response.ErrorResponse(c, http.StatusBadRequest,
			response.NameReferentialIntegrityError, book.ErrAuthorRefNotFound.Error())
		return
	}
	if err != nil {
		logger.Error("failed to insert book", err)
		response.InternalServerError(c, "failed to insert book")
		return
	}

	response.Success(c, http.StatusCreated, "book created successfully", created)
}

// CreateBooks - POST /api/books/bulk
//
// Partial-success contract: the response always carries three buckets
// (inserted, skipped due to missing authors, per-item validation errors).
// The operation is 201 as long as at least one book was inserted.
func (h *Handler) CreateBooks(c *gin.Context) {
	items, err := binding.JSONArray(c)
	if err != nil {
		response.BadRequest(c, "an array of books is required")
		return
	}

	reqs, itemErrors := book.ParseBulk(items)

	inserted, skipped, err := h.service.CreateMany(c.Request.Context(), reqs)
	if err != nil {
		logger.Error("failed to insert books", err)
		response.InternalServerError(c, "failed to insert books")
		return
	}

	result := book.BulkResult{
		InsertedCount:    len(inserted),
		InsertedBooks:    inserted,
		SkippedBooks:     skipped,
		ValidationErrors: itemErrors,
	}

	if result.InsertedCount == 0 {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.NameValidationError,
			book.ErrNoInsertableBooks.Error(), result)
		return
	}

	message := "books inserted successfully"
	if len(skipped) > 0 || len(itemErrors) > 0 {
		message = "bulk insert partially completed"
	}
	response.Success(c, http.StatusCreated, message, result)
}

// ListBooks - GET /api/books
func (h *Handler) ListBooks(c *gin.Context) {
	params, err := query.Parse(c.Query("skip"), c.Query("limit"), c.Query("sort"), book.ListOptions)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	books, total, err := h.service.List(c.Request.Context(), params)
	if err != nil {
		logger.Error("failed to list books", err)
		response.InternalServerError(c, "failed to get all books")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "books retrieved successfully", books, &response.Meta{
		Skip:    params.Skip,
		Limit:   params.Limit,
		Total:   total,
		HasNext: int64(params.Skip+params.Limit) < total,
	})
}

// GetBook - GET /api/books/:id
func (h *Handler) GetBook(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, book.ErrInvalidID.Error())
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if errors.Is(err, book.ErrBookNotFound) {
		response.NotFound(c, book.ErrBookNotFound.Error())
		return
	}
	if err != nil {
		logger.Error("failed to get book by id", err)
		response.InternalServerError(c, "failed to get book by id")
		return
	}

	response.Success(c, http.StatusOK, "book found by id", b)
}

// GetBookAuthor - GET /api/books/:id/author
func (h *Handler) GetBookAuthor(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, book.ErrInvalidID.Error())
		return
	}

	result, err := h.service.GetWithAuthor(c.Request.Context(), id)
	if errors.Is(err, book.ErrBookNotFound) {
		response.NotFound(c, "book or author not found")
		return
	}
	if err != nil {
		logger.Error("failed to get book author", err)
		response.InternalServerError(c, "failed to get book author")
		return
	}

	response.Success(c, http.StatusOK, "book and author found", result)
}

// UpdateBook - PATCH /api/books/:id
func (h *Handler) UpdateBook(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, book.ErrInvalidID.Error())
		return
	}

	var req book.UpdateRequest
	if err := binding.JSON(c, &req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		if errors.Is(err, book.ErrNoUpdatableFields) {
			response.BadRequest(c, book.ErrNoUpdatableFields.Error())
			return
		}
		response.ErrorWithDetails(c, http.StatusBadRequest, response.NameValidationError,
			"validation failed", err)
		return
	}

	err = h.service.Update(c.Request.Context(), id, req)
	switch {
	case errors.Is(err, book.ErrAuthorRefNotFound):
		response.ErrorResponse(c, http.StatusBadRequest,
			response.NameReferentialIntegrityError, book.ErrAuthorRefNotFound.Error())
	case errors.Is(err, book.ErrBookNotFound):
		response.NotFound(c, book.ErrBookNotFound.Error())
	case err != nil:
		logger.Error("failed to update book", err)
		response.InternalServerError(c, "failed to update book")
	default:
		response.Success(c, http.StatusOK, "book updated successfully", nil)
	}
}

// DeleteBook - DELETE /api/books/:id
func (h *Handler) DeleteBook(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, book.ErrInvalidID.Error())
		return
	}

	err = h.service.Delete(c.Request.Context(), id)
	if errors.Is(err, book.ErrBookNotFound) {
		response.NotFound(c, book.ErrBookNotFound.Error())
		return
	}
	if err != nil {
		logger.Error("failed to delete book", err)
		response.InternalServerError(c, "failed to delete book")
		return
	}

	response.Success(c, http.StatusOK, "book deleted", gin.H{"deletedCount": 1})
}
