package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"library-backend/internal/domains/author"
	"library-backend/internal/shared/binding"
	"library-backend/internal/shared/query"
	"library-backend/internal/shared/response"
	"library-backend/pkg/logger"
)

type Handler struct {
	service author.Service
}

func NewHandler(service author.Service) *Handler {
	return &Handler{service: service}
}

// CreateAuthor - POST /api/authors
func (h *Handler) CreateAuthor(c *gin.Context) {
	var req author.CreateRequest
	if err := binding.JSON(c, &req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.NameValidationError,
			"required fields missing", err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		logger.Error("failed to insert author", err)
		response.InternalServerError(c, "failed to insert author")
		return
	}

	response.Success(c, http.StatusCreated, "author created successfully", created)
}

// ListAuthors - GET /api/authors
func (h *Handler) ListAuthors(c *gin.Context) {
	params, err := query.Parse(c.Query("skip"), c.Query("limit"), c.Query("sort"), author.ListOptions)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	authors, err := h.service.List(c.Request.Context(), params)
	if err != nil {
		logger.Error("failed to list authors", err)
		response.InternalServerError(c, "failed to get all authors")
		return
	}

	response.Success(c, http.StatusOK, "authors retrieved successfully", authors)
}

// GetAuthor - GET /api/authors/:id
func (h *Handler) GetAuthor(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, author.ErrInvalidID.Error())
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), id)
	if errors.Is(err, author.ErrAuthorNotFound) {
		response.NotFound(c, author.ErrAuthorNotFound.Error())
		return
	}
	if err != nil {
		logger.Error("failed to get author by id", err)
		response.InternalServerError(c, "failed to get author by id")
		return
	}

	response.Success(c, http.StatusOK, "author found", a)
}

// GetAuthorBooks - GET /api/authors/:id/books
func (h *Handler) GetAuthorBooks(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, author.ErrInvalidID.Error())
		return
	}

	result, err := h.service.GetWithBooks(c.Request.Context(), id)
	if errors.Is(err, author.ErrAuthorNotFound) {
		response.NotFound(c, author.ErrAuthorNotFound.Error())
		return
	}
	if err != nil {
		logger.Error("failed to get author and books", err)
		response.InternalServerError(c, "failed to get author and books")
		return
	}

	response.Success(c, http.StatusOK, "author and books retrieved", result)
}

// UpdateAuthor - PATCH /api/authors/:id
func (h *Handler) UpdateAuthor(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, author.ErrInvalidID.Error())
		return
	}

	var req author.UpdateRequest
	if err := binding.JSON(c, &req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		if errors.Is(err, author.ErrNoUpdatableFields) {
			response.BadRequest(c, author.ErrNoUpdatableFields.Error())
			return
		}
		response.ErrorWithDetails(c, http.StatusBadRequest, response.NameValidationError,
			"validation failed", err)
		return
	}

	err = h.service.Update(c.Request.Context(), id, req)
	if errors.Is(err, author.ErrAuthorNotFound) {
		response.NotFound(c, author.ErrAuthorNotFound.Error())
		return
	}
	if err != nil {
		logger.Error("failed to update author", err)
		response.InternalServerError(c, "failed to update author")
		return
	}

	response.Success(c, http.StatusOK, "author updated successfully", nil)
}
