package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"library-backend/internal/domains/auditlog"
	"library-backend/internal/shared/query"
	"library-backend/internal/shared/response"
	"library-backend/pkg/logger"
)

// Handler exposes the read-only log surface. Clients can never create,
// update or delete entries through HTTP.
type Handler struct {
	service auditlog.Service
}

func NewHandler(service auditlog.Service) *Handler {
	return &Handler{service: service}
}

// ListLogs - GET /api/logs
func (h *Handler) ListLogs(c *gin.Context) {
	params, err := query.Parse(c.Query("skip"), c.Query("limit"), c.Query("sort"), auditlog.ListOptions)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	entries, total, err := h.service.List(c.Request.Context(), params)
	if err != nil {
		logger.Error("failed to list logs", err)
		response.InternalServerError(c, "failed to get all logs")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "logs retrieved successfully", entries, &response.Meta{
		Skip:    params.Skip,
		Limit:   params.Limit,
		Total:   total,
		HasNext: int64(params.Skip+params.Limit) < total,
	})
}

// GetLog - GET /api/logs/:id
func (h *Handler) GetLog(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, auditlog.ErrInvalidID.Error())
		return
	}

	entry, err := h.service.GetByID(c.Request.Context(), id)
	if errors.Is(err, auditlog.ErrLogNotFound) {
		response.NotFound(c, auditlog.ErrLogNotFound.Error())
		return
	}
	if err != nil {
		logger.Error("failed to get log by id", err)
		response.InternalServerError(c, "failed to get log by id")
		return
	}

	response.Success(c, http.StatusOK, "log found", entry)
}
