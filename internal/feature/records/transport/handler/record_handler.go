// Package handler provides the HTTP handlers for the records feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"record_backend/internal/feature/records/domain"
	"record_backend/internal/feature/records/domain/entity"
	"record_backend/internal/feature/records/transport/http/dto"
	"record_backend/internal/feature/records/usecase"
)

// RecordUsecase defines the record operations used by the HTTP layer.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type RecordUsecase interface {
	Create(ctx context.Context, in usecase.CreateInput) (*entity.Record, error)
	Get(ctx context.Context, id uint) (*entity.Record, error)
	List(ctx context.Context, params usecase.ListParams) ([]entity.Record, int64, error)
	Search(ctx context.Context, term string, limit int) ([]entity.Record, error)
	Update(ctx context.Context, id uint, in usecase.UpdateInput) (*entity.Record, error)
	Delete(ctx context.Context, id uint) error
	Reset(ctx context.Context) ([]entity.Record, error)
}

// RecordHandler handles HTTP requests for record operations.
type RecordHandler struct {
	records RecordUsecase
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(records RecordUsecase) *RecordHandler {
	return &RecordHandler{records: records}
}

// List handles GET /records.
// Supports optional search, page, and pageSize query parameters and wraps
// the result in a pagination envelope.
func (h *RecordHandler) List(c *gin.Context) {
	params := usecase.ListParams{
		Search:   c.Query("search"),
		Page:     intQuery(c, "page", usecase.DefaultPage),
		PageSize: intQuery(c, "pageSize", usecase.DefaultPageSize),
	}.Normalize()

	recs, total, err := h.records.List(c.Request.Context(), params)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListRecordsResponse(
		dto.FromRecords(recs), params.Page, params.PageSize, total))
}

// Get handles GET /records/:id.
// Responds 404 when the id is absent or the record has been soft-deleted.
func (h *RecordHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	rec, err := h.records.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromRecord(rec))
}

// Create handles POST /records.
// - 201 with the created record on success
// - 400 with the full list of violated constraints
// - 409 when the email is already in use
func (h *RecordHandler) Create(c *gin.Context) {
	var req dto.CreateRecordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create record: malformed body", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	rec, err := h.records.Create(c.Request.Context(), usecase.CreateInput{
		Name:  req.Name,
		Email: req.Email,
		Age:   req.Age,
		Phone: req.Phone,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	slog.Info("record created", "record_id", rec.ID, "email", rec.Email)
	c.JSON(http.StatusCreated, dto.FromRecord(rec))
}

// Update handles PUT /records/:id.
// The body carries only the fields to change; the stored record is left
// untouched when the merged result fails validation.
func (h *RecordHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req dto.UpdateRecordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("update record: malformed body", "error", err, "record_id", id, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	_, err := h.records.Update(c.Request.Context(), id, usecase.UpdateInput{
		Name:  req.Name,
		Email: req.Email,
		Age:   req.Age,
		Phone: req.Phone,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	slog.Info("record updated", "record_id", id)
	c.Status(http.StatusNoContent)
}

// Delete handles DELETE /records/:id (soft delete).
func (h *RecordHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.records.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	slog.Info("record deleted", "record_id", id)
	c.Status(http.StatusNoContent)
}

// Reset handles POST /records/reset, the destructive reset to seed data.
func (h *RecordHandler) Reset(c *gin.Context) {
	seeds, err := h.records.Reset(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	slog.Info("database reset to seed data", "seeded", len(seeds))
	c.JSON(http.StatusOK, dto.ResetResponse{
		Message: "database reset",
		Seeded:  len(seeds),
		Records: dto.FromRecords(seeds),
	})
}

// Search handles GET /records/search?q=&limit=.
// Responds 400 when the term is shorter than the minimum length.
func (h *RecordHandler) Search(c *gin.Context) {
	recs, err := h.records.Search(c.Request.Context(),
		c.Query("q"), intQuery(c, "limit", usecase.DefaultSearchLimit))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromRecords(recs))
}

// respondError maps domain errors to HTTP statuses. Store failures are
// logged and surface as 500; they are never silently swallowed.
func (h *RecordHandler) respondError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{
			Error:      "validation failed",
			Violations: verr.Violations,
		})
	case errors.Is(err, usecase.ErrSearchTermTooShort):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	default:
		slog.Error("record operation failed", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}
}

// idParam parses the :id path parameter, responding 400 when it is not a
// positive integer.
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid record id"})
		return 0, false
	}
	return uint(id), true
}

// intQuery parses an integer query parameter, falling back to defaultVal
// when absent or malformed.
func intQuery(c *gin.Context, key string, defaultVal int) int {
	val := c.Query(key)
	if val == "" {
		return defaultVal
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return parsed
}
