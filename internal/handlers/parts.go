// internal/handlers/parts.go
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ammerola/parts-be/internal/core/domain"
	"github.com/ammerola/parts-be/internal/core/ports"
)

// PartHandler handles part CRUD endpoints
type PartHandler struct {
	service ports.PartService
	logger  *slog.Logger
}

// NewPartHandler creates a new part handler
func NewPartHandler(service ports.PartService, logger *slog.Logger) *PartHandler {
	return &PartHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "parts")),
	}
}

// ListParts handles GET /api/v1/parts
func (h *PartHandler) ListParts(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context(), parseListParams(r))
	if err != nil {
		respondServiceError(w, r, h.logger, err, "list parts")
		return
	}
	respondJSON(w, h.logger, http.StatusOK, result)
}

// GetPart handles GET /api/v1/parts/{id}
func (h *PartHandler) GetPart(w http.ResponseWriter, r *http.Request) {
	id, ok := h.partID(w, r)
	if !ok {
		return
	}

	part, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, h.logger, err, "get part")
		return
	}
	respondJSON(w, h.logger, http.StatusOK, part)
}

// CreatePart handles POST /api/v1/parts
func (h *PartHandler) CreatePart(w http.ResponseWriter, r *http.Request) {
	var req PartRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	part := req.ToDomain()
	if err := h.service.Create(r.Context(), part); err != nil {
		respondServiceError(w, r, h.logger, err, "create part")
		return
	}

	w.Header().Set("Location", "/api/v1/parts/"+part.ID.String())
	respondJSON(w, h.logger, http.StatusCreated, part)
}

// UpdatePart handles PUT /api/v1/parts/{id}
func (h *PartHandler) UpdatePart(w http.ResponseWriter, r *http.Request) {
	id, ok := h.partID(w, r)
	if !ok {
		return
	}

	var req PartRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	part, err := h.service.Update(r.Context(), id, req.ToDomain())
	if err != nil {
		respondServiceError(w, r, h.logger, err, "update part")
		return
	}
	respondJSON(w, h.logger, http.StatusOK, part)
}

// PatchPart handles PATCH /api/v1/parts/{id}
func (h *PartHandler) PatchPart(w http.ResponseWriter, r *http.Request) {
	id, ok := h.partID(w, r)
	if !ok {
		return
	}

	var patch domain.PartPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	part, err := h.service.Patch(r.Context(), id, patch)
	if err != nil {
		respondServiceError(w, r, h.logger, err, "update part")
		return
	}
	respondJSON(w, h.logger, http.StatusOK, part)
}

// DeletePart handles DELETE /api/v1/parts/{id}
func (h *PartHandler) DeletePart(w http.ResponseWriter, r *http.Request) {
	id, ok := h.partID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondServiceError(w, r, h.logger, err, "delete part")
		return
	}

	h.logger.InfoContext(r.Context(), "part deleted", slog.String("id", id.String()))
	w.WriteHeader(http.StatusNoContent)
}

// Stats handles GET /api/v1/parts/stats
func (h *PartHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		respondServiceError(w, r, h.logger, err, "compute stock stats")
		return
	}
	respondJSON(w, h.logger, http.StatusOK, stats)
}

func (h *PartHandler) partID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid part ID format")
		return uuid.Nil, false
	}
	return id, true
}

// parseListParams reads the list query. Unparseable numbers are ignored and
// the service applies defaults and bounds.
func parseListParams(r *http.Request) ports.ListParams {
	q := r.URL.Query()
	params := ports.ListParams{
		Search:    q.Get("search"),
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
	}

	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		params.Page = page
	}
	if size, err := strconv.Atoi(q.Get("page_size")); err == nil && size > 0 {
		params.PageSize = size
	}

	return params
}

// PartRequest is the body of create and full update requests
type PartRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int             `json:"quantity"`
}

// Validate checks that every required field is present
func (r *PartRequest) Validate() error {
	switch {
	case strings.TrimSpace(r.Name) == "":
		return domain.NewValidationError("name", "name is required")
	case r.Price == nil:
		return domain.NewValidationError("price", "price is required")
	case r.Quantity == nil:
		return domain.NewValidationError("quantity", "quantity is required")
	}
	return nil
}

// ToDomain converts the request to a domain part
func (r *PartRequest) ToDomain() *domain.Part {
	part := &domain.Part{
		Name:        r.Name,
		Description: r.Description,
	}
	if r.Price != nil {
		part.Price = *r.Price
	}
	if r.Quantity != nil {
		part.Quantity = *r.Quantity
	}
	return part
}
