package handler

import (
	"context"
	"net/http"

	"github.com/rezkam/todo/internal/domain"
	"github.com/rezkam/todo/internal/infrastructure/http/response"
)

type listFunc func(ctx context.Context, query domain.PageQuery) (*domain.PageResult[domain.TodoItem], error)

// ListIncomplete handles POST /incomplete.
func (h *TodoHandler) ListIncomplete(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "incomplete", h.todoService.ListIncomplete)
}

// ListComplete handles POST /complete.
func (h *TodoHandler) ListComplete(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "complete", h.todoService.ListComplete)
}

// ListAll handles POST /all.
func (h *TodoHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "all", h.todoService.ListAll)
}

// Search handles POST /search.
func (h *TodoHandler) Search(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "search", h.todoService.Search)
}

func (h *TodoHandler) list(w http.ResponseWriter, r *http.Request, name string, fn listFunc) {
	var req PageQueryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	// Unknown directions fall back to ascending here instead of failing.
	direction := domain.NormalizeSortDirection(r.Context(), h.logger, req.SortDirection)

	result, err := fn(r.Context(), mapPageQuery(req, direction))
	if err != nil {
		h.logger.WarnContext(r.Context(), "failed to list items via HTTP",
			"listing", name,
			"page", req.Page,
			"size", req.Size,
			"error", err)
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, MapPageResultToDTO(result))
}
