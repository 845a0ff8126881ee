package handler

import (
	"net/http"

	"github.com/rezkam/todo/internal/domain"
	"github.com/rezkam/todo/internal/infrastructure/http/response"
	"github.com/rezkam/todo/internal/ptr"
)

// Get handles POST /get.
func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	var req IDRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.todoService.Get(r.Context(), req.ID)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, MapItemToDTO(item))
}

// Insert handles POST /insert. Absent title or body are stored as empty strings.
func (h *TodoHandler) Insert(w http.ResponseWriter, r *http.Request) {
	var req InsertRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.todoService.Insert(r.Context(), ptr.Deref(req.Title, ""), ptr.Deref(req.Body, ""))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to insert item via HTTP",
			"error", err)
		response.FromDomainError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "item inserted via HTTP",
		"item_id", item.ID)
	response.Empty(w)
}

// Update handles POST /update.
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Status == nil {
		response.ValidationError(w, "status", "required field missing")
		return
	}

	_, err := h.todoService.Update(r.Context(), domain.UpdateParams{
		ID:     req.ID,
		Title:  ptr.Deref(req.Title, ""),
		Body:   ptr.Deref(req.Body, ""),
		Status: *req.Status,
	})
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.Empty(w)
}

// Delete handles POST /delete.
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req IDRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.todoService.Delete(r.Context(), req.ID); err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "item deleted via HTTP",
		"item_id", req.ID)
	response.Empty(w)
}

// Clear handles POST /clear. content selects incomplete, complete or all items.
func (h *TodoHandler) Clear(w http.ResponseWriter, r *http.Request) {
	var req ClearRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if _, err := h.todoService.Clear(r.Context(), req.Content); err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.Empty(w)
}
