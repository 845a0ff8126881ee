package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rezkam/todo/internal/application/todo"
	"github.com/rezkam/todo/internal/infrastructure/http/response"
)

// TodoHandler adapts HTTP+JSON requests to todo service calls.
type TodoHandler struct {
	todoService *todo.Service
	logger      *slog.Logger
}

// NewTodoHandler creates a new HTTP API handler.
func NewTodoHandler(todoService *todo.Service, logger *slog.Logger) *TodoHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TodoHandler{
		todoService: todoService,
		logger:      logger,
	}
}

// Routes returns the todo endpoints. Every operation is a POST with a JSON body;
// callers mount the router under their own prefix.
func (h *TodoHandler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Post("/incomplete", h.ListIncomplete)
	r.Post("/complete", h.ListComplete)
	r.Post("/all", h.ListAll)
	r.Post("/search", h.Search)

	r.Post("/get", h.Get)
	r.Post("/insert", h.Insert)
	r.Post("/update", h.Update)
	r.Post("/delete", h.Delete)
	r.Post("/clear", h.Clear)

	return r
}

// decodeJSON reads the request body into v. An empty body leaves v untouched
// so that absent fields take their zero values.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "invalid JSON")
		return false
	}
	return true
}
