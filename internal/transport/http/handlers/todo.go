package http_handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/avercheq/taskhive/internal/application/todo"
	"github.com/avercheq/taskhive/internal/domain"
	"github.com/avercheq/taskhive/internal/transport/http/dto"
	"github.com/avercheq/taskhive/internal/transport/http/middleware"
	"github.com/avercheq/taskhive/internal/transport/http/response"
)

type TodoHandler struct {
	svc *todo.Service
}

func NewTodoHandler(svc *todo.Service) *TodoHandler {
	return &TodoHandler{svc: svc}
}

// todoID parses the {id} route param. Non-numeric ids map to not found, the
// same as missing rows.
func todoID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrTodoNotFound()
	}
	return id, nil
}

// List handles GET /todos/.
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}

	todos, err := h.svc.List(r.Context(), uid)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewTodoViews(todos))
}

// Get handles GET /todos/{id}.
func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}

	id, err := todoID(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	tw, err := h.svc.Get(r.Context(), uid, id)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewTodoView(tw))
}

// Create handles POST /todos/.
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}

	var req dto.TodoRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	tw, err := h.svc.Create(r.Context(), uid, todo.Input{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Complete:    req.Complete,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.Created(w, dto.NewTodoView(tw))
}

// Update handles PUT /todos/{id}.
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}

	id, err := todoID(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	var req dto.TodoRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.Update(r.Context(), uid, id, todo.Input{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Complete:    req.Complete,
	}); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.NoContent(w)
}

// Delete handles DELETE /todos/{id}.
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}

	id, err := todoID(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), uid, id); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.NoContent(w)
}
