package http_handlers

import (
	"net/http"

	"github.com/avercheq/taskhive/internal/application/admin"
	"github.com/avercheq/taskhive/internal/logger"
	"github.com/avercheq/taskhive/internal/transport/http/dto"
	"github.com/avercheq/taskhive/internal/transport/http/middleware"
	"github.com/avercheq/taskhive/internal/transport/http/response"
)

// AdminHandler serves the admin-only todo surface. The role gate is the
// router's RequireRole middleware, not the handler.
type AdminHandler struct {
	svc *admin.Service
}

func NewAdminHandler(svc *admin.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// ListTodos handles GET /admin/todos.
func (h *AdminHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := h.svc.ListAll(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewTodoViews(todos))
}

// DeleteTodo handles DELETE /admin/todos/{id}.
func (h *AdminHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, err := todoID(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if uid, ok := middleware.UserIDFromContext(r.Context()); ok {
		logger.WithCtx(r.Context()).Info().
			Int64("admin_id", uid).
			Int64("todo_id", id).
			Msg("todo_deleted_by_admin")
	}

	response.NoContent(w)
}
