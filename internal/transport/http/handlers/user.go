package http_handlers

import (
	"net/http"

	"github.com/avercheq/taskhive/internal/application/user"
	"github.com/avercheq/taskhive/internal/domain"
	"github.com/avercheq/taskhive/internal/logger"
	"github.com/avercheq/taskhive/internal/transport/http/dto"
	"github.com/avercheq/taskhive/internal/transport/http/middleware"
	"github.com/avercheq/taskhive/internal/transport/http/response"
)

type UserHandler struct {
	svc *user.Service
}

func NewUserHandler(svc *user.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

// Me handles GET /users/me.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}

	p, err := h.svc.Me(r.Context(), uid)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewProfileData(p))
}

// ChangePassword handles PUT /users/reset-password.
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}

	var req dto.PasswordChangeRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.ChangePassword(r.Context(), uid, req.Password, req.NewPassword); err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Int64("user_id", uid).
		Msg("password_changed")

	response.NoContent(w)
}
