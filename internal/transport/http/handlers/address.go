package http_handlers

import (
	"net/http"

	"github.com/avercheq/taskhive/internal/application/address"
	"github.com/avercheq/taskhive/internal/domain"
	"github.com/avercheq/taskhive/internal/logger"
	"github.com/avercheq/taskhive/internal/transport/http/dto"
	"github.com/avercheq/taskhive/internal/transport/http/middleware"
	"github.com/avercheq/taskhive/internal/transport/http/response"
)

type AddressHandler struct {
	svc *address.Service
}

func NewAddressHandler(svc *address.Service) *AddressHandler {
	return &AddressHandler{svc: svc}
}

// Create handles POST /addresses/. The new address is linked to the caller's
// account in the same write.
func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}

	var req dto.AddressRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	a, err := h.svc.Create(r.Context(), uid, address.Input{
		City:       req.City,
		State:      req.State,
		Country:    req.Country,
		PostalCode: req.PostalCode,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Int64("user_id", uid).
		Int64("address_id", a.ID).
		Msg("address_created")

	response.Created(w, dto.NewAddressView(a))
}
