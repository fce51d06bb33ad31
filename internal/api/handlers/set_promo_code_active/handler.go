package set_promo_code_active

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBooking/internal/service/promocodes"
)

const (
	msgInvalidID          = "invalid promo code id"
	msgInvalidRequestBody = "invalid request body, expected {\"active\": bool}"
	msgNotFound           = "Promo code not found"
)

type SetActiveRequest struct {
	Active *bool `json:"active"`
}

type Handler struct {
	service PromoCodeService
	logger  Logger
}

func NewHandler(service PromoCodeService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/admin/promo-codes/{promoId}/active
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "promoId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req SetActiveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil || req.Active == nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.SetActive(r.Context(), id, *req.Active); err != nil {
		switch {
		case errors.Is(err, promocodes.ErrPromoCodeNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /admin/promo-codes/{id}/active - Failed: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
