package create_promo_code

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBooking/internal/service/promocodes"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidExpiry      = "invalid expiryDate, expected YYYY-MM-DD or RFC3339"
	msgAlreadyExists      = "Promo code already exists"
)

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

// Handle POST /api/v1/admin/promo-codes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreatePromoCodeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/promo-codes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidExpiry)
		return
	}

	promo, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, promocodes.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, promocodes.ErrPromoCodeExists):
			handlers.RespondConflict(w, handlers.CodeValidation, msgAlreadyExists)

		default:
			h.logger.Error("POST /admin/promo-codes - Failed to create promo code: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, promo)
}
