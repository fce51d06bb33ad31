package validate_promo_code

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBooking/internal/service/promocodes"
)

const msgCodeRequired = "code is required"

type ValidateRequest struct {
	Code string `json:"code"`
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

// Handle POST /api/v1/promo-codes/validate
// Непригодный код возвращается с 200 и причиной, чтобы клиент мог показать подсказку
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgCodeRequired)
		return
	}

	result, err := h.service.Validate(r.Context(), req.Code)
	if err != nil {
		switch {
		case errors.Is(err, promocodes.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgCodeRequired)

		default:
			h.logger.Error("POST /promo-codes/validate - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
