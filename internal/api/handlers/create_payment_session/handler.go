package create_payment_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBooking/internal/api/handlers"
	createPaymentSession "github.com/m04kA/SMC-RoomBooking/internal/usecase/create_payment_session"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgNotFound           = "Booking not found"
	msgNotPayable         = "Booking is not awaiting payment"
	msgExpired            = "Booking has expired, please book again"
	msgNothingToPay       = "Booking total is zero, no payment required"
	msgProviderError      = "Payment provider is unavailable, please try again"
)

type Handler struct {
	useCase CreatePaymentSessionUseCase
	logger  Logger
}

func NewHandler(useCase CreatePaymentSessionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/checkout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil || req.BookingID <= 0 {
		h.logger.Warn("POST /payments/checkout - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &createPaymentSession.Request{BookingID: req.BookingID})
	if err != nil {
		switch {
		case errors.Is(err, createPaymentSession.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, createPaymentSession.ErrNotPayable):
			handlers.RespondConflict(w, handlers.CodeStatusConflict, msgNotPayable)

		case errors.Is(err, createPaymentSession.ErrBookingExpired):
			handlers.RespondConflict(w, handlers.CodeStatusConflict, msgExpired)

		case errors.Is(err, createPaymentSession.ErrNothingToPay):
			handlers.RespondBadRequest(w, msgNothingToPay)

		case errors.Is(err, createPaymentSession.ErrProvider):
			h.logger.Error("POST /payments/checkout - Provider error: booking_id=%d, error=%v", req.BookingID, err)
			handlers.RespondError(w, http.StatusBadGateway, handlers.CodeBadGateway, msgProviderError)

		default:
			h.logger.Error("POST /payments/checkout - Failed: booking_id=%d, error=%v", req.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, CreateSessionResponse{
		SessionID: result.SessionID,
		URL:       result.URL,
		Amount:    float64(result.AmountCents) / 100,
		Currency:  result.Currency,
	})
}
