package stripe_webhook

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/SMC-RoomBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBooking/internal/integrations/stripe"
	applyWebhook "github.com/m04kA/SMC-RoomBooking/internal/usecase/apply_webhook"
)

const (
	signatureHeader = "Stripe-Signature"
	maxPayloadBytes = 64 << 10

	msgInvalidSignature = "invalid webhook signature"
	msgInvalidPayload   = "invalid webhook payload"
)

type ackResponse struct {
	Received bool   `json:"received"`
	Result   string `json:"result,omitempty"`
}

type Handler struct {
	parser  EventParser
	useCase ApplyWebhookUseCase
	logger  Logger
}

func NewHandler(parser EventParser, useCase ApplyWebhookUseCase, logger Logger) *Handler {
	return &Handler{
		parser:  parser,
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/webhook
// 2xx подтверждает событие, 5xx заставляет провайдера повторить доставку
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		h.logger.Warn("POST /payments/webhook - Failed to read body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPayload)
		return
	}

	event, err := h.parser.ParseWebhook(payload, r.Header.Get(signatureHeader))
	if err != nil {
		switch {
		case errors.Is(err, stripe.ErrIgnoredEvent):
			handlers.RespondJSON(w, http.StatusOK, ackResponse{Received: true, Result: "ignored"})

		case errors.Is(err, stripe.ErrInvalidSignature):
			h.logger.Warn("POST /payments/webhook - Invalid signature")
			handlers.RespondBadRequest(w, msgInvalidSignature)

		default:
			h.logger.Warn("POST /payments/webhook - Invalid payload: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPayload)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), event)
	if err != nil {
		if errors.Is(err, applyWebhook.ErrInvalidEvent) {
			h.logger.Warn("POST /payments/webhook - Invalid event %s: %v", event.ID, err)
			handlers.RespondBadRequest(w, msgInvalidPayload)
			return
		}
		h.logger.Error("POST /payments/webhook - Failed to apply event %s (%s): %v", event.ID, event.Type, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /payments/webhook - Event %s (%s): %s, booking_id=%d",
		event.ID, event.Type, result.Result, result.BookingID)
	handlers.RespondJSON(w, http.StatusOK, ackResponse{Received: true, Result: string(result.Result)})
}
