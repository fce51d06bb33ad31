package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	promoModels "github.com/m04kA/SMC-RoomBooking/internal/service/promocodes/models"
	createBooking "github.com/m04kA/SMC-RoomBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidTime        = "invalid time slot, expected HH:MM"
	msgInvalidDate        = "Invalid date, expected YYYY-MM-DD"
	msgServiceNotFound    = "Service not found"
	msgRoomNotFound       = "Room not found"
	msgRoomUnavailable    = "Room is not available for booking"
	msgSlotNotAvailable   = "Selected time slot is no longer available"
	msgPromoNotFound      = "Promo code not found"
	msgPromoInactive      = "Promo code is not active"
	msgPromoExpired       = "Promo code has expired"
	msgPromoLimitReached  = "Promo code usage limit reached"
)

type Handler struct {
	useCase CreateBookingUseCase
	manual  bool
	logger  Logger
}

// NewHandler manual=true для ручного бронирования администратором
func NewHandler(useCase CreateBookingUseCase, manual bool, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		manual:  manual,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings, POST /api/v1/admin/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(h.manual)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse time slots: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var slotErr *createBooking.SlotError
		switch {
		case errors.As(err, &slotErr):
			h.logger.Warn("POST /bookings - Slot taken: room_id=%d, date=%s, slot=%s", req.RoomID, req.Date, slotErr.Slot)
			handlers.RespondConflict(w, handlers.CodeSlotConflict, slotErr.Error())

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot conflict: room_id=%d, date=%s", req.RoomID, req.Date)
			handlers.RespondConflict(w, handlers.CodeSlotConflict, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrPromoInvalid):
			msg, reason := promoRejection(err)
			h.logger.Warn("POST /bookings - Promo code %q rejected: %s", req.PromoCode, reason)
			handlers.RespondPromoInvalid(w, msg, reason)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrRoomNotFound):
			h.logger.Warn("POST /bookings - Room not found: room_id=%d", req.RoomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, createBooking.ErrRoomUnavailable):
			h.logger.Warn("POST /bookings - Room unavailable: room_id=%d", req.RoomID)
			handlers.RespondBadRequest(w, msgRoomUnavailable)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid date: %q", req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings - Failed to create booking: room_id=%d, service_id=%d, error=%v",
				req.RoomID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, status=%s, manual=%t",
		result.Booking.ID, result.Booking.Status, h.manual)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

func promoRejection(err error) (string, string) {
	switch {
	case errors.Is(err, createBooking.ErrPromoNotFound):
		return msgPromoNotFound, promoModels.ReasonNotFound
	case errors.Is(err, domain.ErrPromoInactive):
		return msgPromoInactive, promoModels.ReasonInactive
	case errors.Is(err, domain.ErrPromoExpired):
		return msgPromoExpired, promoModels.ReasonExpired
	case errors.Is(err, domain.ErrPromoLimitReached):
		return msgPromoLimitReached, promoModels.ReasonLimitReached
	default:
		return msgPromoNotFound, promoModels.ReasonNotFound
	}
}
