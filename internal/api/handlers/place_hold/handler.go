package place_hold

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBooking/internal/service/bookings"
)

const (
	msgInvalidBookingID = "invalid booking id"
	msgNotFound         = "Booking not found"
	msgNotPending       = "Only pending bookings can be put on hold"
	msgExpired          = "Booking has expired"
	msgStatusChanged    = "Booking status changed, please retry"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/hold
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/hold - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, err := h.service.PlaceHold(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrIllegalTransition):
			h.logger.Warn("POST /bookings/{id}/hold - Not pending: booking_id=%d", bookingID)
			handlers.RespondConflict(w, handlers.CodeStatusConflict, msgNotPending)

		case errors.Is(err, bookings.ErrBookingExpired):
			handlers.RespondConflict(w, handlers.CodeStatusConflict, msgExpired)

		case errors.Is(err, bookings.ErrStatusChanged):
			handlers.RespondConflict(w, handlers.CodeStatusConflict, msgStatusChanged)

		default:
			h.logger.Error("POST /bookings/{id}/hold - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/hold - Hold placed: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
