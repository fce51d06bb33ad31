package update_booking_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBooking/internal/service/bookings"
	"github.com/m04kA/SMC-RoomBooking/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "invalid booking id"
	msgInvalidRequestBody = "invalid request body"
	msgNotFound           = "Booking not found"
	msgIllegalTransition  = "Status transition is not allowed"
	msgStatusChanged      = "Booking status changed, please retry"
	msgSlotTaken          = "Booking slots are already taken by another booking"
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

// Handle PUT /api/v1/admin/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PUT /admin/bookings/{id}/status - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.service.UpdateStatus(r.Context(), bookingID, &req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PUT /admin/bookings/{id}/status - Invalid status %q", req.Status)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, bookings.ErrIllegalTransition):
			h.logger.Warn("PUT /admin/bookings/{id}/status - Illegal transition: booking_id=%d, to=%s", bookingID, req.Status)
			handlers.RespondConflict(w, handlers.CodeStatusConflict, msgIllegalTransition)

		case errors.Is(err, bookings.ErrStatusChanged):
			handlers.RespondConflict(w, handlers.CodeStatusConflict, msgStatusChanged)

		case errors.Is(err, bookings.ErrSlotTaken):
			h.logger.Warn("PUT /admin/bookings/{id}/status - Slots taken: booking_id=%d", bookingID)
			handlers.RespondConflict(w, handlers.CodeSlotConflict, msgSlotTaken)

		default:
			h.logger.Error("PUT /admin/bookings/{id}/status - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/bookings/{id}/status - Status updated: booking_id=%d, status=%s", bookingID, booking.Status)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
