package cleanup_holds

import (
	"net/http"

	"github.com/m04kA/SMC-RoomBooking/internal/api/handlers"
	cleanupHolds "github.com/m04kA/SMC-RoomBooking/internal/usecase/cleanup_holds"
)

type CleanupResponse struct {
	CleanedUp  int     `json:"cleanedUp"`
	BookingIDs []int64 `json:"bookingIds"`
}

type Handler struct {
	useCase CleanupHoldsUseCase
	logger  Logger
}

func NewHandler(useCase CleanupHoldsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/bookings/cleanup-holds
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context(), &cleanupHolds.Request{Trigger: cleanupHolds.TriggerAdmin})
	if err != nil {
		h.logger.Error("POST /admin/bookings/cleanup-holds - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/bookings/cleanup-holds - Cleaned up %d bookings", result.CleanedUp)
	handlers.RespondJSON(w, http.StatusOK, CleanupResponse{CleanedUp: result.CleanedUp, BookingIDs: result.BookingIDs})
}
