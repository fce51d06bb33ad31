package update_booking_status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-RoomBooking/internal/service/bookings"
	"github.com/m04kA/SMC-RoomBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-RoomBooking/pkg/logger"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

func serve(h *Handler, id, payload string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/bookings/"+id+"/status", strings.NewReader(payload))
	req = mux.SetURLVars(req, map[string]string{"bookingId": id})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name   string
		resp   *models.BookingResponse
		err    error
		status int
	}{
		{"updated", &models.BookingResponse{ID: 5, Status: "confirmed"}, nil, http.StatusOK},
		{"not found", nil, bookings.ErrBookingNotFound, http.StatusNotFound},
		{"illegal transition", nil, bookings.ErrIllegalTransition, http.StatusConflict},
		{"unknown status", nil, bookings.ErrInvalidInput, http.StatusBadRequest},
		{"slots taken", nil, bookings.ErrSlotTaken, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			svc.On("UpdateStatus", mock.Anything, int64(5), &models.UpdateStatusRequest{Status: "confirmed"}).
				Return(tt.resp, tt.err)

			rec := serve(NewHandler(svc, logger.Discard()), "5", `{"status":"confirmed"}`)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandle_InvalidID(t *testing.T) {
	svc := new(MockService)
	rec := serve(NewHandler(svc, logger.Discard()), "abc", `{"status":"confirmed"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}
