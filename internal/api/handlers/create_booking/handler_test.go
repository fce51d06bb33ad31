package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	"github.com/m04kA/SMC-RoomBooking/internal/service/pricing"
	createBooking "github.com/m04kA/SMC-RoomBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-RoomBooking/pkg/logger"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*createBooking.Response), args.Error(1)
}

const body = `{
	"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com", "phone": "+6591234567",
	"date": "2025-01-06", "serviceId": 1, "roomId": 2,
	"timeSlots": [{"start": "10:00", "end": "11:00"}],
	"numberOfPeople": 2, "promoCode": "save10"
}`

func serve(h *Handler, payload string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(payload)))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handlers.ErrorResponse {
	var e handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	return e
}

func TestHandle_Created(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *createBooking.Request) bool {
		return !r.Manual && r.PartySize == 2 && len(r.TimeSlots) == 1 && r.TimeSlots[0].Start == "10:00"
	})).Return(&createBooking.Response{
		Booking: &domain.Booking{ID: 501, Status: domain.StatusPending, TimeSlots: []domain.Slot{{Start: "10:00", End: "11:00"}}},
		Quote:   &pricing.Quote{Subtotal: 22, PromoDiscount: 2.2, Total: 19.8},
	}, nil)

	rec := serve(NewHandler(uc, false, logger.Discard()), body)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp CreateBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(501), resp.Booking.ID)
	assert.Equal(t, 19.8, resp.Price.Total)
}

func TestHandle_ManualFlag(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *createBooking.Request) bool { return r.Manual })).
		Return(&createBooking.Response{Booking: &domain.Booking{ID: 1, Status: domain.StatusConfirmed}}, nil)

	rec := serve(NewHandler(uc, true, logger.Discard()), body)

	assert.Equal(t, http.StatusCreated, rec.Code)
	uc.AssertExpectations(t)
}

func TestHandle_ErrorMapping(t *testing.T) {
	slot := domain.Slot{Start: "10:00", End: "11:00"}
	tests := []struct {
		name   string
		err    error
		status int
		code   string
		reason string
	}{
		{"slot taken on recheck", fmt.Errorf("tx: %w", &createBooking.SlotError{Slot: slot}), http.StatusConflict, handlers.CodeSlotConflict, ""},
		{"storage guard", createBooking.ErrSlotNotAvailable, http.StatusConflict, handlers.CodeSlotConflict, ""},
		{"promo expired", fmt.Errorf("%w: %w", createBooking.ErrPromoInvalid, domain.ErrPromoExpired), http.StatusBadRequest, handlers.CodePromoInvalid, "expired"},
		{"promo missing", fmt.Errorf("%w: %w", createBooking.ErrPromoInvalid, createBooking.ErrPromoNotFound), http.StatusBadRequest, handlers.CodePromoInvalid, "not_found"},
		{"room missing", createBooking.ErrRoomNotFound, http.StatusNotFound, handlers.CodeNotFound, ""},
		{"validation", fmt.Errorf("%w: phone is required", createBooking.ErrInvalidInput), http.StatusBadRequest, handlers.CodeValidation, ""},
		{"internal", fmt.Errorf("%w: boom", createBooking.ErrInternal), http.StatusInternalServerError, handlers.CodeInternal, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := serve(NewHandler(uc, false, logger.Discard()), body)

			assert.Equal(t, tt.status, rec.Code)
			e := decodeError(t, rec)
			assert.Equal(t, tt.code, e.Code)
			assert.Equal(t, tt.reason, e.Reason)
		})
	}
}

func TestHandle_SlotConflictNamesTheSlot(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("Execute", mock.Anything, mock.Anything).
		Return(nil, &createBooking.SlotError{Slot: domain.Slot{Start: "10:00", End: "11:00"}})

	rec := serve(NewHandler(uc, false, logger.Discard()), body)

	assert.Equal(t, "Slot 10:00 - 11:00 is no longer available", decodeError(t, rec).Error)
}

func TestHandle_BadInput(t *testing.T) {
	uc := new(MockUseCase)
	h := NewHandler(uc, false, logger.Discard())

	assert.Equal(t, http.StatusBadRequest, serve(h, `{"firstName":`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, `{"timeSlots":[{"start":"25:00","end":"26:00"}]}`).Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
