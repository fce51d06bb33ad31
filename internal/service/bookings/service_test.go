package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RoomBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-RoomBooking/pkg/logger"
	"github.com/m04kA/SMC-RoomBooking/pkg/ptr"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Booking), args.Int(1), args.Error(2)
}

func (m *MockBookingRepository) Transition(ctx context.Context, id int64, from []domain.Status, to domain.Status, patch domain.TransitionPatch) (bool, error) {
	args := m.Called(ctx, id, from, to, patch)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPromoRepository struct {
	mock.Mock
}

func (m *MockPromoRepository) IncrementUsage(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, n domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

var now = time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)

func newService() (*Service, *MockBookingRepository, *MockPromoRepository, *MockDispatcher) {
	repo := new(MockBookingRepository)
	promos := new(MockPromoRepository)
	dispatcher := new(MockDispatcher)
	s := NewService(repo, promos, dispatcher, inlineTx{}, logger.Discard())
	s.timeProvider = fixedTime{t: now}
	return s, repo, promos, dispatcher
}

func TestGetByID_NotFound(t *testing.T) {
	s, repo, _, _ := newService()
	repo.On("GetByID", mock.Anything, int64(9)).Return(nil, bookingRepo.ErrBookingNotFound)

	_, err := s.GetByID(context.Background(), 9)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByID_DerivesPaymentStatus(t *testing.T) {
	s, repo, _, _ := newService()
	repo.On("GetByID", mock.Anything, int64(9)).Return(&domain.Booking{ID: 9, Status: domain.StatusHold}, nil)

	resp, err := s.GetByID(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, "hold", resp.Status)
	assert.Equal(t, "pending", resp.PaymentStatus)
	assert.NotNil(t, resp.TimeSlots)
}

func TestPlaceHold(t *testing.T) {
	s, repo, _, _ := newService()
	expires := now.Add(5 * time.Minute)
	repo.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Booking{ID: 1, Status: domain.StatusPending, ExpiresAt: &expires}, nil)
	holdUntil := now.Add(domain.HoldTTL)
	repo.On("Transition", mock.Anything, int64(1), []domain.Status{domain.StatusPending}, domain.StatusHold,
		domain.TransitionPatch{HoldExpiresAt: &holdUntil}).Return(true, nil)

	resp, err := s.PlaceHold(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "hold", resp.Status)
	assert.Equal(t, holdUntil, *resp.HoldExpiresAt)
}

func TestPlaceHold_Rejections(t *testing.T) {
	t.Run("expired", func(t *testing.T) {
		s, repo, _, _ := newService()
		expired := now.Add(-time.Minute)
		repo.On("GetByID", mock.Anything, int64(1)).
			Return(&domain.Booking{ID: 1, Status: domain.StatusPending, ExpiresAt: &expired}, nil)

		_, err := s.PlaceHold(context.Background(), 1)
		assert.ErrorIs(t, err, ErrBookingExpired)
	})

	t.Run("already confirmed", func(t *testing.T) {
		s, repo, _, _ := newService()
		repo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Booking{ID: 1, Status: domain.StatusConfirmed}, nil)

		_, err := s.PlaceHold(context.Background(), 1)
		assert.ErrorIs(t, err, ErrIllegalTransition)
	})

	t.Run("lost race", func(t *testing.T) {
		s, repo, _, _ := newService()
		repo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Booking{ID: 1, Status: domain.StatusPending}, nil)
		repo.On("Transition", mock.Anything, int64(1), mock.Anything, mock.Anything, mock.Anything).Return(false, nil)

		_, err := s.PlaceHold(context.Background(), 1)
		assert.ErrorIs(t, err, ErrStatusChanged)
	})
}

func TestUpdateStatus_ConfirmsAndNotifies(t *testing.T) {
	s, repo, promos, dispatcher := newService()
	repo.On("GetByID", mock.Anything, int64(4)).
		Return(&domain.Booking{ID: 4, Status: domain.StatusHold, PromoCodeID: ptr.Ptr(int64(2))}, nil)
	repo.On("Transition", mock.Anything, int64(4), []domain.Status{domain.StatusHold}, domain.StatusConfirmed,
		mock.MatchedBy(func(p domain.TransitionPatch) bool {
			return p.ConfirmedAt != nil && p.HoldReleaseReason != nil && *p.HoldReleaseReason == "admin"
		})).Return(true, nil)
	promos.On("IncrementUsage", mock.Anything, int64(2)).Return(true, nil)
	dispatcher.On("Dispatch", mock.Anything, mock.MatchedBy(func(n domain.Notification) bool {
		return n.Kind == domain.NotificationConfirmed && n.BookingID == 4
	})).Return(nil)

	resp, err := s.UpdateStatus(context.Background(), 4, &models.UpdateStatusRequest{Status: "Confirmed"})

	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, "paid", resp.PaymentStatus)
	promos.AssertExpectations(t)
	dispatcher.AssertExpectations(t)
}

func TestUpdateStatus_HoldBackToPendingRenewsExpiry(t *testing.T) {
	s, repo, _, dispatcher := newService()
	repo.On("GetByID", mock.Anything, int64(4)).Return(&domain.Booking{ID: 4, Status: domain.StatusHold}, nil)
	repo.On("Transition", mock.Anything, int64(4), []domain.Status{domain.StatusHold}, domain.StatusPending,
		mock.MatchedBy(func(p domain.TransitionPatch) bool {
			return p.ExpiresAt != nil && p.ExpiresAt.Equal(now.Add(domain.PendingTTL))
		})).Return(true, nil)

	resp, err := s.UpdateStatus(context.Background(), 4, &models.UpdateStatusRequest{Status: "pending"})

	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestUpdateStatus_SameStatusIsNoop(t *testing.T) {
	s, repo, _, dispatcher := newService()
	repo.On("GetByID", mock.Anything, int64(4)).Return(&domain.Booking{ID: 4, Status: domain.StatusCancelled}, nil)

	resp, err := s.UpdateStatus(context.Background(), 4, &models.UpdateStatusRequest{Status: "cancelled"})

	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	repo.AssertNotCalled(t, "Transition", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestUpdateStatus_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		from   domain.Status
		target string
		err    error
	}{
		{"unknown status", domain.StatusPending, "paid", ErrInvalidInput},
		{"terminal cancelled", domain.StatusCancelled, "confirmed", ErrIllegalTransition},
		{"terminal refunded", domain.StatusRefunded, "pending", ErrIllegalTransition},
		{"pending to refunded", domain.StatusPending, "refunded", ErrIllegalTransition},
		{"confirmed to cancelled", domain.StatusConfirmed, "cancelled", ErrIllegalTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, repo, _, _ := newService()
			repo.On("GetByID", mock.Anything, int64(4)).Return(&domain.Booking{ID: 4, Status: tt.from}, nil)

			_, err := s.UpdateStatus(context.Background(), 4, &models.UpdateStatusRequest{Status: tt.target})
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestList_AppliesDefaults(t *testing.T) {
	s, repo, _, _ := newService()
	status := "confirmed"
	repo.On("List", mock.Anything, mock.MatchedBy(func(f domain.BookingsFilter) bool {
		return f.Limit == models.DefaultLimit && f.Status != nil && *f.Status == domain.StatusConfirmed
	})).Return([]*domain.Booking{{ID: 1, Status: domain.StatusConfirmed}}, 7, nil)

	resp, err := s.List(context.Background(), &models.ListBookingsRequest{Status: &status})

	require.NoError(t, err)
	assert.Equal(t, 7, resp.Total)
	assert.Len(t, resp.Bookings, 1)
}

func TestList_InvalidStatus(t *testing.T) {
	s, _, _, _ := newService()
	status := "archived"

	_, err := s.List(context.Background(), &models.ListBookingsRequest{Status: &status})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListByEmail_NormalisesEmail(t *testing.T) {
	s, repo, _, _ := newService()
	repo.On("List", mock.Anything, mock.MatchedBy(func(f domain.BookingsFilter) bool {
		return f.Email != nil && *f.Email == "ada@example.com"
	})).Return([]*domain.Booking{}, 0, nil)

	resp, err := s.ListByEmail(context.Background(), "  Ada@Example.COM ")

	require.NoError(t, err)
	assert.Empty(t, resp.Bookings)
	assert.NotNil(t, resp.Bookings)
}

func TestDelete_NotFound(t *testing.T) {
	s, repo, _, _ := newService()
	repo.On("Delete", mock.Anything, int64(3)).Return(bookingRepo.ErrBookingNotFound)

	assert.ErrorIs(t, s.Delete(context.Background(), 3), ErrBookingNotFound)
}

func TestUpdateStatus_SlotsTakenWhileReleased(t *testing.T) {
	s, repo, promos, dispatcher := newService()
	repo.On("GetByID", mock.Anything, int64(4)).
		Return(&domain.Booking{ID: 4, Status: domain.StatusHold, PromoCodeID: ptr.Ptr(int64(2))}, nil)
	repo.On("Transition", mock.Anything, int64(4), []domain.Status{domain.StatusHold}, domain.StatusConfirmed, mock.Anything).
		Return(false, bookingRepo.ErrSlotNotAvailable)

	_, err := s.UpdateStatus(context.Background(), 4, &models.UpdateStatusRequest{Status: "confirmed"})

	assert.ErrorIs(t, err, ErrSlotTaken)
	promos.AssertNotCalled(t, "IncrementUsage", mock.Anything, mock.Anything)
	dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}
