package cleanup_holds

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	"github.com/m04kA/SMC-RoomBooking/pkg/logger"
	"github.com/m04kA/SMC-RoomBooking/pkg/metrics"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) ExpireStale(ctx context.Context, now time.Time) ([]int64, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, n domain.Notification) error {
	return m.Called(ctx, n).Error(0)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

var now = time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC)

func newUseCase(repo *MockBookingRepository, dispatcher *MockDispatcher) *UseCase {
	uc := NewUseCase(repo, dispatcher, (*metrics.Metrics)(nil), logger.Discard())
	uc.timeProvider = fixedTime{t: now}
	return uc
}

func TestExecute_CancelsAndNotifies(t *testing.T) {
	repo := new(MockBookingRepository)
	dispatcher := new(MockDispatcher)
	repo.On("ExpireStale", mock.Anything, now).Return([]int64{3, 8}, nil)
	dispatcher.On("Dispatch", mock.Anything, mock.MatchedBy(func(n domain.Notification) bool {
		return n.Kind == domain.NotificationCancelled && n.Extra["reason"] == "expired"
	})).Return(nil).Twice()

	resp, err := newUseCase(repo, dispatcher).Execute(context.Background(), &Request{Trigger: TriggerScheduler})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.CleanedUp)
	assert.Equal(t, []int64{3, 8}, resp.BookingIDs)
	dispatcher.AssertExpectations(t)
}

func TestExecute_NothingToClean(t *testing.T) {
	repo := new(MockBookingRepository)
	dispatcher := new(MockDispatcher)
	repo.On("ExpireStale", mock.Anything, now).Return([]int64{}, nil)

	resp, err := newUseCase(repo, dispatcher).Execute(context.Background(), &Request{})

	require.NoError(t, err)
	assert.Equal(t, 0, resp.CleanedUp)
	dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestExecute_DispatchFailureIsLoggedOnly(t *testing.T) {
	repo := new(MockBookingRepository)
	dispatcher := new(MockDispatcher)
	repo.On("ExpireStale", mock.Anything, now).Return([]int64{3}, nil)
	dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return(errors.New("queue closed"))

	resp, err := newUseCase(repo, dispatcher).Execute(context.Background(), &Request{})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.CleanedUp)
}

func TestExecute_RepositoryFailure(t *testing.T) {
	repo := new(MockBookingRepository)
	repo.On("ExpireStale", mock.Anything, now).Return(nil, errors.New("timeout"))

	_, err := newUseCase(repo, new(MockDispatcher)).Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInternal)
}
