package create_payment_session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RoomBooking/internal/integrations/stripe"
	"github.com/m04kA/SMC-RoomBooking/pkg/logger"
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

func (m *MockBookingRepository) SetStripeSession(ctx context.Context, id int64, sessionID string) error {
	return m.Called(ctx, id, sessionID).Error(0)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	args := m.Called(ctx, p)
	return p, args.Error(0)
}

type MockCheckout struct {
	mock.Mock
}

func (m *MockCheckout) CreateCheckoutSession(ctx context.Context, req stripe.CheckoutRequest) (*stripe.CheckoutSession, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.CheckoutSession), args.Error(1)
}

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

var now = time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)

func newUseCase(bookings *MockBookingRepository, payments *MockPaymentRepository, checkout *MockCheckout) *UseCase {
	uc := NewUseCase(bookings, payments, checkout, "sgd", inlineTx{}, logger.Discard())
	uc.timeProvider = fixedTime{t: now}
	return uc
}

func pendingBooking(total float64) *domain.Booking {
	expires := now.Add(10 * time.Minute)
	return &domain.Booking{
		ID:        42,
		Customer:  domain.Customer{Email: "ada@example.com"},
		Total:     total,
		Status:    domain.StatusPending,
		ExpiresAt: &expires,
	}
}

func TestExecute_CreatesSessionAndPayment(t *testing.T) {
	bookings := new(MockBookingRepository)
	payments := new(MockPaymentRepository)
	checkout := new(MockCheckout)
	bookings.On("GetByID", mock.Anything, int64(42)).Return(pendingBooking(17.82), nil)
	checkout.On("CreateCheckoutSession", mock.Anything, stripe.CheckoutRequest{
		BookingID: 42, AmountCents: 1782, CustomerEmail: "ada@example.com",
	}).Return(&stripe.CheckoutSession{ID: "cs_1", URL: "https://pay/cs_1"}, nil)
	payments.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.BookingID == 42 && p.SessionID == "cs_1" && p.Status == domain.PaymentPending && p.Currency == "sgd"
	})).Return(nil)
	bookings.On("SetStripeSession", mock.Anything, int64(42), "cs_1").Return(nil)

	resp, err := newUseCase(bookings, payments, checkout).Execute(context.Background(), &Request{BookingID: 42})

	require.NoError(t, err)
	assert.Equal(t, "https://pay/cs_1", resp.URL)
	assert.Equal(t, int64(1782), resp.AmountCents)
	bookings.AssertExpectations(t)
	payments.AssertExpectations(t)
}

func TestExecute_Rejections(t *testing.T) {
	expired := pendingBooking(10)
	past := now.Add(-time.Minute)
	expired.ExpiresAt = &past

	confirmed := pendingBooking(10)
	confirmed.Status = domain.StatusConfirmed

	tests := []struct {
		name    string
		booking *domain.Booking
		repoErr error
		err     error
	}{
		{"not found", nil, bookingRepo.ErrBookingNotFound, ErrBookingNotFound},
		{"already paid", confirmed, nil, ErrNotPayable},
		{"expired", expired, nil, ErrBookingExpired},
		{"free booking", pendingBooking(0), nil, ErrNothingToPay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := new(MockBookingRepository)
			checkout := new(MockCheckout)
			if tt.booking != nil {
				bookings.On("GetByID", mock.Anything, int64(42)).Return(tt.booking, nil)
			} else {
				bookings.On("GetByID", mock.Anything, int64(42)).Return(nil, tt.repoErr)
			}

			_, err := newUseCase(bookings, new(MockPaymentRepository), checkout).
				Execute(context.Background(), &Request{BookingID: 42})

			assert.ErrorIs(t, err, tt.err)
			checkout.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_ProviderFailure(t *testing.T) {
	bookings := new(MockBookingRepository)
	payments := new(MockPaymentRepository)
	checkout := new(MockCheckout)
	bookings.On("GetByID", mock.Anything, int64(42)).Return(pendingBooking(9.9), nil)
	checkout.On("CreateCheckoutSession", mock.Anything, mock.Anything).Return(nil, errors.New("api down"))

	_, err := newUseCase(bookings, payments, checkout).Execute(context.Background(), &Request{BookingID: 42})

	assert.ErrorIs(t, err, ErrProvider)
	payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
