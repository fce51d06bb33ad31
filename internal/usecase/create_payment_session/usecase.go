package create_payment_session

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RoomBooking/internal/integrations/stripe"
	"github.com/m04kA/SMC-RoomBooking/pkg/ptr"
)

// UseCase создает сессию оплаты для неоплаченного бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	paymentRepo  PaymentRepository
	checkout     CheckoutClient
	currency     string
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	checkout CheckoutClient,
	currency string,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		paymentRepo:  paymentRepo,
		checkout:     checkout,
		currency:     currency,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case. Сумма берется из бронирования, клиентская не принимается
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}

	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CreatePaymentSession: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CreatePaymentSession: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
	}

	if !booking.Status.AwaitsPayment() {
		uc.logger.Warn("CreatePaymentSession: booking id=%d is %s", booking.ID, booking.Status)
		return nil, ErrNotPayable
	}
	if booking.IsExpired(uc.timeProvider.Now()) {
		uc.logger.Warn("CreatePaymentSession: booking id=%d has expired", booking.ID)
		return nil, ErrBookingExpired
	}

	amount := int64(math.Round(booking.Total * 100))
	if amount <= 0 {
		uc.logger.Warn("CreatePaymentSession: booking id=%d has zero total", booking.ID)
		return nil, ErrNothingToPay
	}

	session, err := uc.checkout.CreateCheckoutSession(ctx, stripe.CheckoutRequest{
		BookingID:     booking.ID,
		AmountCents:   amount,
		CustomerEmail: booking.Customer.Email,
	})
	if err != nil {
		uc.logger.Error("CreatePaymentSession: provider failed for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: %w", ErrProvider, err)
	}

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		payment := &domain.Payment{
			BookingID: booking.ID,
			Amount:    booking.Total,
			Currency:  uc.currency,
			Status:    domain.PaymentPending,
			SessionID: session.ID,
		}
		if session.PaymentIntentID != "" {
			payment.PaymentIntentID = ptr.Ptr(session.PaymentIntentID)
		}
		if _, err := uc.paymentRepo.Create(txCtx, payment); err != nil {
			return fmt.Errorf("%w: failed to store payment: %w", ErrInternal, err)
		}
		if err := uc.bookingRepo.SetStripeSession(txCtx, booking.ID, session.ID); err != nil {
			return fmt.Errorf("%w: failed to attach session: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("CreatePaymentSession: booking id=%d, session=%s: %v", booking.ID, session.ID, err)
		return nil, err
	}

	uc.logger.Info("CreatePaymentSession: session %s created for booking id=%d, amount=%d %s",
		session.ID, booking.ID, amount, uc.currency)

	return &Response{
		SessionID:   session.ID,
		URL:         session.URL,
		AmountCents: amount,
		Currency:    uc.currency,
	}, nil
}
