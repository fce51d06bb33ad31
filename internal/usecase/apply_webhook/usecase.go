package apply_webhook

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBooking/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/SMC-RoomBooking/internal/infra/storage/payment"
)

// UseCase применяет асинхронные результаты оплаты к бронированиям. Повторная доставка безопасна
type UseCase struct {
	store        IdempotencyStore
	paymentRepo  PaymentRepository
	bookingRepo  BookingRepository
	promoRepo    PromoCodeRepository
	dispatcher   Dispatcher
	metrics      Metrics
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	store IdempotencyStore,
	paymentRepo PaymentRepository,
	bookingRepo BookingRepository,
	promoRepo PromoCodeRepository,
	dispatcher Dispatcher,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		store:        store,
		paymentRepo:  paymentRepo,
		bookingRepo:  bookingRepo,
		promoRepo:    promoRepo,
		dispatcher:   dispatcher,
		metrics:      metrics,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute применяет событие оплаты.
// Ошибка означает, что событие не применено и провайдер должен повторить доставку.
func (uc *UseCase) Execute(ctx context.Context, event *domain.PaymentEvent) (*Response, error) {
	lifecycleEvent, err := lifecycleEventFor(event)
	if err != nil {
		uc.logger.Warn("ApplyWebhook: %v", err)
		return nil, err
	}

	uc.logger.Info("ApplyWebhook: event id=%s, type=%s, session=%s, intent=%s",
		event.ID, event.Type, event.SessionID, event.PaymentIntentID)

	// 1. Быстрая дедупликация. Недоступность хранилища не блокирует обработку:
	// условные UPDATE в БД делают повтор безопасным.
	acquired, err := uc.store.Acquire(ctx, event.ID)
	if err != nil {
		uc.logger.Warn("ApplyWebhook: idempotency store unavailable for event id=%s: %v", event.ID, err)
		acquired = true
	}
	if !acquired {
		uc.logger.Info("ApplyWebhook: event id=%s already processed", event.ID)
		uc.metrics.IncWebhookEvent(string(event.Type), string(ResultDuplicate))
		return &Response{Result: ResultDuplicate}, nil
	}

	now := uc.timeProvider.Now()
	resp := &Response{}

	// 2. Платеж, бронирование и промокод меняются в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		payment, err := uc.findPayment(txCtx, event)
		if err != nil {
			return err
		}
		if payment == nil {
			resp.Result = ResultUnknownPayment
			return nil
		}
		resp.BookingID = payment.BookingID

		booking, err := uc.bookingRepo.GetByID(txCtx, payment.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("ApplyWebhook: booking id=%d of payment id=%d no longer exists", payment.BookingID, payment.ID)
				resp.Result = ResultUnknownPayment
				return nil
			}
			uc.logger.Error("ApplyWebhook: failed to load booking id=%d: %v", payment.BookingID, err)
			return fmt.Errorf("%w: load booking: %w", ErrInternal, err)
		}

		target := domain.Target(lifecycleEvent)
		intentID := optional(event.PaymentIntentID)
		refundID := optional(event.RefundID)

		if _, err := domain.Transition(booking.Status, lifecycleEvent); err != nil {
			if lifecycleEvent == domain.EventPaymentSucceeded && booking.Status == domain.StatusCancelled {
				// деньги пришли после отмены брони, слот уже мог быть занят повторно
				uc.logger.Warn("ApplyWebhook: payment id=%d succeeded for cancelled booking id=%d, manual refund required",
					payment.ID, booking.ID)
				if err := uc.updatePayment(txCtx, payment.ID, domain.PaymentPaid, intentID, refundID); err != nil {
					return err
				}
			} else {
				uc.logger.Info("ApplyWebhook: booking id=%d is %s, %s does not apply", booking.ID, booking.Status, lifecycleEvent)
			}
			resp.Result = ResultNoop
			return nil
		}

		patch := transitionPatch(lifecycleEvent, now, intentID, refundID)
		transitioned, err := uc.bookingRepo.Transition(txCtx, booking.ID, domain.Sources(lifecycleEvent), target, patch)
		if errors.Is(err, bookingRepo.ErrSlotNotAvailable) {
			// hold не удерживал слоты, и их успели забронировать
			uc.logger.Warn("ApplyWebhook: payment id=%d succeeded but slots of booking id=%d are taken, manual refund required",
				payment.ID, booking.ID)
			if err := uc.updatePayment(txCtx, payment.ID, domain.PaymentPaid, intentID, refundID); err != nil {
				return err
			}
			resp.Result = ResultNoop
			return nil
		}
		if err != nil {
			uc.logger.Error("ApplyWebhook: failed to move booking id=%d to %s: %v", booking.ID, target, err)
			return fmt.Errorf("%w: transition booking: %w", ErrInternal, err)
		}
		if !transitioned {
			resp.Result = ResultNoop
			return nil
		}

		if err := uc.updatePayment(txCtx, payment.ID, target.PaymentStatus(), intentID, refundID); err != nil {
			return err
		}

		// промокод засчитывается только при реальном переходе в confirmed
		if lifecycleEvent == domain.EventPaymentSucceeded && booking.PromoCodeID != nil {
			ok, err := uc.promoRepo.IncrementUsage(txCtx, *booking.PromoCodeID)
			if err != nil {
				uc.logger.Error("ApplyWebhook: failed to increment promo id=%d usage: %v", *booking.PromoCodeID, err)
				return fmt.Errorf("%w: increment promo usage: %w", ErrInternal, err)
			}
			if !ok {
				uc.logger.Warn("ApplyWebhook: promo id=%d reached its usage limit before booking id=%d was paid",
					*booking.PromoCodeID, booking.ID)
			}
		}

		resp.Result = ResultApplied
		return nil
	})
	if err != nil {
		if releaseErr := uc.store.Release(ctx, event.ID); releaseErr != nil {
			uc.logger.Error("ApplyWebhook: failed to release event id=%s: %v", event.ID, releaseErr)
		}
		uc.metrics.IncWebhookEvent(string(event.Type), "error")
		return nil, err
	}

	uc.metrics.IncWebhookEvent(string(event.Type), string(resp.Result))
	uc.logger.Info("ApplyWebhook: event id=%s: %s (booking id=%d)", event.ID, resp.Result, resp.BookingID)

	// 3. Уведомление после фиксации транзакции
	if resp.Result == ResultApplied {
		kind := notificationFor(lifecycleEvent)
		if err := uc.dispatcher.Dispatch(ctx, domain.Notification{
			Kind:       kind,
			BookingID:  resp.BookingID,
			Extra:      map[string]string{"paymentEvent": event.ID},
			OccurredAt: now,
		}); err != nil {
			uc.logger.Error("ApplyWebhook: failed to dispatch %s for booking id=%d: %v", kind, resp.BookingID, err)
		}
	}

	return resp, nil
}

func (uc *UseCase) updatePayment(ctx context.Context, id int64, status domain.PaymentStatus, intentID, refundID *string) error {
	if err := uc.paymentRepo.UpdateStatus(ctx, id, status, intentID, refundID); err != nil {
		uc.logger.Error("ApplyWebhook: failed to update payment id=%d: %v", id, err)
		return fmt.Errorf("%w: update payment: %w", ErrInternal, err)
	}
	return nil
}

// findPayment nil без ошибки означает неизвестный платеж
func (uc *UseCase) findPayment(ctx context.Context, event *domain.PaymentEvent) (*domain.Payment, error) {
	var (
		payment *domain.Payment
		err     error
	)
	if event.Type == domain.PaymentEventCompleted {
		payment, err = uc.paymentRepo.GetBySessionID(ctx, event.SessionID)
	} else {
		payment, err = uc.paymentRepo.GetByPaymentIntentID(ctx, event.PaymentIntentID)
	}

	if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
		uc.logger.Warn("ApplyWebhook: no payment for event id=%s (session=%s, intent=%s)",
			event.ID, event.SessionID, event.PaymentIntentID)
		return nil, nil
	}
	if err != nil {
		uc.logger.Error("ApplyWebhook: failed to find payment for event id=%s: %v", event.ID, err)
		return nil, fmt.Errorf("%w: find payment: %w", ErrInternal, err)
	}
	return payment, nil
}

func lifecycleEventFor(event *domain.PaymentEvent) (domain.Event, error) {
	if event == nil || event.ID == "" {
		return "", fmt.Errorf("%w: missing event id", ErrInvalidEvent)
	}
	switch event.Type {
	case domain.PaymentEventCompleted:
		if event.SessionID == "" {
			return "", fmt.Errorf("%w: missing session id", ErrInvalidEvent)
		}
		return domain.EventPaymentSucceeded, nil
	case domain.PaymentEventFailed:
		if event.PaymentIntentID == "" {
			return "", fmt.Errorf("%w: missing payment intent", ErrInvalidEvent)
		}
		return domain.EventPaymentFailed, nil
	case domain.PaymentEventRefunded:
		if event.PaymentIntentID == "" {
			return "", fmt.Errorf("%w: missing payment intent", ErrInvalidEvent)
		}
		return domain.EventRefund, nil
	default:
		return "", fmt.Errorf("%w: unknown type %q", ErrInvalidEvent, event.Type)
	}
}

func transitionPatch(ev domain.Event, now time.Time, intentID, refundID *string) domain.TransitionPatch {
	patch := domain.TransitionPatch{PaymentIntentID: intentID}
	switch ev {
	case domain.EventPaymentSucceeded:
		patch.ConfirmedAt = &now
	case domain.EventPaymentFailed:
		patch.CancelledAt = &now
	case domain.EventRefund:
		patch.RefundedAt = &now
		patch.RefundID = refundID
	}
	return patch
}

func notificationFor(ev domain.Event) domain.NotificationKind {
	switch ev {
	case domain.EventPaymentSucceeded:
		return domain.NotificationConfirmed
	case domain.EventRefund:
		return domain.NotificationRefunded
	default:
		return domain.NotificationCancelled
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
