package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBooking/internal/infra/storage/booking"
)

const (
	DefaultMaxAttempts = 3
	DefaultBackoffBase = 2 * time.Second
)

// Worker отправляет письмо по уведомлению из очереди.
// Тип письма отправляется не больше одного раза на бронирование.
type Worker struct {
	bookingRepo  BookingRepository
	sender       Sender
	metrics      Metrics
	maxAttempts  int
	backoffBase  time.Duration
	timeProvider TimeProvider
	logger       Logger
	sleep        func(ctx context.Context, d time.Duration) bool
}

// NewWorker создает воркер. Нулевые maxAttempts и backoffBase заменяются значениями по умолчанию
func NewWorker(
	bookingRepo BookingRepository,
	sender Sender,
	metrics Metrics,
	maxAttempts int,
	backoffBase time.Duration,
	logger Logger,
) *Worker {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if backoffBase <= 0 {
		backoffBase = DefaultBackoffBase
	}
	return &Worker{
		bookingRepo:  bookingRepo,
		sender:       sender,
		metrics:      metrics,
		maxAttempts:  maxAttempts,
		backoffBase:  backoffBase,
		timeProvider: realTimeProvider{},
		logger:       logger,
		sleep:        sleepCtx,
	}
}

// Handle обрабатывает одно уведомление
func (w *Worker) Handle(ctx context.Context, n domain.Notification) error {
	booking, err := w.bookingRepo.GetByID(ctx, n.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			// бронь удалили администратором, отправлять некому
			w.logger.Warn("notification: booking id=%d not found, dropping %s", n.BookingID, n.Kind)
			w.metrics.IncNotification(string(n.Kind), "dropped")
			return nil
		}
		return fmt.Errorf("%w: load booking id=%d: %w", ErrInternal, n.BookingID, err)
	}

	if booking.NotificationSent(n.Kind) {
		w.logger.Info("notification: %s already sent for booking id=%d", n.Kind, booking.ID)
		w.metrics.IncNotification(string(n.Kind), "duplicate")
		return nil
	}

	msg, err := Render(n.Kind, booking, n.Extra)
	if err != nil {
		w.metrics.IncNotification(string(n.Kind), "dropped")
		return err
	}

	messageID, err := w.send(ctx, msg)
	if err != nil {
		w.metrics.IncNotification(string(n.Kind), "failed")
		return err
	}

	recorded, err := w.bookingRepo.MarkNotificationSent(ctx, booking.ID, domain.NotificationReceipt{
		Kind:      n.Kind,
		SentAt:    w.timeProvider.Now(),
		MessageID: messageID,
	})
	if err != nil {
		// письмо ушло, повторная доставка из очереди отправит его еще раз
		w.logger.Error("notification: failed to record %s for booking id=%d: %v", n.Kind, booking.ID, err)
	} else if !recorded {
		w.logger.Warn("notification: %s for booking id=%d was recorded concurrently", n.Kind, booking.ID)
	}

	w.metrics.IncNotification(string(n.Kind), "sent")
	w.logger.Info("notification: %s sent for booking id=%d, message=%s", n.Kind, booking.ID, messageID)
	return nil
}

// send повторяет отправку с экспоненциальной задержкой base, 2*base, ...
func (w *Worker) send(ctx context.Context, msg Message) (string, error) {
	var lastErr error
	delay := w.backoffBase
	for attempt := 1; attempt <= w.maxAttempts; attempt++ {
		id, err := w.sender.Send(ctx, msg)
		if err == nil {
			return id, nil
		}
		lastErr = err
		w.logger.Warn("notification: send to %s failed (attempt %d/%d): %v", msg.To, attempt, w.maxAttempts, err)

		if attempt == w.maxAttempts {
			break
		}
		if !w.sleep(ctx, delay) {
			return "", fmt.Errorf("%w: %w", ErrSendFailed, ctx.Err())
		}
		delay *= 2
	}
	return "", fmt.Errorf("%w: %w", ErrSendFailed, lastErr)
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
