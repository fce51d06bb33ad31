package cleanup_holds

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

// UseCase отменяет неоплаченные бронирования с истекшим сроком
type UseCase struct {
	bookingRepo  BookingRepository
	dispatcher   Dispatcher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, dispatcher Dispatcher, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		dispatcher:   dispatcher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет очистку. Повторный запуск ничего не меняет
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	trigger := req.Trigger
	if trigger == "" {
		trigger = TriggerAdmin
	}
	now := uc.timeProvider.Now()

	ids, err := uc.bookingRepo.ExpireStale(ctx, now)
	if err != nil {
		uc.logger.Error("CleanupHolds: failed to expire stale bookings: %v", err)
		return nil, fmt.Errorf("%w: expire stale bookings: %w", ErrInternal, err)
	}

	uc.metrics.AddHoldsExpired(trigger, len(ids))
	if len(ids) == 0 {
		return &Response{CleanedUp: 0, BookingIDs: []int64{}}, nil
	}

	uc.logger.Info("CleanupHolds: cancelled %d expired bookings (trigger=%s)", len(ids), trigger)

	for _, id := range ids {
		err := uc.dispatcher.Dispatch(ctx, domain.Notification{
			Kind:       domain.NotificationCancelled,
			BookingID:  id,
			Extra:      map[string]string{"reason": domain.HoldReleaseExpired},
			OccurredAt: now,
		})
		if err != nil {
			uc.logger.Error("CleanupHolds: failed to dispatch cancellation for booking id=%d: %v", id, err)
		}
	}

	return &Response{CleanedUp: len(ids), BookingIDs: ids}, nil
}
