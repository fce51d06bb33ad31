package notification

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

// InlineDispatcher обрабатывает уведомления в фоне внутри процесса, когда брокер выключен.
// Недоставленные уведомления теряются при остановке.
type InlineDispatcher struct {
	worker  *Worker
	timeout time.Duration
	logger  Logger
}

func NewInlineDispatcher(worker *Worker, timeout time.Duration, logger Logger) *InlineDispatcher {
	return &InlineDispatcher{worker: worker, timeout: timeout, logger: logger}
}

// Dispatch не блокирует вызывающего
func (d *InlineDispatcher) Dispatch(_ context.Context, n domain.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		if err := d.worker.Handle(ctx, n); err != nil {
			d.logger.Error("notification: inline %s for booking id=%d failed: %v", n.Kind, n.BookingID, err)
		}
	}()
	return nil
}
