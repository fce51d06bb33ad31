package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, int, error)
	Transition(ctx context.Context, id int64, from []domain.Status, to domain.Status, patch domain.TransitionPatch) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// PromoCodeRepository учет использования промокодов
type PromoCodeRepository interface {
	IncrementUsage(ctx context.Context, id int64) (bool, error)
}

// Dispatcher отправка уведомлений
type Dispatcher interface {
	Dispatch(ctx context.Context, n domain.Notification) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now()
}
