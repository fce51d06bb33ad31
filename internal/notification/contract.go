package notification

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

// BookingRepository чтение брони и отметки об отправке
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	MarkNotificationSent(ctx context.Context, bookingID int64, receipt domain.NotificationReceipt) (bool, error)
}

// Sender доставка письма. Возвращает идентификатор сообщения
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// Metrics метрики отправки
type Metrics interface {
	IncNotification(kind, result string)
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

// Dispatcher публикация уведомлений, реализуется очередью или InlineDispatcher
type Dispatcher interface {
	Dispatch(ctx context.Context, n domain.Notification) error
}
