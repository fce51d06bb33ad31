package cleanup_holds

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// ExpireStale отменяет просроченные pending и hold бронирования и возвращает их id
	ExpireStale(ctx context.Context, now time.Time) ([]int64, error)
}

// Dispatcher отправка уведомлений
type Dispatcher interface {
	Dispatch(ctx context.Context, n domain.Notification) error
}

// Metrics доменные метрики
type Metrics interface {
	AddHoldsExpired(trigger string, n int)
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

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
