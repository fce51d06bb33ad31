package apply_webhook

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

// IdempotencyStore быстрая дедупликация событий по id
type IdempotencyStore interface {
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	GetBySessionID(ctx context.Context, sessionID string) (*domain.Payment, error)
	GetByPaymentIntentID(ctx context.Context, intentID string) (*domain.Payment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus, intentID, refundID *string) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Transition(ctx context.Context, id int64, from []domain.Status, to domain.Status, patch domain.TransitionPatch) (bool, error)
}

// PromoCodeRepository учет использования промокодов
type PromoCodeRepository interface {
	IncrementUsage(ctx context.Context, id int64) (bool, error)
}

// Dispatcher отправка уведомлений
type Dispatcher interface {
	Dispatch(ctx context.Context, n domain.Notification) error
}

// Metrics доменные метрики
type Metrics interface {
	IncWebhookEvent(eventType, result string)
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

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
