package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	"github.com/m04kA/SMC-RoomBooking/internal/service/pricing"
	"github.com/m04kA/SMC-RoomBooking/internal/usecase/check_availability"
)

// AvailabilityChecker повторная проверка слотов внутри транзакции
type AvailabilityChecker interface {
	Execute(ctx context.Context, req *check_availability.Request) (*check_availability.Response, error)
}

// RoomRepository чтение помещений
type RoomRepository interface {
	GetRoomByID(ctx context.Context, id int64) (*domain.Room, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	CountConfirmedByEmail(ctx context.Context, email string) (int, error)
	GetLatestByEmail(ctx context.Context, email string) (*domain.Booking, error)
}

// PromoCodeRepository интерфейс репозитория промокодов
type PromoCodeRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.PromoCode, error)
	IncrementUsage(ctx context.Context, id int64) (bool, error)
}

// PricingEngine расчет стоимости
type PricingEngine interface {
	Quote(in pricing.Input) (*pricing.Quote, error)
}

// Dispatcher отправка уведомлений
type Dispatcher interface {
	Dispatch(ctx context.Context, n domain.Notification) error
}

// Metrics доменные метрики
type Metrics interface {
	IncBookingCreated(kind string)
	IncSlotConflict(stage string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
