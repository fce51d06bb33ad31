package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

// CatalogRepository чтение каталога услуг
type CatalogRepository interface {
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
	GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByRoomAndDate бронирования помещения за день с указанными статусами
	GetByRoomAndDate(ctx context.Context, roomID int64, date time.Time, statuses []domain.Status) ([]*domain.Booking, error)
}

// Calendar календарь бизнеса: разбор даты и день недели
type Calendar interface {
	ParseDate(s string) (time.Time, error)
	WeekdayCode(date time.Time) string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
