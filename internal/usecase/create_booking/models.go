package create_booking

import (
	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	"github.com/m04kA/SMC-RoomBooking/internal/service/pricing"
)

// Request модель запроса на создание бронирования
type Request struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string

	Date      string // YYYY-MM-DD или RFC3339
	ServiceID int64
	RoomID    int64
	TimeSlots []domain.Slot
	PartySize int

	PromoCode   string   // опционально
	ClientTotal *float64 // сумма, которую видел клиент; сохраняется только для аудита

	Manual bool // ручное бронирование администратором, сразу подтверждено
}

// Response созданное бронирование и расчет стоимости
type Response struct {
	Booking *domain.Booking
	Quote   *pricing.Quote
}
