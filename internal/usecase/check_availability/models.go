package check_availability

import (
	"time"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

// Request запрос проверки доступности слотов
type Request struct {
	Date      string // YYYY-MM-DD или RFC3339
	ServiceID int64
	RoomID    int64
}

// Response слоты услуги на дату с отметкой доступности
type Response struct {
	Available bool // услуга работает в этот день недели
	Weekday   string
	Date      time.Time
	Service   *domain.Service
	Slots     []domain.AnnotatedSlot
}

// FreeSlot ищет слот среди доступных
func (r *Response) FreeSlot(slot domain.Slot) bool {
	for _, s := range r.Slots {
		if s.Slot == slot {
			return s.Available
		}
	}
	return false
}
