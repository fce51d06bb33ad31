package domain

import (
	"time"

	"github.com/m04kA/SMC-RoomBooking/pkg/types"
)

// CategoryType определяет, как для услуг категории строятся слоты
type CategoryType string

const (
	CategoryHourly  CategoryType = "hourly"
	CategoryPackage CategoryType = "package" // один слот на всё окно услуги
	CategoryOther   CategoryType = "other"
)

// Category группа услуг
type Category struct {
	ID        int64
	Name      string
	Type      CategoryType
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPackage true для категории с единственным слотом на весь интервал
func (c *Category) IsPackage() bool {
	return c.Type == CategoryPackage
}

// TimeRange окно работы услуги. End <= Start означает переход через полночь
type TimeRange struct {
	Start types.TimeString
	End   types.TimeString
}

// Service бронируемая услуга
type Service struct {
	ID                int64
	CategoryID        int64
	Name              string
	Description       *string
	AvailableDays     []string
	TimeRange         TimeRange
	SlotDurationHours float64
	PricePerSlot      float64
	MaxPeopleAllowed  int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsAvailableOn проверяет, работает ли услуга в указанный день недели
func (s *Service) IsAvailableOn(weekdayCode string) bool {
	for _, d := range s.AvailableDays {
		if d == weekdayCode {
			return true
		}
	}
	return false
}

// RoomStatus состояние помещения
type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomMaintenance RoomStatus = "maintenance"
	RoomUnavailable RoomStatus = "unavailable"
)

// Room физическое помещение. Пересечения слотов проверяются в рамках одного помещения
type Room struct {
	ID          int64
	Title       string
	MaxCapacity int
	Status      RoomStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (r *Room) IsBookable() bool {
	return r.Status == RoomAvailable
}
