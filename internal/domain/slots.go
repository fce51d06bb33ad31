package domain

import (
	"fmt"
	"math"

	"github.com/m04kA/SMC-RoomBooking/pkg/types"
)

// Slot временное окно бронирования
type Slot struct {
	Start types.TimeString
	End   types.TimeString
}

func (s Slot) String() string {
	return fmt.Sprintf("%s - %s", s.Start, s.End)
}

// AnnotatedSlot слот с признаком доступности
type AnnotatedSlot struct {
	Slot
	Available bool
}

// WindowMinutes переводит окно услуги в минуты.
// "00:00" считается концом суток (1440), а end <= start означает переход через полночь.
func WindowMinutes(start, end types.TimeString) (int, int, error) {
	s, err := boundaryMinutes(start)
	if err != nil {
		return 0, 0, err
	}
	e, err := boundaryMinutes(end)
	if err != nil {
		return 0, 0, err
	}
	if e <= s {
		e += types.MinutesPerDay
	}
	return s, e, nil
}

func boundaryMinutes(t types.TimeString) (int, error) {
	if t.IsMidnight() {
		return types.MinutesPerDay, nil
	}
	return t.Minutes()
}

// GenerateSlots строит слоты длительностью slotDurationHours с шагом stepMinutes.
// Пустой результат означает, что в окне не помещается ни одного слота.
func GenerateSlots(start, end types.TimeString, slotDurationHours float64, stepMinutes int) ([]Slot, error) {
	s, e, err := WindowMinutes(start, end)
	if err != nil {
		return nil, err
	}

	duration := durationMinutes(slotDurationHours)
	slots := make([]Slot, 0)
	if duration <= 0 || stepMinutes <= 0 {
		return slots, nil
	}

	for cursor := s; cursor+duration <= e; cursor += stepMinutes {
		slots = append(slots, Slot{
			Start: types.FromMinutes(cursor),
			End:   types.FromMinutes(cursor + duration),
		})
	}
	return slots, nil
}

// PackageWindow параметры генератора, при которых получается ровно один слот на всё окно
func PackageWindow(start, end types.TimeString) (float64, int, error) {
	s, e, err := WindowMinutes(start, end)
	if err != nil {
		return 0, 0, err
	}
	total := e - s
	return float64(total) / 60, total, nil
}

// WindowAnchor минута суток, с которой начинается окно услуги.
// Пустое начало окна дает 0.
func WindowAnchor(start types.TimeString) (int, error) {
	if start.IsZero() {
		return 0, nil
	}
	return start.Minutes()
}

// SlotBounds интервал слота в минутах от начала дня бронирования, конец не включается.
// Слот, начинающийся раньше anchor, относится к следующим суткам окна:
// при окне 22:00 - 02:00 слот "00:00 - 02:00" = [1440, 1560), а "23:00 - 01:00" = [1380, 1500).
func SlotBounds(slot Slot, anchor int) (int, int, error) {
	s, err := slot.Start.Minutes()
	if err != nil {
		return 0, 0, err
	}
	e, err := slot.End.Minutes()
	if err != nil {
		return 0, 0, err
	}
	if s < anchor {
		s += types.MinutesPerDay
	}
	for e <= s {
		e += types.MinutesPerDay
	}
	return s, e, nil
}

// Overlaps проверка пересечения полуоткрытых интервалов в окне, начинающемся с anchor.
// Граничащие слоты не пересекаются.
func Overlaps(a, b Slot, anchor int) (bool, error) {
	aStart, aEnd, err := SlotBounds(a, anchor)
	if err != nil {
		return false, err
	}
	bStart, bEnd, err := SlotBounds(b, anchor)
	if err != nil {
		return false, err
	}
	return aStart < bEnd && aEnd > bStart, nil
}

func durationMinutes(hours float64) int {
	return int(math.Round(hours * 60))
}
