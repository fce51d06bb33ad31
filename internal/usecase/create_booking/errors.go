package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("Service not found")

	// ErrRoomNotFound возвращается, когда помещение не найдено
	ErrRoomNotFound = errors.New("Room not found")

	// ErrRoomUnavailable помещение на обслуживании или закрыто
	ErrRoomUnavailable = errors.New("create_booking: room is not available for booking")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("Invalid date")

	// ErrSlotNotAvailable возвращается, когда выбранный слот уже занят
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrPromoInvalid промокод не найден или не может быть применен
	ErrPromoInvalid = errors.New("create_booking: promo code is invalid")

	// ErrPromoNotFound промокод не существует
	ErrPromoNotFound = errors.New("create_booking: promo code not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// SlotError конкретный слот, который успели занять
type SlotError struct {
	Slot domain.Slot
}

func (e *SlotError) Error() string {
	return fmt.Sprintf("Slot %s is no longer available", e.Slot)
}

func (e *SlotError) Unwrap() error {
	return ErrSlotNotAvailable
}
