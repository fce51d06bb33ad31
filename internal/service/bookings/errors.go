package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("Booking not found")

	// ErrIllegalTransition запрошенный переход статуса запрещен
	ErrIllegalTransition = errors.New("status transition is not allowed")

	// ErrStatusChanged статус изменился параллельно, повторите запрос
	ErrStatusChanged = errors.New("booking status changed concurrently")

	// ErrSlotTaken слоты брони успели занять, пока она их не удерживала
	ErrSlotTaken = errors.New("booking slots are taken by another booking")

	// ErrBookingExpired неоплаченное бронирование уже просрочено
	ErrBookingExpired = errors.New("booking has expired")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
