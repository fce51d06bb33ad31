package create_payment_session

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("Booking not found")

	// ErrNotPayable бронирование уже оплачено, отменено или возвращено
	ErrNotPayable = errors.New("booking is not awaiting payment")

	// ErrBookingExpired срок оплаты истек
	ErrBookingExpired = errors.New("booking has expired")

	// ErrNothingToPay итоговая сумма равна нулю
	ErrNothingToPay = errors.New("booking total is zero")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrProvider платежный провайдер недоступен или отклонил запрос
	ErrProvider = errors.New("create_payment_session: payment provider error")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_payment_session: internal error")
)
