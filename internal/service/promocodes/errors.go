package promocodes

import "errors"

var (
	// ErrPromoCodeNotFound возвращается, когда промокод не найден
	ErrPromoCodeNotFound = errors.New("Promo code not found")

	// ErrPromoCodeExists возвращается при попытке создать дублирующий код
	ErrPromoCodeExists = errors.New("Promo code already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("promocodes.service: internal error")
)
