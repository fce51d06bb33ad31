package stripe

import "errors"

var (
	// ErrInvalidSignature подпись вебхука не прошла проверку
	ErrInvalidSignature = errors.New("stripe client: invalid webhook signature")

	// ErrIgnoredEvent событие не влияет на бронирования, его нужно подтвердить и пропустить
	ErrIgnoredEvent = errors.New("stripe client: event ignored")

	// ErrInvalidPayload тело события не удалось разобрать
	ErrInvalidPayload = errors.New("stripe client: invalid event payload")

	// ErrInternal ошибка обращения к Stripe API
	ErrInternal = errors.New("stripe client: internal error")
)
