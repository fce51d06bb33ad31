package apply_webhook

import "errors"

var (
	// ErrInvalidEvent событие без обязательных полей
	ErrInvalidEvent = errors.New("apply_webhook: invalid payment event")

	// ErrInternal возвращается при внутренних ошибках usecase, провайдер повторит доставку
	ErrInternal = errors.New("apply_webhook: internal error")
)
