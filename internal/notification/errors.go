package notification

import "errors"

var (
	// ErrUnknownKind неизвестный тип уведомления
	ErrUnknownKind = errors.New("notification: unknown kind")

	// ErrSendFailed все попытки отправки исчерпаны
	ErrSendFailed = errors.New("notification: send failed")

	// ErrInternal ошибка чтения или записи бронирования
	ErrInternal = errors.New("notification: internal error")
)
