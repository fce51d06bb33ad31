package domain

import "time"

// NotificationKind тип письма клиенту
type NotificationKind string

const (
	NotificationCreated   NotificationKind = "created"
	NotificationConfirmed NotificationKind = "confirmed"
	NotificationCancelled NotificationKind = "cancelled"
	NotificationRefunded  NotificationKind = "refunded"
)

// Notification событие для воркера уведомлений, публикуется после фиксации перехода
type Notification struct {
	ID         string
	Kind       NotificationKind
	BookingID  int64
	Extra      map[string]string
	OccurredAt time.Time
}

// NotificationReceipt отметка об отправленном письме
type NotificationReceipt struct {
	Kind      NotificationKind
	SentAt    time.Time
	MessageID string
}
