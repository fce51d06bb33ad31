package domain

import "time"

// Payment платеж через внешний провайдер, связывает сессию оплаты с бронированием
type Payment struct {
	ID              int64
	BookingID       int64
	Amount          float64
	Currency        string
	Status          PaymentStatus
	SessionID       string
	PaymentIntentID *string
	RefundID        *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PaymentEventType нормализованный тип события провайдера
type PaymentEventType string

const (
	PaymentEventCompleted PaymentEventType = "checkout.completed"
	PaymentEventFailed    PaymentEventType = "payment.failed"
	PaymentEventRefunded  PaymentEventType = "refund.succeeded"
)

// PaymentEvent асинхронный результат оплаты
type PaymentEvent struct {
	ID              string // id события у провайдера, используется для дедупликации
	Type            PaymentEventType
	SessionID       string
	PaymentIntentID string
	RefundID        string
}
