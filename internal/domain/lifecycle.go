package domain

import (
	"errors"
	"fmt"
	"slices"
)

// Status состояние бронирования
type Status string

const (
	StatusPending   Status = "pending"   // ожидает оплаты, есть ExpiresAt
	StatusHold      Status = "hold"      // короткая резервация, есть HoldExpiresAt
	StatusConfirmed Status = "confirmed" // оплачено или создано администратором
	StatusCancelled Status = "cancelled" // оплата не прошла, бронь истекла или отменена
	StatusRefunded  Status = "refunded"  // деньги возвращены
)

// PaymentStatus состояние оплаты со стороны платежного провайдера
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// ErrIllegalTransition переход между состояниями запрещен
var ErrIllegalTransition = errors.New("domain: illegal booking status transition")

// ErrUnknownStatus неизвестный статус
var ErrUnknownStatus = errors.New("domain: unknown booking status")

// AllStatuses все статусы бронирования
var AllStatuses = []Status{StatusPending, StatusHold, StatusConfirmed, StatusCancelled, StatusRefunded}

// ParseStatus разбирает статус из строки
func ParseStatus(s string) (Status, error) {
	for _, st := range AllStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// PaymentStatus статус оплаты однозначно определяется статусом бронирования,
// поэтому комбинации вроде cancelled+paid непредставимы.
func (s Status) PaymentStatus() PaymentStatus {
	switch s {
	case StatusConfirmed:
		return PaymentPaid
	case StatusCancelled:
		return PaymentFailed
	case StatusRefunded:
		return PaymentRefunded
	default:
		return PaymentPending
	}
}

// IsTerminal из этого статуса переходов нет
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusRefunded
}

// AwaitsPayment бронирование ещё не оплачено и может истечь
func (s Status) AwaitsPayment() bool {
	return s == StatusPending || s == StatusHold
}

// BlockingStatuses статусы, занимающие слоты помещения
func BlockingStatuses(holdBlocks bool) []Status {
	if holdBlocks {
		return []Status{StatusPending, StatusHold, StatusConfirmed}
	}
	return []Status{StatusPending, StatusConfirmed}
}

// Blocks занимает ли бронирование в этом статусе свои слоты
func (s Status) Blocks(holdBlocks bool) bool {
	return slices.Contains(BlockingStatuses(holdBlocks), s)
}

// Event событие жизненного цикла
type Event string

const (
	EventCreate           Event = "create"
	EventManualCreate     Event = "manual_create"
	EventPlaceHold        Event = "place_hold"
	EventPaymentSucceeded Event = "payment_succeeded"
	EventPaymentFailed    Event = "payment_failed"
	EventRefund           Event = "refund"
	EventExpire           Event = "expire"
)

type transition struct {
	from []Status
	to   Status
}

var transitions = map[Event]transition{
	EventCreate:           {to: StatusPending},
	EventManualCreate:     {to: StatusConfirmed},
	EventPlaceHold:        {from: []Status{StatusPending}, to: StatusHold},
	EventPaymentSucceeded: {from: []Status{StatusPending, StatusHold}, to: StatusConfirmed},
	EventPaymentFailed:    {from: []Status{StatusPending, StatusHold}, to: StatusCancelled},
	EventRefund:           {from: []Status{StatusConfirmed}, to: StatusRefunded},
	EventExpire:           {from: []Status{StatusPending, StatusHold}, to: StatusCancelled},
}

// InitialStatus статус нового бронирования для событий создания
func InitialStatus(ev Event) (Status, error) {
	t, ok := transitions[ev]
	if !ok || len(t.from) != 0 {
		return "", fmt.Errorf("%w: %s is not a creation event", ErrIllegalTransition, ev)
	}
	return t.to, nil
}

// Transition вычисляет новый статус для события
func Transition(from Status, ev Event) (Status, error) {
	t, ok := transitions[ev]
	if !ok || len(t.from) == 0 {
		return "", fmt.Errorf("%w: unknown event %s", ErrIllegalTransition, ev)
	}
	for _, s := range t.from {
		if s == from {
			return t.to, nil
		}
	}
	return "", fmt.Errorf("%w: %s on %s", ErrIllegalTransition, ev, from)
}

// Sources статусы, из которых событие допустимо. Используются в условных UPDATE
func Sources(ev Event) []Status {
	t := transitions[ev]
	out := make([]Status, len(t.from))
	copy(out, t.from)
	return out
}

// Target статус после события
func Target(ev Event) Status {
	return transitions[ev].to
}

var adminTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusHold:      {StatusPending, StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusRefunded},
	StatusCancelled: {},
	StatusRefunded:  {},
}

// CanAdminTransition разрешен ли ручной перевод статуса администратором.
// Перевод в тот же статус не является изменением и всегда допустим.
func CanAdminTransition(from, to Status) bool {
	if from == to {
		return true
	}
	for _, s := range adminTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// AdminTransition проверяет ручной перевод статуса
func AdminTransition(from, to Status) error {
	if _, err := ParseStatus(string(to)); err != nil {
		return err
	}
	if !CanAdminTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
	}
	return nil
}
