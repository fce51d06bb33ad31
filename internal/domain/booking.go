package domain

import (
	"strings"
	"time"
)

// Customer снимок данных клиента на момент бронирования
type Customer struct {
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	NumberOfPeople int
}

// NormalizedEmail email в нижнем регистре, по нему считается лояльность
func (c Customer) NormalizedEmail() string {
	return NormalizeEmail(c.Email)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Booking represents a room booking in the system
type Booking struct {
	ID          int64
	Customer    Customer
	RoomID      int64
	ServiceID   int64
	PromoCodeID *int64
	Date        time.Time // календарный день, время не учитывается
	TimeSlots   []Slot
	Total       float64
	Status      Status

	// SlotAnchor минута начала окна услуги, от нее считаются границы слотов в booking_slots.
	// Заполняется при создании, из БД не читается.
	SlotAnchor int

	ExpiresAt         *time.Time
	HoldExpiresAt     *time.Time
	ConfirmedAt       *time.Time
	CancelledAt       *time.Time
	RefundedAt        *time.Time
	HoldReleasedAt    *time.Time
	HoldReleaseReason *string

	StripeSessionID *string
	PaymentIntentID *string
	RefundID        *string

	FreeSlotsAwarded int
	IsManual         bool

	// Аудит цены
	OriginalServicePrice float64
	PriceAtCheckout      float64
	PricingDiscrepancy   *float64

	Notifications []NotificationReceipt

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PaymentStatus returns the payment-provider view of the booking
func (b *Booking) PaymentStatus() PaymentStatus {
	return b.Status.PaymentStatus()
}

// IsExpired true, если неоплаченная бронь просрочена на момент now
func (b *Booking) IsExpired(now time.Time) bool {
	switch b.Status {
	case StatusPending:
		return b.ExpiresAt != nil && b.ExpiresAt.Before(now)
	case StatusHold:
		return b.HoldExpiresAt != nil && b.HoldExpiresAt.Before(now)
	default:
		return false
	}
}

// NotificationSent отправлялось ли уже письмо данного типа
func (b *Booking) NotificationSent(kind NotificationKind) bool {
	for _, r := range b.Notifications {
		if r.Kind == kind {
			return true
		}
	}
	return false
}

// TransitionPatch поля, которые проставляются вместе со сменой статуса
type TransitionPatch struct {
	ExpiresAt         *time.Time
	ConfirmedAt       *time.Time
	CancelledAt       *time.Time
	RefundedAt        *time.Time
	HoldExpiresAt     *time.Time
	HoldReleasedAt    *time.Time
	HoldReleaseReason *string
	PaymentIntentID   *string
	RefundID          *string
}

// BookingsFilter фильтр для списка бронирований
type BookingsFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Status    *Status
	RoomID    *int64
	Email     *string
	Limit     int
	Offset    int
}

// LoyaltySnapshot история клиента для расчета бесплатного слота
type LoyaltySnapshot struct {
	ConfirmedCount   int // подтвержденные бронирования клиента
	FreeSlotsAwarded int // счетчик с последнего бронирования клиента
}
