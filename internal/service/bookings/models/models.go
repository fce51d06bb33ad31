package models

import (
	"time"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// Request модели

// UpdateStatusRequest запрос на ручную смену статуса администратором
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ListBookingsRequest запрос на получение списка бронирований (админка)
type ListBookingsRequest struct {
	StartDate *time.Time // Начало периода (опционально)
	EndDate   *time.Time // Конец периода (опционально)
	Status    *string    // Фильтр по статусу (опционально)
	RoomID    *int64     // Фильтр по помещению (опционально)
	Limit     int
	Offset    int
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		RoomID:    r.RoomID,
		Limit:     r.Limit,
		Offset:    r.Offset,
	}

	if filter.Limit <= 0 {
		filter.Limit = DefaultLimit
	}
	if filter.Limit > MaxLimit {
		filter.Limit = MaxLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	if r.Status != nil {
		status, err := domain.ParseStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// SlotResponse временной слот
type SlotResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// NotificationResponse отметка об отправленном письме
type NotificationResponse struct {
	Kind      string    `json:"kind"`
	SentAt    time.Time `json:"sentAt"`
	MessageID string    `json:"messageId,omitempty"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID             int64          `json:"id"`
	FirstName      string         `json:"firstName"`
	LastName       string         `json:"lastName"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone"`
	NumberOfPeople int            `json:"numberOfPeople"`
	RoomID         int64          `json:"roomId"`
	ServiceID      int64          `json:"serviceId"`
	PromoCodeID    *int64         `json:"promoCodeId,omitempty"`
	BookingDate    string         `json:"bookingDate"` // "2025-10-15"
	TimeSlots      []SlotResponse `json:"timeSlots"`
	Total          float64        `json:"total"`
	Status         string         `json:"status"`
	PaymentStatus  string         `json:"paymentStatus"`

	ExpiresAt         *time.Time `json:"expiresAt,omitempty"`
	HoldExpiresAt     *time.Time `json:"holdExpiresAt,omitempty"`
	ConfirmedAt       *time.Time `json:"confirmedAt,omitempty"`
	CancelledAt       *time.Time `json:"cancelledAt,omitempty"`
	RefundedAt        *time.Time `json:"refundedAt,omitempty"`
	HoldReleasedAt    *time.Time `json:"holdReleasedAt,omitempty"`
	HoldReleaseReason *string    `json:"holdReleaseReason,omitempty"`

	StripeSessionID *string `json:"stripeSessionId,omitempty"`
	PaymentIntentID *string `json:"paymentIntentId,omitempty"`
	RefundID        *string `json:"refundId,omitempty"`

	FreeSlotsAwarded     int      `json:"freeSlotsAwarded"`
	IsManual             bool     `json:"isManual"`
	OriginalServicePrice float64  `json:"originalServicePrice"`
	PriceAtCheckout      float64  `json:"priceAtCheckout"`
	PricingDiscrepancy   *float64 `json:"pricingDiscrepancy,omitempty"`

	Notifications []NotificationResponse `json:"notifications"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                   b.ID,
		FirstName:            b.Customer.FirstName,
		LastName:             b.Customer.LastName,
		Email:                b.Customer.Email,
		Phone:                b.Customer.Phone,
		NumberOfPeople:       b.Customer.NumberOfPeople,
		RoomID:               b.RoomID,
		ServiceID:            b.ServiceID,
		PromoCodeID:          b.PromoCodeID,
		BookingDate:          b.Date.Format(domain.DateFormat),
		TimeSlots:            make([]SlotResponse, 0, len(b.TimeSlots)),
		Total:                b.Total,
		Status:               string(b.Status),
		PaymentStatus:        string(b.PaymentStatus()),
		ExpiresAt:            b.ExpiresAt,
		HoldExpiresAt:        b.HoldExpiresAt,
		ConfirmedAt:          b.ConfirmedAt,
		CancelledAt:          b.CancelledAt,
		RefundedAt:           b.RefundedAt,
		HoldReleasedAt:       b.HoldReleasedAt,
		HoldReleaseReason:    b.HoldReleaseReason,
		StripeSessionID:      b.StripeSessionID,
		PaymentIntentID:      b.PaymentIntentID,
		RefundID:             b.RefundID,
		FreeSlotsAwarded:     b.FreeSlotsAwarded,
		IsManual:             b.IsManual,
		OriginalServicePrice: b.OriginalServicePrice,
		PriceAtCheckout:      b.PriceAtCheckout,
		PricingDiscrepancy:   b.PricingDiscrepancy,
		Notifications:        make([]NotificationResponse, 0, len(b.Notifications)),
		CreatedAt:            b.CreatedAt,
		UpdatedAt:            b.UpdatedAt,
	}

	for _, s := range b.TimeSlots {
		resp.TimeSlots = append(resp.TimeSlots, SlotResponse{Start: s.Start.String(), End: s.End.String()})
	}
	for _, n := range b.Notifications {
		resp.Notifications = append(resp.Notifications, NotificationResponse{
			Kind:      string(n.Kind),
			SentAt:    n.SentAt,
			MessageID: n.MessageID,
		})
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, total int) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
		Total:    total,
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
