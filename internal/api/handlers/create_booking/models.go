package create_booking

import (
	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	"github.com/m04kA/SMC-RoomBooking/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-RoomBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-RoomBooking/pkg/types"
)

type SlotRequest struct {
	Start string `json:"start"` // "10:00"
	End   string `json:"end"`   // "11:00"
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	FirstName      string        `json:"firstName"`
	LastName       string        `json:"lastName"`
	Email          string        `json:"email"`
	Phone          string        `json:"phone"`
	Date           string        `json:"date"` // "2025-01-06"
	ServiceID      int64         `json:"serviceId"`
	RoomID         int64         `json:"roomId"`
	TimeSlots      []SlotRequest `json:"timeSlots"`
	NumberOfPeople int           `json:"numberOfPeople"`
	PromoCode      string        `json:"promoCode,omitempty"`
	TotalPrice     *float64      `json:"totalPrice,omitempty"` // сумма на стороне клиента, только для аудита
}

// PriceBreakdown расчет стоимости
type PriceBreakdown struct {
	Subtotal         float64 `json:"subtotal"`
	PromoDiscount    float64 `json:"promoDiscount"`
	LoyaltyDiscount  float64 `json:"loyaltyDiscount"`
	Total            float64 `json:"total"`
	FreeSlotsAwarded int     `json:"freeSlotsAwarded"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Booking *models.BookingResponse `json:"booking"`
	Price   PriceBreakdown          `json:"price"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(manual bool) (*createBooking.Request, error) {
	slots := make([]domain.Slot, 0, len(r.TimeSlots))
	for _, s := range r.TimeSlots {
		start, err := types.NewTimeStringFromString(s.Start)
		if err != nil {
			return nil, err
		}
		end, err := types.NewTimeStringFromString(s.End)
		if err != nil {
			return nil, err
		}
		slots = append(slots, domain.Slot{Start: start, End: end})
	}

	return &createBooking.Request{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Phone:       r.Phone,
		Date:        r.Date,
		ServiceID:   r.ServiceID,
		RoomID:      r.RoomID,
		TimeSlots:   slots,
		PartySize:   r.NumberOfPeople,
		PromoCode:   r.PromoCode,
		ClientTotal: r.TotalPrice,
		Manual:      manual,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	out := &CreateBookingResponse{Booking: models.FromDomainBooking(resp.Booking)}
	if q := resp.Quote; q != nil {
		out.Price = PriceBreakdown{
			Subtotal:         q.Subtotal,
			PromoDiscount:    q.PromoDiscount,
			LoyaltyDiscount:  q.LoyaltyDiscount,
			Total:            q.Total,
			FreeSlotsAwarded: q.FreeSlotsAwarded,
		}
	}
	return out
}
