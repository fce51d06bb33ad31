package check_availability

import (
	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	checkAvailability "github.com/m04kA/SMC-RoomBooking/internal/usecase/check_availability"
)

// CheckAvailabilityRequest HTTP request model
type CheckAvailabilityRequest struct {
	Date      string `json:"date"` // "2025-01-06"
	ServiceID int64  `json:"serviceId"`
	RoomID    int64  `json:"roomId"`
}

type SlotResponse struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Available bool   `json:"available"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date              string         `json:"date"`
	Weekday           string         `json:"weekday"`
	Available         bool           `json:"available"`
	ServiceID         int64          `json:"serviceId"`
	RoomID            int64          `json:"roomId"`
	SlotDurationHours float64        `json:"slotDurationHours"`
	PricePerSlot      float64        `json:"pricePerSlot"`
	Slots             []SlotResponse `json:"slots"`
}

func (r *CheckAvailabilityRequest) ToUseCaseRequest() *checkAvailability.Request {
	return &checkAvailability.Request{Date: r.Date, ServiceID: r.ServiceID, RoomID: r.RoomID}
}

func FromUseCaseResponse(roomID int64, resp *checkAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		Weekday:   resp.Weekday,
		Available: resp.Available,
		RoomID:    roomID,
		Slots:     make([]SlotResponse, 0, len(resp.Slots)),
	}
	if resp.Service != nil {
		out.ServiceID = resp.Service.ID
		out.SlotDurationHours = resp.Service.SlotDurationHours
		out.PricePerSlot = resp.Service.PricePerSlot
	}
	for _, s := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			Start:     s.Start.String(),
			End:       s.End.String(),
			Available: s.Available,
		})
	}
	return out
}
