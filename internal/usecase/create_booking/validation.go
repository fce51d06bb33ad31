package create_booking

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.FirstName) == "" {
		return fmt.Errorf("%w: firstName is required", ErrInvalidInput)
	}

	if _, err := mail.ParseAddress(strings.TrimSpace(req.Email)); err != nil {
		return fmt.Errorf("%w: email is invalid", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Phone) == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}

	if req.RoomID <= 0 {
		return fmt.Errorf("%w: roomId must be positive", ErrInvalidInput)
	}

	if req.PartySize < 1 {
		return fmt.Errorf("%w: numberOfPeople must be at least 1", ErrInvalidInput)
	}

	if len(req.TimeSlots) == 0 {
		return fmt.Errorf("%w: at least one time slot is required", ErrInvalidInput)
	}

	seen := make(map[domain.Slot]struct{}, len(req.TimeSlots))
	for _, slot := range req.TimeSlots {
		if err := slot.Start.Validate(); err != nil {
			return fmt.Errorf("%w: invalid slot start %q", ErrInvalidInput, slot.Start)
		}
		if err := slot.End.Validate(); err != nil {
			return fmt.Errorf("%w: invalid slot end %q", ErrInvalidInput, slot.End)
		}
		if _, ok := seen[slot]; ok {
			return fmt.Errorf("%w: duplicate slot %s", ErrInvalidInput, slot)
		}
		seen[slot] = struct{}{}
	}

	return nil
}

// validateParty проверяет количество людей против лимитов услуги и помещения. Ноль означает без лимита
func validateParty(partySize int, service *domain.Service, room *domain.Room) error {
	if service.MaxPeopleAllowed > 0 && partySize > service.MaxPeopleAllowed {
		return fmt.Errorf("%w: service allows at most %d people", ErrInvalidInput, service.MaxPeopleAllowed)
	}
	if room.MaxCapacity > 0 && partySize > room.MaxCapacity {
		return fmt.Errorf("%w: room fits at most %d people", ErrInvalidInput, room.MaxCapacity)
	}
	return nil
}

// validateDistinctSlots запрещает пересекающиеся слоты внутри одной брони
func validateDistinctSlots(slots []domain.Slot, anchor int) error {
	for i := range slots {
		for j := i + 1; j < len(slots); j++ {
			overlaps, err := domain.Overlaps(slots[i], slots[j], anchor)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			if overlaps {
				return fmt.Errorf("%w: slots %s and %s overlap", ErrInvalidInput, slots[i], slots[j])
			}
		}
	}
	return nil
}
