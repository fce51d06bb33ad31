package notification

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

// Message письмо клиенту
type Message struct {
	To      string
	Subject string
	Body    string
}

var subjects = map[domain.NotificationKind]string{
	domain.NotificationCreated:   "We received your booking #%d",
	domain.NotificationConfirmed: "Your booking #%d is confirmed",
	domain.NotificationCancelled: "Your booking #%d was cancelled",
	domain.NotificationRefunded:  "Refund issued for booking #%d",
}

// Render собирает текстовое письмо по типу уведомления
func Render(kind domain.NotificationKind, b *domain.Booking, extra map[string]string) (Message, error) {
	subject, ok := subjects[kind]
	if !ok {
		return Message{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	slots := make([]string, 0, len(b.TimeSlots))
	for _, s := range b.TimeSlots {
		slots = append(slots, s.String())
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Hello %s,\n\n", strings.TrimSpace(b.Customer.FirstName+" "+b.Customer.LastName))

	switch kind {
	case domain.NotificationCreated:
		sb.WriteString("Thank you for your booking. Please complete the payment to secure your slot.\n")
	case domain.NotificationConfirmed:
		sb.WriteString("Your payment was received and your booking is confirmed.\n")
	case domain.NotificationCancelled:
		if extra["reason"] == "expired" {
			sb.WriteString("Your booking was cancelled because the payment was not completed in time.\n")
		} else {
			sb.WriteString("Your booking has been cancelled.\n")
		}
	case domain.NotificationRefunded:
		sb.WriteString("Your payment has been refunded.\n")
		if id := extra["refund_id"]; id != "" {
			fmt.Fprintf(&sb, "Refund reference: %s\n", id)
		}
	}

	fmt.Fprintf(&sb, "\nBooking #%d\nDate: %s\nTime: %s\nGuests: %d\nTotal: %.2f\n",
		b.ID, b.Date.Format("2006-01-02"), strings.Join(slots, ", "), b.Customer.NumberOfPeople, b.Total)

	return Message{
		To:      b.Customer.Email,
		Subject: fmt.Sprintf(subject, b.ID),
		Body:    sb.String(),
	}, nil
}
