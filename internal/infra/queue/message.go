package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

// notificationMessage формат сообщения в очереди уведомлений
type notificationMessage struct {
	ID         string            `json:"id"`
	Kind       string            `json:"kind"`
	BookingID  int64             `json:"booking_id"`
	Extra      map[string]string `json:"extra,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

func encode(n domain.Notification) ([]byte, error) {
	return json.Marshal(notificationMessage{
		ID:         n.ID,
		Kind:       string(n.Kind),
		BookingID:  n.BookingID,
		Extra:      n.Extra,
		OccurredAt: n.OccurredAt,
	})
}

func decode(body []byte) (domain.Notification, error) {
	var m notificationMessage
	if err := json.Unmarshal(body, &m); err != nil {
		return domain.Notification{}, fmt.Errorf("unmarshal notification: %w", err)
	}
	if m.BookingID <= 0 || m.Kind == "" {
		return domain.Notification{}, fmt.Errorf("unmarshal notification: missing booking_id or kind")
	}
	return domain.Notification{
		ID:         m.ID,
		Kind:       domain.NotificationKind(m.Kind),
		BookingID:  m.BookingID,
		Extra:      m.Extra,
		OccurredAt: m.OccurredAt,
	}, nil
}
