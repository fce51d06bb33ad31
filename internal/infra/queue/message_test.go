package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

func TestDecode_RejectsIncompleteMessages(t *testing.T) {
	_, err := decode([]byte(`{"kind":"created"}`))
	assert.Error(t, err)

	_, err = decode([]byte(`not json`))
	assert.Error(t, err)
}

func TestEncodeDecode_KeepsKindAndExtra(t *testing.T) {
	at := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	body, err := encode(domain.Notification{
		ID:         "n-1",
		Kind:       domain.NotificationRefunded,
		BookingID:  7,
		Extra:      map[string]string{"refund_id": "re_1"},
		OccurredAt: at,
	})
	require.NoError(t, err)

	n, err := decode(body)
	require.NoError(t, err)
	assert.Equal(t, domain.NotificationRefunded, n.Kind)
	assert.Equal(t, int64(7), n.BookingID)
	assert.Equal(t, "re_1", n.Extra["refund_id"])
	assert.True(t, at.Equal(n.OccurredAt))
}
