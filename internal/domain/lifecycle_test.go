package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialStatus(t *testing.T) {
	st, err := InitialStatus(EventCreate)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, st)
	assert.Equal(t, PaymentPending, st.PaymentStatus())

	st, err = InitialStatus(EventManualCreate)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, st)
	assert.Equal(t, PaymentPaid, st.PaymentStatus())

	_, err = InitialStatus(EventRefund)
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestTransition(t *testing.T) {
	tests := []struct {
		from Status
		ev   Event
		want Status
		ok   bool
	}{
		{StatusPending, EventPaymentSucceeded, StatusConfirmed, true},
		{StatusHold, EventPaymentSucceeded, StatusConfirmed, true},
		{StatusConfirmed, EventPaymentSucceeded, "", false},
		{StatusCancelled, EventPaymentSucceeded, "", false},
		{StatusPending, EventPaymentFailed, StatusCancelled, true},
		{StatusConfirmed, EventPaymentFailed, "", false},
		{StatusConfirmed, EventRefund, StatusRefunded, true},
		{StatusPending, EventRefund, "", false},
		{StatusRefunded, EventRefund, "", false},
		{StatusPending, EventExpire, StatusCancelled, true},
		{StatusHold, EventExpire, StatusCancelled, true},
		{StatusConfirmed, EventExpire, "", false},
		{StatusPending, EventPlaceHold, StatusHold, true},
		{StatusHold, EventPlaceHold, "", false},
		{StatusPending, EventCreate, "", false},
	}

	for _, tt := range tests {
		got, err := Transition(tt.from, tt.ev)
		if tt.ok {
			require.NoError(t, err, "%s on %s", tt.ev, tt.from)
			assert.Equal(t, tt.want, got)
		} else {
			assert.ErrorIs(t, err, ErrIllegalTransition, "%s on %s", tt.ev, tt.from)
		}
	}
}

func TestPaymentStatusDerivedFromStatus(t *testing.T) {
	assert.Equal(t, PaymentPending, StatusPending.PaymentStatus())
	assert.Equal(t, PaymentPending, StatusHold.PaymentStatus())
	assert.Equal(t, PaymentPaid, StatusConfirmed.PaymentStatus())
	assert.Equal(t, PaymentFailed, StatusCancelled.PaymentStatus())
	assert.Equal(t, PaymentRefunded, StatusRefunded.PaymentStatus())
}

func TestAdminTransition(t *testing.T) {
	assert.NoError(t, AdminTransition(StatusPending, StatusConfirmed))
	assert.NoError(t, AdminTransition(StatusHold, StatusPending))
	assert.NoError(t, AdminTransition(StatusConfirmed, StatusRefunded))
	assert.NoError(t, AdminTransition(StatusCancelled, StatusCancelled))

	assert.ErrorIs(t, AdminTransition(StatusRefunded, StatusPending), ErrIllegalTransition)
	assert.ErrorIs(t, AdminTransition(StatusCancelled, StatusConfirmed), ErrIllegalTransition)
	assert.ErrorIs(t, AdminTransition(StatusConfirmed, StatusPending), ErrIllegalTransition)
	assert.ErrorIs(t, AdminTransition(StatusPending, Status("done")), ErrUnknownStatus)
}

func TestTerminalStatusesHaveNoAdminExits(t *testing.T) {
	for _, from := range AllStatuses {
		if !from.IsTerminal() {
			continue
		}
		for _, to := range AllStatuses {
			if to == from {
				continue
			}
			assert.False(t, CanAdminTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestStatusBlocks(t *testing.T) {
	assert.True(t, StatusHold.Blocks(true))
	assert.False(t, StatusHold.Blocks(false))
	assert.True(t, StatusPending.Blocks(false))
	assert.True(t, StatusConfirmed.Blocks(false))
	assert.False(t, StatusCancelled.Blocks(true))
	assert.False(t, StatusRefunded.Blocks(true))
}

func TestBlockingStatuses(t *testing.T) {
	assert.ElementsMatch(t, []Status{StatusPending, StatusConfirmed}, BlockingStatuses(false))
	assert.ElementsMatch(t, []Status{StatusPending, StatusHold, StatusConfirmed}, BlockingStatuses(true))
}

func TestSourcesReturnsCopy(t *testing.T) {
	src := Sources(EventPaymentSucceeded)
	src[0] = StatusRefunded
	assert.Equal(t, []Status{StatusPending, StatusHold}, Sources(EventPaymentSucceeded))
}
