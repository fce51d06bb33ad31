package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Minutes(t *testing.T) {
	tests := []struct {
		in   TimeString
		want int
	}{
		{"00:00", 0},
		{"09:30", 570},
		{"23:59", 1439},
	}
	for _, tt := range tests {
		got, err := tt.in.Minutes()
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestTimeString_Validate(t *testing.T) {
	for _, bad := range []TimeString{"", "9:00", "24:00", "12:60", "ab:cd", "12:000"} {
		assert.ErrorIs(t, bad.Validate(), ErrInvalidTimeString, bad)
	}
}

func TestFromMinutes_WrapsAroundDay(t *testing.T) {
	assert.Equal(t, TimeString("00:00"), FromMinutes(1440))
	assert.Equal(t, TimeString("01:30"), FromMinutes(1440+90))
	assert.Equal(t, TimeString("23:00"), FromMinutes(-60))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan("18:30:00"))
	assert.Equal(t, TimeString("18:30"), ts)

	require.NoError(t, ts.Scan([]byte("07:05")))
	assert.Equal(t, TimeString("07:05"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())
}
