package businesscal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_PlainDate(t *testing.T) {
	cal := MustNew("")

	d, err := cal.ParseDate("2025-03-02")
	require.NoError(t, err)

	assert.Equal(t, "Sun", cal.WeekdayCode(d))
	assert.Equal(t, "2025-03-02", cal.FormatDate(d))
	assert.Equal(t, 0, d.Hour())
}

// 2025-03-02T20:00Z уже понедельник 3 марта в Сингапуре (UTC+8)
func TestParseDate_RFC3339UsesBusinessTimezone(t *testing.T) {
	cal := MustNew("Asia/Singapore")

	d, err := cal.ParseDate("2025-03-02T20:00:00Z")
	require.NoError(t, err)

	assert.Equal(t, "2025-03-03", cal.FormatDate(d))
	assert.Equal(t, "Mon", cal.WeekdayCode(d))
}

func TestParseDate_Invalid(t *testing.T) {
	cal := MustNew("")
	for _, in := range []string{"", "tomorrow", "2025-13-01", "02/03/2025"} {
		_, err := cal.ParseDate(in)
		assert.ErrorIs(t, err, ErrInvalidDate, in)
	}
}

func TestNew_UnknownTimezone(t *testing.T) {
	_, err := New("Mars/Olympus")
	assert.Error(t, err)
}

func TestNow_InBusinessTimezone(t *testing.T) {
	cal := MustNew("Asia/Singapore")
	cal.now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }

	assert.Equal(t, 8, cal.Now().Hour())
	assert.Equal(t, "Asia/Singapore", cal.Location().String())
}

// DATE из Postgres приходит полночью UTC; день недели не должен сдвигаться
func TestWeekdayCode_DateColumnValue(t *testing.T) {
	cal := MustNew("America/Los_Angeles")
	d := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "Sun", cal.WeekdayCode(d))
	assert.Equal(t, "2025-03-02", cal.FormatDate(d))
}
