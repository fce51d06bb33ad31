package businesscal

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // база часовых поясов внутри бинаря

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

// DefaultTimezone часовой пояс бизнеса по умолчанию
const DefaultTimezone = "Asia/Singapore"

// ErrInvalidDate дата не распознана
var ErrInvalidDate = errors.New("businesscal: invalid date")

// Calendar единая точка для вычисления дня недели и границ дня в часовом поясе бизнеса
type Calendar struct {
	loc *time.Location
	now func() time.Time
}

// New создает календарь. Пустая строка означает DefaultTimezone
func New(tz string) (*Calendar, error) {
	if strings.TrimSpace(tz) == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("businesscal: load location %q: %w", tz, err)
	}
	return &Calendar{loc: loc, now: time.Now}, nil
}

// MustNew как New, но паникует на неизвестном поясе
func MustNew(tz string) *Calendar {
	c, err := New(tz)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Calendar) Location() *time.Location {
	return c.loc
}

// Now текущее время в поясе бизнеса
func (c *Calendar) Now() time.Time {
	return c.now().In(c.loc)
}

// ParseDate принимает "YYYY-MM-DD" или RFC3339 и возвращает полночь календарного дня в поясе бизнеса.
// Для RFC3339 день определяется после перевода момента в пояс бизнеса.
func (c *Calendar) ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}

	if d, err := time.ParseInLocation(domain.DateFormat, s, c.loc); err == nil {
		return d, nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return c.StartOfDay(t), nil
}

// StartOfDay полночь дня, в который попадает t в поясе бизнеса
func (c *Calendar) StartOfDay(t time.Time) time.Time {
	local := t.In(c.loc)
	y, m, d := local.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.loc)
}

// WeekdayCode код дня недели ("Sun".."Sat") для календарной даты, полученной из ParseDate
// или прочитанной из колонки DATE. Часы и пояс самого значения не учитываются.
func (c *Calendar) WeekdayCode(date time.Time) string {
	return domain.WeekdayCode(date.Weekday())
}

// FormatDate календарная дата в формате YYYY-MM-DD
func (c *Calendar) FormatDate(date time.Time) string {
	return date.Format(domain.DateFormat)
}

// Today текущая календарная дата в поясе бизнеса
func (c *Calendar) Today() time.Time {
	return c.StartOfDay(c.now())
}
