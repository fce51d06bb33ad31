package domain

import "time"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Сроки жизни неоплаченных бронирований
const (
	PendingTTL = 15 * time.Minute
	HoldTTL    = 15 * time.Minute
)

// DefaultSlotStepMinutes шаг генератора слотов для всех категорий, кроме пакетной
const DefaultSlotStepMinutes = 60

// LoyaltyThreshold каждое N-е подтвержденное бронирование дает один бесплатный слот
const LoyaltyThreshold = 10

// HoldReleaseExpired причина снятия брони по таймауту
const HoldReleaseExpired = "expired"

// Коды дней недели в том виде, в котором они хранятся в availableDays услуги
var weekdayCodes = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// WeekdayCode возвращает код дня недели ("Sun".."Sat")
func WeekdayCode(d time.Weekday) string {
	return weekdayCodes[d]
}

// IsWeekdayCode проверяет, что строка является кодом дня недели
func IsWeekdayCode(s string) bool {
	for _, c := range weekdayCodes {
		if c == s {
			return true
		}
	}
	return false
}
