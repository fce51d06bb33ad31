package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var (
	ErrPromoInactive     = errors.New("domain: promo code is inactive")
	ErrPromoExpired      = errors.New("domain: promo code has expired")
	ErrPromoLimitReached = errors.New("domain: promo code usage limit reached")
	ErrInvalidDiscount   = errors.New("domain: invalid discount")
)

// DiscountType вид скидки промокода
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Discount скидка, разобранная один раз при загрузке промокода
type Discount struct {
	Type  DiscountType
	Value float64
}

// NewDiscount разбирает тип скидки без учета регистра и проверяет значение
func NewDiscount(kind string, value float64) (Discount, error) {
	t := DiscountType(strings.ToLower(strings.TrimSpace(kind)))
	if math.IsNaN(value) || value < 0 {
		return Discount{}, fmt.Errorf("%w: negative value", ErrInvalidDiscount)
	}
	switch t {
	case DiscountPercentage:
		if value > 100 {
			return Discount{}, fmt.Errorf("%w: percentage above 100", ErrInvalidDiscount)
		}
	case DiscountFixed:
	default:
		return Discount{}, fmt.Errorf("%w: unknown type %q", ErrInvalidDiscount, kind)
	}
	return Discount{Type: t, Value: value}, nil
}

// Apply применяет скидку к сумме, результат не меньше нуля
func (d Discount) Apply(amount float64) float64 {
	switch d.Type {
	case DiscountPercentage:
		amount -= amount * d.Value / 100
	case DiscountFixed:
		amount -= d.Value
	}
	return math.Max(0, amount)
}

// PromoCode промокод
type PromoCode struct {
	ID         int64
	Code       string
	Discount   Discount
	ExpiryDate time.Time
	UsageLimit int // 0 = без ограничений
	UsedCount  int
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NormalizePromoCode обрезает пробелы и приводит к верхнему регистру
func NormalizePromoCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CheckRedeemable проверяет, что промокод можно применить в момент now
func (p *PromoCode) CheckRedeemable(now time.Time) error {
	if !p.Active {
		return ErrPromoInactive
	}
	if p.ExpiryDate.Before(now) {
		return ErrPromoExpired
	}
	if p.UsageLimit > 0 && p.UsedCount >= p.UsageLimit {
		return ErrPromoLimitReached
	}
	return nil
}
