package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePromoCode(t *testing.T) {
	assert.Equal(t, "SUMMER10", NormalizePromoCode("  summer10 "))
}

func TestNewDiscount(t *testing.T) {
	d, err := NewDiscount("Percentage", 10)
	require.NoError(t, err)
	assert.Equal(t, DiscountPercentage, d.Type)

	d, err = NewDiscount("FIXED", 5)
	require.NoError(t, err)
	assert.Equal(t, DiscountFixed, d.Type)

	_, err = NewDiscount("bogus", 5)
	assert.ErrorIs(t, err, ErrInvalidDiscount)
	_, err = NewDiscount("percentage", 120)
	assert.ErrorIs(t, err, ErrInvalidDiscount)
	_, err = NewDiscount("fixed", -1)
	assert.ErrorIs(t, err, ErrInvalidDiscount)
}

func TestDiscount_Apply(t *testing.T) {
	assert.InDelta(t, 17.82, Discount{Type: DiscountPercentage, Value: 10}.Apply(19.8), 1e-9)
	assert.InDelta(t, 14.8, Discount{Type: DiscountFixed, Value: 5}.Apply(19.8), 1e-9)
	assert.Equal(t, 0.0, Discount{Type: DiscountFixed, Value: 50}.Apply(19.8))
}

func TestPromoCode_CheckRedeemable(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	valid := PromoCode{Active: true, ExpiryDate: now.Add(time.Hour), UsageLimit: 5, UsedCount: 4}
	assert.NoError(t, valid.CheckRedeemable(now))

	unlimited := PromoCode{Active: true, ExpiryDate: now.Add(time.Hour), UsedCount: 1000}
	assert.NoError(t, unlimited.CheckRedeemable(now))

	inactive := valid
	inactive.Active = false
	assert.ErrorIs(t, inactive.CheckRedeemable(now), ErrPromoInactive)

	expired := valid
	expired.ExpiryDate = now.Add(-time.Second)
	assert.ErrorIs(t, expired.CheckRedeemable(now), ErrPromoExpired)

	exhausted := valid
	exhausted.UsedCount = 5
	assert.ErrorIs(t, exhausted.CheckRedeemable(now), ErrPromoLimitReached)
}
