package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDiscountedExactCents(t *testing.T) {
	// 100 at 10% must be exactly 90, not 89.99...
	assert.True(t, Discounted(100, 10).Equal(decimal.RequireFromString("90")))
	assert.Equal(t, "90", Discounted(100, 10).String())
}

func TestDiscountedNoDiscount(t *testing.T) {
	assert.Equal(t, "99.99", Discounted(99.99, 0).String())
	assert.Equal(t, "99.99", Discounted(99.99, -5).String())
}

func TestDiscountedRoundsToCents(t *testing.T) {
	// 19.99 at 15% = 16.9915 -> 16.99
	assert.Equal(t, "16.99", Discounted(19.99, 15).String())
}

func TestLineTotalMultipliesSeats(t *testing.T) {
	assert.Equal(t, "270", LineTotal(100, 10, 3).String())
	assert.Equal(t, "90", LineTotal(100, 10, 1).String())
}

func TestCents(t *testing.T) {
	assert.Equal(t, int64(9000), Cents(decimal.RequireFromString("90")))
	assert.Equal(t, int64(1699), Cents(decimal.RequireFromString("16.99")))
	assert.Equal(t, int64(0), Cents(decimal.Zero))
}
