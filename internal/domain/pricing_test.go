package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscountedUnitPrice(t *testing.T) {
	p := Product{Price: 79.99, DiscountPercent: 10}
	assert.InDelta(t, 71.991, p.DiscountedUnitPrice(), 1e-9)
}

func TestDiscountedUnitPriceZeroDiscountIsExact(t *testing.T) {
	p := Product{Price: 159.99, DiscountPercent: 0}
	assert.Equal(t, 159.99, p.DiscountedUnitPrice())
}

func TestDiscountedUnitPriceFullDiscount(t *testing.T) {
	p := Product{Price: 100, DiscountPercent: 100}
	assert.InDelta(t, 0, p.DiscountedUnitPrice(), 1e-9)
}

func TestFormatPriceRoundsAtPresentation(t *testing.T) {
	// 79.99 * 0.9 * 2 = 143.982, displayed as 143.98
	p := Product{Price: 79.99, DiscountPercent: 10}
	lineTotal := p.DiscountedUnitPrice() * 2
	assert.Equal(t, "143.98", FormatPrice(lineTotal))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "29.99", FormatPrice(29.99))
	assert.Equal(t, "30.00", FormatPrice(29.999))
	assert.Equal(t, "0.00", FormatPrice(0))
}
