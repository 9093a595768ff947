package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(f float64) *float64 { return &f }

func TestDiscountedPrice(t *testing.T) {
	tests := []struct {
		name     string
		base     float64
		discount *float64
		want     float64
	}{
		{"nil discount", 100, nil, 100},
		{"zero discount", 100, ptr(0), 100},
		{"negative discount ignored", 100, ptr(-5), 100},
		{"ten percent", 100, ptr(10), 90},
		{"fifty percent", 80, ptr(50), 40},
		{"full discount", 100, ptr(100), 0},
		{"zero base", 0, ptr(25), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DiscountedPrice(tt.base, tt.discount), 1e-9)
		})
	}
}

func TestLineTotal(t *testing.T) {
	// 3 units at 100 with 10% off
	assert.InDelta(t, 270, LineTotal(100, ptr(10), 3), 1e-9)
	assert.InDelta(t, 0, LineTotal(100, ptr(10), 0), 1e-9)
	assert.InDelta(t, 200, LineTotal(100, nil, 2), 1e-9)
}

func TestValidateDiscount(t *testing.T) {
	assert.NoError(t, ValidateDiscount(nil))
	assert.NoError(t, ValidateDiscount(ptr(0)))
	assert.NoError(t, ValidateDiscount(ptr(100)))
	assert.ErrorIs(t, ValidateDiscount(ptr(-1)), ErrDiscountOutOfRange)
	assert.ErrorIs(t, ValidateDiscount(ptr(100.5)), ErrDiscountOutOfRange)
}
