package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "mcms/pkg/domain-errors"
)

func TestParsePrice(t *testing.T) {
	valid := map[string]float64{
		"19.99":  19.99,
		"5":      5,
		" 12.5 ": 12.5,
		"0.01":   0.01,
		"1e2":    100,
		"+7":     7,
		"999999": 999999,
	}
	for raw, want := range valid {
		got, err := ParsePrice(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	for _, raw := range []string{"", "null", "0", "0.0", "-3", "abc", "NaN", "Inf", "12abc",
		"1e20", "1000000", "0.001", "0.009", "0x1p4", "0X10", "1_000", "Infinity"} {
		_, err := ParsePrice(raw)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput), "price %q should be rejected", raw)
	}
}

func TestToMinorUnits(t *testing.T) {
	cases := map[float64]int64{
		19.99:  1999,
		0.29:   29,
		1.005:  100,
		100:    10000,
		33.333: 3333,
		4.35:   435,
	}
	for price, want := range cases {
		assert.Equal(t, want, ToMinorUnits(price), "price %v", price)
	}
}
