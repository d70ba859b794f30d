package service

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	dErrors "mcms/pkg/domain-errors"
)

// minorUnitEpsilon absorbs binary float error before truncating, so that
// 19.99 becomes 1999 and not 1998.
const minorUnitEpsilon = 1e-6

// maxMinorUnits is the largest amount a card payment intent may carry
// (999,999.99 in a two-decimal currency).
const maxMinorUnits = 99_999_999

// decimalPrice matches plain decimal notation with an optional exponent.
// Hex floats, underscores, Inf and NaN are not prices.
var decimalPrice = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// ParsePrice accepts the textual form of a JSON number or numeric string.
// Empty, non-numeric and non-positive prices are rejected, as are prices
// that round to less than one minor unit or exceed maxMinorUnits.
func ParsePrice(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" || !decimalPrice.MatchString(raw) {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "Invalid price provided")
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "Invalid price provided")
	}
	if price*100 > maxMinorUnits {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "Price exceeds the maximum payment amount")
	}
	if ToMinorUnits(price) < 1 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "Price is below the minimum payment amount")
	}
	return price, nil
}

// ToMinorUnits converts a price to cents, truncating fractions of a cent.
// Callers pass prices already bounded by ParsePrice.
func ToMinorUnits(price float64) int64 {
	return int64(math.Floor(price*100 + minorUnitEpsilon))
}
