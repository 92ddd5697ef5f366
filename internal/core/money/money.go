package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrNegative indicates an amount below zero.
	ErrNegative = errors.New("amount must not be negative")
	// ErrScale indicates more fractional digits than the policy allows.
	ErrScale = errors.New("amount has too many decimal places")
	// ErrAboveMaximum indicates a value beyond the largest representable amount.
	ErrAboveMaximum = errors.New("amount exceeds the maximum representable value")
	// ErrBelowMinimum indicates an arithmetic result that would drop below zero.
	ErrBelowMinimum = errors.New("amount is below the minimum representable value")
)

// Policy defines the fixed-point decimal domain for all monetary values:
// precision total significant digits, scale fractional digits, and the
// derived closed interval [0, max] every balance must stay within.
type Policy struct {
	precision int32
	scale     int32
	max       decimal.Decimal
}

// NewPolicy builds a Policy for the given precision and scale.
// The maximum representable amount is 10^(precision-scale) - 10^(-scale),
// i.e. all integer digits and all fractional digits set to nine.
func NewPolicy(precision, scale int32) (Policy, error) {
	if scale < 0 {
		return Policy{}, fmt.Errorf("scale must not be negative, got %d", scale)
	}
	if precision <= scale {
		return Policy{}, fmt.Errorf("precision %d must exceed scale %d", precision, scale)
	}
	return Policy{
		precision: precision,
		scale:     scale,
		max:       decimal.New(1, precision-scale).Sub(decimal.New(1, -scale)),
	}, nil
}

// Max returns the largest representable amount.
func (p Policy) Max() decimal.Decimal {
	return p.max
}

// Scale returns the number of fractional digits.
func (p Policy) Scale() int32 {
	return p.scale
}

// Validate checks that d lies in [0, max] and carries no significant
// digits beyond the configured scale. It never mutates or rounds.
func (p Policy) Validate(d decimal.Decimal) error {
	if d.IsNegative() {
		return ErrNegative
	}
	if !d.Equal(d.Truncate(p.scale)) {
		return ErrScale
	}
	if d.GreaterThan(p.max) {
		return ErrAboveMaximum
	}
	return nil
}

// Add returns a+b, failing with ErrAboveMaximum if the exact result
// leaves the representable domain. Decimal arithmetic is exact; there is
// no rounding step to hide an overflow.
func (p Policy) Add(a, b decimal.Decimal) (decimal.Decimal, error) {
	sum := a.Add(b)
	if sum.GreaterThan(p.max) {
		return decimal.Decimal{}, ErrAboveMaximum
	}
	if sum.IsNegative() {
		return decimal.Decimal{}, ErrBelowMinimum
	}
	return sum, nil
}

// Sub returns a-b, failing with ErrBelowMinimum if the exact result
// drops below zero.
func (p Policy) Sub(a, b decimal.Decimal) (decimal.Decimal, error) {
	diff := a.Sub(b)
	if diff.IsNegative() {
		return decimal.Decimal{}, ErrBelowMinimum
	}
	if diff.GreaterThan(p.max) {
		return decimal.Decimal{}, ErrAboveMaximum
	}
	return diff, nil
}
