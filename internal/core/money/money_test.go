package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPolicy(t *testing.T, precision, scale int32) Policy {
	t.Helper()
	p, err := NewPolicy(precision, scale)
	require.NoError(t, err)
	return p
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestNewPolicy_Max(t *testing.T) {
	p := mustPolicy(t, 19, 2)
	// 10^17 - 0.01
	assert.Equal(t, "99999999999999999.99", p.Max().String())

	small := mustPolicy(t, 5, 2)
	assert.Equal(t, "999.99", small.Max().String())
}

func TestNewPolicy_Invalid(t *testing.T) {
	_, err := NewPolicy(2, 2)
	assert.Error(t, err)

	_, err = NewPolicy(19, -1)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	p := mustPolicy(t, 19, 2)

	tests := []struct {
		name    string
		amount  string
		wantErr error
	}{
		{"zero", "0", nil},
		{"whole", "100", nil},
		{"two decimals", "100.25", nil},
		{"trailing zeros collapse to scale", "1.100", nil},
		{"at max", "99999999999999999.99", nil},
		{"negative", "-0.01", ErrNegative},
		{"three decimals", "1.001", ErrScale},
		{"above max", "100000000000000000.00", ErrAboveMaximum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.Validate(dec(t, tt.amount))
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestAdd(t *testing.T) {
	p := mustPolicy(t, 19, 2)

	sum, err := p.Add(dec(t, "0.10"), dec(t, "0.20"))
	require.NoError(t, err)
	// Exact decimal arithmetic: no float64 0.30000000000000004
	assert.True(t, sum.Equal(dec(t, "0.30")), "got %s", sum)
}

func TestAdd_Overflow(t *testing.T) {
	p := mustPolicy(t, 19, 2)

	_, err := p.Add(p.Max(), dec(t, "0.01"))
	assert.ErrorIs(t, err, ErrAboveMaximum)
}

func TestSub(t *testing.T) {
	p := mustPolicy(t, 19, 2)

	diff, err := p.Sub(dec(t, "50.00"), dec(t, "30.00"))
	require.NoError(t, err)
	assert.True(t, diff.Equal(dec(t, "20.00")))
}

func TestSub_BelowZero(t *testing.T) {
	p := mustPolicy(t, 19, 2)

	_, err := p.Sub(dec(t, "10.00"), dec(t, "10.01"))
	assert.ErrorIs(t, err, ErrBelowMinimum)
}

func TestSub_ToExactlyZero(t *testing.T) {
	p := mustPolicy(t, 19, 2)

	diff, err := p.Sub(dec(t, "10.00"), dec(t, "10.00"))
	require.NoError(t, err)
	assert.True(t, diff.IsZero())
}
