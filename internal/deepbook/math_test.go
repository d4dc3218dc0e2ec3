package deepbook

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToAtomic(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		decimals int
		want     uint64
	}{
		{"whole units", "1", 9, 1_000_000_000},
		{"fractional", "2.5", 9, 2_500_000_000},
		{"floors remainder", "1.2345", 2, 123},
		{"zero decimals", "42.9", 0, 42},
		{"small amount", "0.000001", 6, 1},
		{"sub-atomic floors to zero", "0.1", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToAtomic(tt.amount, tt.decimals)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToAtomic_RejectsBadInput(t *testing.T) {
	for _, amount := range []string{"abc", "", "  ", "-1", "0", "1.2.3", "NaN"} {
		_, err := ToAtomic(amount, 9)
		require.Error(t, err, "amount %q should be rejected", amount)

		var verr *ValidationError
		assert.True(t, errors.As(err, &verr), "amount %q should yield a ValidationError", amount)
	}
}

func TestMinOutput(t *testing.T) {
	// s=0 keeps the full estimate.
	got, err := MinOutput(5.0, 0, 6)
	require.NoError(t, err)
	assert.Equal(t, uint64(5_000_000), got)

	// s=100 yields zero.
	got, err = MinOutput(5.0, 100, 6)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), got)

	// 1% slippage on the reference scenario: floor(5.0 * 0.99 * 10^6).
	got, err = MinOutput(5.0, 1, 6)
	require.NoError(t, err)
	assert.Equal(t, uint64(4_950_000), got)

	// minOut never exceeds the unprotected estimate.
	full, err := MinOutput(3.333333, 0, 9)
	require.NoError(t, err)
	protected, err := MinOutput(3.333333, 0.5, 9)
	require.NoError(t, err)
	assert.LessOrEqual(t, protected, full)
}

func TestMinOutput_RejectsOutOfRangeSlippage(t *testing.T) {
	for _, s := range []float64{-0.1, 100.01, 150} {
		_, err := MinOutput(1.0, s, 6)
		require.Error(t, err, "slippage %v should be rejected", s)
	}
}

func TestValidateSlippage(t *testing.T) {
	assert.NoError(t, ValidateSlippage(0))
	assert.NoError(t, ValidateSlippage(0.5))
	assert.NoError(t, ValidateSlippage(100))
	assert.Error(t, ValidateSlippage(-1))
	assert.Error(t, ValidateSlippage(150))
}
