package deepbook

import (
	"fmt"
	"math"
	"math/big"
	"strings"
)

// ValidationError marks malformed or out-of-range user input. It is recovered
// locally: no network call is made and no order is built.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ParseAmount parses a human-entered decimal amount and requires it to be a
// finite positive number.
func ParseAmount(amount string) (*big.Rat, error) {
	s := strings.TrimSpace(amount)
	if s == "" {
		return nil, &ValidationError{Field: "amount", Reason: "empty"}
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, &ValidationError{Field: "amount", Reason: "not a number"}
	}
	if r.Sign() <= 0 {
		return nil, &ValidationError{Field: "amount", Reason: "must be > 0"}
	}
	return r, nil
}

// ToAtomic converts a decimal amount string to atomic units: floor(a * 10^d).
// Exact rational arithmetic, as with the pool math elsewhere big numbers are
// used to avoid float rounding in amounts that land on-chain.
func ToAtomic(amount string, decimals int) (uint64, error) {
	r, err := ParseAmount(amount)
	if err != nil {
		return 0, err
	}
	return ratToAtomic(r, decimals)
}

// MinOutput computes the minimum acceptable output in atomic units:
// floor(estimatedOut * (1 - slippagePct/100) * 10^d).
// slippagePct of 0 keeps the full estimate; 100 yields 0.
func MinOutput(estimatedOut float64, slippagePct float64, decimals int) (uint64, error) {
	if err := ValidateSlippage(slippagePct); err != nil {
		return 0, err
	}
	if estimatedOut < 0 || math.IsNaN(estimatedOut) || math.IsInf(estimatedOut, 0) {
		return 0, &ValidationError{Field: "estimatedOut", Reason: "must be a finite non-negative number"}
	}

	e := new(big.Rat).SetFloat64(estimatedOut)
	s := new(big.Rat).SetFloat64(slippagePct)

	// factor = (100 - s) / 100
	factor := new(big.Rat).Sub(big.NewRat(100, 1), s)
	factor.Quo(factor, big.NewRat(100, 1))

	return ratToAtomic(new(big.Rat).Mul(e, factor), decimals)
}

// ValidateSlippage rejects slippage tolerances outside [0, 100].
func ValidateSlippage(slippagePct float64) error {
	if math.IsNaN(slippagePct) || slippagePct < 0 || slippagePct > 100 {
		return &ValidationError{Field: "slippage", Reason: "must be between 0 and 100"}
	}
	return nil
}

// ratToAtomic scales r by 10^decimals and floors to a non-negative uint64.
func ratToAtomic(r *big.Rat, decimals int) (uint64, error) {
	if decimals < 0 {
		return 0, &ValidationError{Field: "decimals", Reason: "must be >= 0"}
	}
	if r.Sign() < 0 {
		return 0, &ValidationError{Field: "amount", Reason: "negative"}
	}

	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	scaled := new(big.Rat).Mul(r, new(big.Rat).SetInt(scale))

	// floor = Num / Denom with truncation; scaled is non-negative here.
	atomic := new(big.Int).Quo(scaled.Num(), scaled.Denom())
	if !atomic.IsUint64() {
		return 0, &ValidationError{Field: "amount", Reason: "atomic amount overflows uint64"}
	}
	return atomic.Uint64(), nil
}
