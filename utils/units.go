package utils

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// FormatUnits renders a raw on-chain amount in display units, e.g.
// 1500000 with 6 decimals is "1.5". A nil amount renders as "0".
func FormatUnits(amount *big.Int, decimals uint8) string {
	if amount == nil {
		return "0"
	}
	return decimal.NewFromBigInt(amount, -int32(decimals)).String()
}

// ParseUnits converts a display amount into its raw integer form. Amounts
// with more fractional digits than decimals are rejected rather than
// truncated.
func ParseUnits(amount string, decimals uint8) (*big.Int, error) {
	dec, err := ValidateAmount(amount)
	if err != nil {
		return nil, err
	}

	scaled := dec.Shift(int32(decimals))
	if !scaled.Equal(scaled.Truncate(0)) {
		return nil, fmt.Errorf("amount %s has more than %d decimal places", amount, decimals)
	}
	return scaled.BigInt(), nil
}
