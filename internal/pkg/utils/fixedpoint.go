package utils

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// FixedPointDecimals is the scaling used by on-chain fixed-point integers (10^18).
const FixedPointDecimals = 18

// FromFixedPoint converts an on-chain fixed-point integer to a decimal number.
// Example: 1500000000000000000 => 1.5
func FromFixedPoint(raw *big.Int) float64 {
	return ToDecimal(raw, FixedPointDecimals).InexactFloat64()
}

// ToDecimal scales amount down by 10^decimals without losing precision.
func ToDecimal(amount *big.Int, decimals int32) decimal.Decimal {
	if amount == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(amount, -decimals)
}

// FormatBigInt converts a big.Int value to a human-readable string,
// considering the given number of decimals. Trailing zeros are trimmed.
// Example: amount=1234500000000000000, decimals=18 => "1.2345"
func FormatBigInt(amount *big.Int, decimals int32) string {
	if amount == nil {
		return "0"
	}
	return ToDecimal(amount, decimals).String()
}
