package solana

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ToBaseUnits converts a decimal amount such as "1.5" to base units of a
// token with the given decimals. Fractions below one base unit are
// rejected.
func ToBaseUnits(amount string, decimals int32) (uint64, error) {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	if value.IsNegative() {
		return 0, fmt.Errorf("invalid amount %q: negative", amount)
	}
	scaled := value.Shift(decimals)
	if !scaled.Equal(scaled.Truncate(0)) {
		return 0, fmt.Errorf("invalid amount %q: more than %d decimal places", amount, decimals)
	}
	out := scaled.BigInt()
	if !out.IsUint64() {
		return 0, fmt.Errorf("invalid amount %q: overflows u64", amount)
	}
	return out.Uint64(), nil
}

func FromBaseUnits(amount uint64, decimals int32) decimal.Decimal {
	return decimal.NewFromUint64(amount).Shift(-decimals)
}

// SOLToLamports converts a SOL amount to lamports.
func SOLToLamports(sol string) (uint64, error) {
	return ToBaseUnits(sol, 9)
}

func LamportsToSOL(lamports uint64) decimal.Decimal {
	return FromBaseUnits(lamports, 9)
}
