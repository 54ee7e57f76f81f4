// Package decimals converts between raw integer token amounts and their decimal form.
package decimals

import (
	"fmt"
	"math/big"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common/errs"
	"github.com/gaze-network/uint128"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/constraints"
)

// MaxDecimals bounds the scale accepted by this package.
const MaxDecimals = 36

func init() {
	decimal.DivisionPrecision = MaxDecimals
}

func checkDecimals[D constraints.Integer](decimals D) int32 {
	if decimals < 0 || int64(decimals) > MaxDecimals {
		panic(fmt.Sprintf("decimals: scale %d out of range [0, %d]", decimals, MaxDecimals))
	}
	return int32(decimals)
}

// ToDecimal scales a raw amount down by decimals places. amount is one of
// uint64, uint128.Uint128, *big.Int or a base 10 string. Unknown types are zero.
func ToDecimal[D constraints.Integer](amount any, decimals D) decimal.Decimal {
	exp := -checkDecimals(decimals)
	switch v := amount.(type) {
	case uint64:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(v), exp)
	case uint128.Uint128:
		return decimal.NewFromBigInt(v.Big(), exp)
	case *big.Int:
		return decimal.NewFromBigInt(v, exp)
	case string:
		value, ok := new(big.Int).SetString(v, 10)
		if !ok {
			return decimal.Zero
		}
		return decimal.NewFromBigInt(value, exp)
	default:
		return decimal.Zero
	}
}

// ToUint64 scales a decimal amount up to raw units.
func ToUint64[D constraints.Integer](amount decimal.Decimal, decimals D) (uint64, error) {
	places := checkDecimals(decimals)
	if amount.IsNegative() {
		return 0, errors.Wrapf(errs.InvalidArgument, "amount %s is negative", amount)
	}
	if !amount.Equal(amount.Truncate(places)) {
		return 0, errors.Wrapf(errs.InvalidArgument, "amount %s has more than %d decimal places", amount, places)
	}
	value := amount.Shift(places).BigInt()
	if !value.IsUint64() {
		return 0, errors.Wrapf(errs.OverflowUint64, "amount %s with %d decimals", amount, places)
	}
	return value.Uint64(), nil
}
