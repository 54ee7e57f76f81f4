package client

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common/errs"
	"github.com/gaze-network/mint-authority/modules/minting/constants"
	"github.com/gaze-network/mint-authority/pkg/decimals"
	"github.com/shopspring/decimal"
)

// parseAmount converts an amount in token units, or base units if raw, to base units.
func parseAmount(s string, raw bool) (uint64, error) {
	if s == "" {
		return 0, errors.New("--amount is required")
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errors.Wrapf(errs.InvalidArgument, "invalid amount %q", s)
	}
	if !amount.IsPositive() {
		return 0, errors.Wrapf(errs.InvalidArgument, "amount %s must be positive", s)
	}
	places := constants.TokenDecimals
	if raw {
		places = 0
	}
	value, err := decimals.ToUint64(amount, places)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return value, nil
}
