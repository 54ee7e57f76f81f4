package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common"
	"github.com/gaze-network/mint-authority/modules/minting/constants"
	"github.com/gaze-network/mint-authority/pkg/decimals"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type balance struct {
	Owner    common.Address  `json:"owner"`
	Amount   uint128.Uint128 `json:"amount"`
	UiAmount decimal.Decimal `json:"uiAmount"`
	Decimals uint8           `json:"decimals"`
}

type getBalanceResponse = HttpResponse[balance]

func (h *HttpHandler) GetBalance(ctx *fiber.Ctx) (err error) {
	owner, err := parseAddressParam(ctx, "owner")
	if err != nil {
		return errors.WithStack(err)
	}

	amount, err := h.usecase.GetBalance(ctx.UserContext(), owner)
	if err != nil {
		return errors.Wrap(publicError(err), "error during GetBalance")
	}

	return errors.WithStack(ctx.JSON(getBalanceResponse{
		Result: &balance{
			Owner:    owner,
			Amount:   amount,
			UiAmount: decimals.ToDecimal(amount, constants.TokenDecimals),
			Decimals: constants.TokenDecimals,
		},
	}))
}
