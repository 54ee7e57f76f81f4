package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/modules/tokenledger"
	"github.com/gofiber/fiber/v2"
)

type getMintResponse = HttpResponse[tokenledger.Mint]

func (h *HttpHandler) GetMint(ctx *fiber.Ctx) (err error) {
	mint, err := parseAddressParam(ctx, "mint")
	if err != nil {
		return errors.WithStack(err)
	}
	result, err := h.ledger.GetMint(ctx.UserContext(), mint)
	if err != nil {
		return errors.Wrap(publicLedgerError(err), "error during GetMint")
	}
	return errors.WithStack(ctx.JSON(getMintResponse{Result: result}))
}

type getBalanceResponse = HttpResponse[tokenledger.BalanceResult]

func (h *HttpHandler) GetBalance(ctx *fiber.Ctx) (err error) {
	mint, err := parseAddressParam(ctx, "mint")
	if err != nil {
		return errors.WithStack(err)
	}
	owner, err := parseAddressParam(ctx, "owner")
	if err != nil {
		return errors.WithStack(err)
	}
	balance, err := h.ledger.BalanceOf(ctx.UserContext(), mint, owner)
	if err != nil {
		return errors.Wrap(publicLedgerError(err), "error during BalanceOf")
	}
	return errors.WithStack(ctx.JSON(getBalanceResponse{Result: &tokenledger.BalanceResult{
		Mint:    mint,
		Owner:   owner,
		Balance: balance,
	}}))
}
