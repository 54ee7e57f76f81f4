package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common"
	"github.com/gaze-network/mint-authority/common/errs"
	"github.com/gaze-network/mint-authority/modules/tokenledger"
	"github.com/gofiber/fiber/v2"
)

type mintToResult struct {
	Mint        common.Address `json:"mint"`
	Destination common.Address `json:"destination"`
	Amount      uint64         `json:"amount"`
}

type mintToResponse = HttpResponse[mintToResult]

// MintTo requires an idempotency key. A repeated key with the same payload succeeds without crediting again.
func (h *HttpHandler) MintTo(ctx *fiber.Ctx) (err error) {
	mint, err := parseAddressParam(ctx, "mint")
	if err != nil {
		return errors.WithStack(err)
	}
	key := ctx.Get(tokenledger.HeaderIdempotencyKey)
	if key == "" {
		return errs.NewPublicError("'" + tokenledger.HeaderIdempotencyKey + "' header is required")
	}
	var req tokenledger.MintToRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(err, "invalid request body")
	}
	authority, err := req.Authority.Signer()
	if err != nil {
		return errs.WithPublicMessage(err, "invalid 'authority'")
	}

	keyed := tokenledger.WithIdempotencyKey(ctx.UserContext(), key)
	if err := h.ledger.MintTo(keyed, authority, mint, req.Destination, req.Amount); err != nil {
		return errors.Wrap(publicLedgerError(err), "error during MintTo")
	}

	return errors.WithStack(ctx.JSON(mintToResponse{Result: &mintToResult{
		Mint:        mint,
		Destination: req.Destination,
		Amount:      req.Amount,
	}}))
}
