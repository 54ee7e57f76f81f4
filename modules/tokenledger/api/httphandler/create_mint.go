package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common/errs"
	"github.com/gaze-network/mint-authority/modules/tokenledger"
	"github.com/gofiber/fiber/v2"
)

type createMintResponse = HttpResponse[tokenledger.Mint]

func (h *HttpHandler) CreateMint(ctx *fiber.Ctx) (err error) {
	var req tokenledger.CreateMintRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(err, "invalid request body")
	}
	if req.Mint.IsZero() {
		return errs.NewPublicError("'mint' is required")
	}
	authority, err := req.Authority.Signer()
	if err != nil {
		return errs.WithPublicMessage(err, "invalid 'authority'")
	}

	mint, err := h.ledger.CreateMint(ctx.UserContext(), authority, req.Mint, req.Decimals)
	if err != nil {
		return errors.Wrap(publicLedgerError(err), "error during CreateMint")
	}

	return errors.WithStack(ctx.JSON(createMintResponse{Result: mint}))
}
