package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common/errs"
	"github.com/gaze-network/mint-authority/modules/tokenledger"
	"github.com/gaze-network/mint-authority/pkg/signature"
	"github.com/gofiber/fiber/v2"
)

type createTokenMintRequest struct {
	callerRequest
}

type tokenMintResponse = HttpResponse[tokenledger.Mint]

func (h *HttpHandler) CreateTokenMint(ctx *fiber.Ctx) (err error) {
	var req createTokenMintRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(err, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}
	if err := h.verifyCaller(req.callerRequest, signature.CreateTokenMintMessage(h.usecase.ProgramID())); err != nil {
		return errors.WithStack(err)
	}

	mint, err := h.usecase.CreateTokenMint(ctx.UserContext(), req.Caller)
	if err != nil {
		return errors.Wrap(publicError(err), "error during CreateTokenMint")
	}
	return errors.WithStack(ctx.Status(fiber.StatusCreated).JSON(tokenMintResponse{Result: mint}))
}

func (h *HttpHandler) GetTokenMint(ctx *fiber.Ctx) (err error) {
	mint, err := h.usecase.GetTokenMint(ctx.UserContext())
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return errs.NewPublicErrorWithCode("token mint not found", tokenledger.CodeMintNotFound)
		}
		return errors.Wrap(publicError(err), "error during GetTokenMint")
	}
	return errors.WithStack(ctx.JSON(tokenMintResponse{Result: mint}))
}
