package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common/errs"
	"github.com/gaze-network/mint-authority/pkg/signature"
	"github.com/gofiber/fiber/v2"
)

type mintRequest struct {
	callerRequest
	Amount    uint64 `json:"amount"`
	MintIndex uint64 `json:"mintIndex"`
}

func (r mintRequest) Validate() error {
	var errList []error
	if err := r.callerRequest.Validate(); err != nil {
		errList = append(errList, err)
	}
	if r.MintIndex == 0 {
		errList = append(errList, errs.NewPublicError("'mintIndex' must be greater than zero"))
	}
	if len(errList) == 0 {
		return nil
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type mintResponse = HttpResponse[mintRecord]

func (h *HttpHandler) Mint(ctx *fiber.Ctx) (err error) {
	var req mintRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(err, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}
	message := signature.MintMessage(h.usecase.ProgramID(), req.Amount, req.MintIndex)
	if err := h.verifyCaller(req.callerRequest, message); err != nil {
		return errors.WithStack(err)
	}

	record, err := h.usecase.Mint(ctx.UserContext(), req.Caller, req.Amount, req.MintIndex)
	if err != nil {
		return errors.Wrap(publicError(err), "error during Mint")
	}

	result, err := mapMintRecord(record)
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(ctx.Status(fiber.StatusCreated).JSON(mintResponse{Result: result}))
}
