package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common/errs"
	"github.com/gaze-network/mint-authority/pkg/signature"
	"github.com/gofiber/fiber/v2"
)

type initializeRequest struct {
	callerRequest
}

type initializeResponse = HttpResponse[configuration]

func (h *HttpHandler) Initialize(ctx *fiber.Ctx) (err error) {
	var req initializeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(err, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}
	if err := h.verifyCaller(req.callerRequest, signature.InitializeMessage(h.usecase.ProgramID())); err != nil {
		return errors.WithStack(err)
	}

	config, err := h.usecase.Initialize(ctx.UserContext(), req.Caller)
	if err != nil {
		return errors.Wrap(publicError(err), "error during Initialize")
	}

	result, err := mapConfiguration(config)
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(ctx.Status(fiber.StatusCreated).JSON(initializeResponse{Result: result}))
}
