package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
)

type getConfigResponse = HttpResponse[configuration]

func (h *HttpHandler) GetConfig(ctx *fiber.Ctx) (err error) {
	config, err := h.usecase.GetConfig(ctx.UserContext())
	if err != nil {
		return errors.Wrap(publicError(err), "error during GetConfig")
	}
	result, err := mapConfiguration(config)
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(ctx.JSON(getConfigResponse{Result: result}))
}
