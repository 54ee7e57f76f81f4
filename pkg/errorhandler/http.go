package errorhandler

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common"
	"github.com/gaze-network/mint-authority/common/errs"
	"github.com/gaze-network/mint-authority/pkg/logger"
	"github.com/gaze-network/mint-authority/pkg/logger/slogx"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

func NewHTTPErrorHandler() func(ctx *fiber.Ctx, err error) error {
	return Respond
}

// Respond writes err to the client as a HttpResponse envelope.
func Respond(ctx *fiber.Ctx, err error) error {
	if e := new(errs.PublicError); errors.As(err, &e) {
		return errors.WithStack(ctx.Status(StatusCode(err)).JSON(common.HttpResponse[any]{
			Error: lo.ToPtr(e.Message()),
			Code:  e.Code(),
		}))
	}
	if e := new(fiber.Error); errors.As(err, &e) {
		return errors.WithStack(ctx.Status(e.Code).JSON(common.HttpResponse[any]{
			Error: lo.ToPtr(e.Error()),
		}))
	}

	logger.ErrorContext(ctx.UserContext(), "Something went wrong, unhandled api error",
		slogx.String("event", "api_unhandled_error"),
		slogx.Error(err),
	)

	return errors.WithStack(ctx.Status(http.StatusInternalServerError).JSON(common.HttpResponse[any]{
		Error: lo.ToPtr("Internal Server Error"),
	}))
}

// HTTPStatus returns the status Respond writes for err.
func HTTPStatus(err error) int {
	if e := new(errs.PublicError); errors.As(err, &e) {
		return StatusCode(err)
	}
	if e := new(fiber.Error); errors.As(err, &e) {
		return e.Code
	}
	return http.StatusInternalServerError
}

// StatusCode resolves the http status for a public error from its error kind.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, errs.DependencyFailed):
		return http.StatusBadGateway
	case errors.Is(err, errs.PreconditionFailed):
		return http.StatusPreconditionFailed
	case errors.Is(err, errs.NotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.Unauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, errs.Conflict):
		return http.StatusConflict
	case errors.Is(err, errs.Unsupported):
		return http.StatusNotImplemented
	case errors.Is(err, errs.Timeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, errs.SomethingWentWrong):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
