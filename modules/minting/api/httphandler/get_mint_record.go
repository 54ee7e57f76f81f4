package httphandler

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common/errs"
	"github.com/gofiber/fiber/v2"
)

type getMintRecordResponse = HttpResponse[mintRecord]

func (h *HttpHandler) GetMintRecord(ctx *fiber.Ctx) (err error) {
	index, err := strconv.ParseUint(ctx.Params("index"), 10, 64)
	if err != nil {
		return errs.WithPublicMessage(err, "invalid 'index'")
	}

	record, err := h.usecase.GetMintRecord(ctx.UserContext(), index)
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return fiber.NewError(fiber.StatusNotFound, "mint record not found")
		}
		return errors.Wrap(publicError(err), "error during GetMintRecord")
	}

	result, err := mapMintRecord(record)
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(ctx.JSON(getMintRecordResponse{Result: result}))
}
