package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common/errs"
	"github.com/gofiber/fiber/v2"
)

const (
	listMintRecordsDefaultLimit = 100
	listMintRecordsMaxLimit     = 1000
)

type listMintRecordsRequest struct {
	Limit  int32 `query:"limit"`
	Offset int32 `query:"offset"`
}

func (r *listMintRecordsRequest) Validate() error {
	var errList []error
	if r.Limit < 0 {
		errList = append(errList, errs.NewPublicError("'limit' must be non-negative"))
	}
	if r.Limit > listMintRecordsMaxLimit {
		errList = append(errList, errs.NewPublicError("'limit' cannot exceed 1000"))
	}
	if r.Offset < 0 {
		errList = append(errList, errs.NewPublicError("'offset' must be non-negative"))
	}
	if len(errList) == 0 {
		return nil
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

func (r *listMintRecordsRequest) ParseDefault() {
	if r.Limit == 0 {
		r.Limit = listMintRecordsDefaultLimit
	}
}

type listMintRecordsResult struct {
	List  []*mintRecord `json:"list"`
	Total uint64        `json:"total"`
}

type listMintRecordsResponse = HttpResponse[listMintRecordsResult]

func (h *HttpHandler) ListMintRecords(ctx *fiber.Ctx) (err error) {
	var req listMintRecordsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errs.WithPublicMessage(err, "invalid query")
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}
	req.ParseDefault()

	records, total, err := h.usecase.ListMintRecords(ctx.UserContext(), req.Limit, req.Offset)
	if err != nil {
		return errors.Wrap(publicError(err), "error during ListMintRecords")
	}

	list := make([]*mintRecord, 0, len(records))
	for _, record := range records {
		r, err := mapMintRecord(record)
		if err != nil {
			return errors.WithStack(err)
		}
		list = append(list, r)
	}
	return errors.WithStack(ctx.JSON(listMintRecordsResponse{
		Result: &listMintRecordsResult{List: list, Total: total},
	}))
}
