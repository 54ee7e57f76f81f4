package httphandler

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common/errs"
	"github.com/gofiber/fiber/v2"
)

const getMintRecordsBatchMaxQueries = 1000

type getMintRecordsBatchRequest struct {
	Indexes []uint64 `json:"indexes"`
}

func (r getMintRecordsBatchRequest) Validate() error {
	var errList []error
	if len(r.Indexes) == 0 {
		errList = append(errList, errs.NewPublicError("'indexes' is required"))
	}
	if len(r.Indexes) > getMintRecordsBatchMaxQueries {
		errList = append(errList, errs.NewPublicError(fmt.Sprintf("cannot exceed %d indexes", getMintRecordsBatchMaxQueries)))
	}
	if len(errList) == 0 {
		return nil
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

// keyed by the decimal mint index, missing indexes are omitted
type getMintRecordsBatchResponse = HttpResponse[map[string]*mintRecord]

func (h *HttpHandler) GetMintRecordsBatch(ctx *fiber.Ctx) (err error) {
	var req getMintRecordsBatchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(err, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	records, err := h.usecase.GetMintRecords(ctx.UserContext(), req.Indexes)
	if err != nil {
		return errors.Wrap(publicError(err), "error during GetMintRecords")
	}

	result := make(map[string]*mintRecord, len(records))
	for index, record := range records {
		r, err := mapMintRecord(record)
		if err != nil {
			return errors.WithStack(err)
		}
		result[strconv.FormatUint(index, 10)] = r
	}
	return errors.WithStack(ctx.JSON(getMintRecordsBatchResponse{Result: &result}))
}
