package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common"
	"github.com/gaze-network/mint-authority/common/errs"
	"github.com/gaze-network/mint-authority/modules/minting/usecase"
	"github.com/gaze-network/mint-authority/pkg/signature"
	"github.com/gofiber/fiber/v2"
)

type HttpHandler struct {
	usecase          *usecase.Usecase
	requireSignature bool
}

func New(usecase *usecase.Usecase, requireSignature bool) *HttpHandler {
	return &HttpHandler{
		usecase:          usecase,
		requireSignature: requireSignature,
	}
}

func (h *HttpHandler) Mount(router fiber.Router) error {
	r := router.Group("/v1/minting")

	r.Post("/initialize", h.Initialize)
	r.Post("/token-mint", h.CreateTokenMint)
	r.Post("/mint", h.Mint)
	r.Get("/config", h.GetConfig)
	r.Get("/token-mint", h.GetTokenMint)
	r.Get("/records", h.ListMintRecords)
	r.Post("/records/batch", h.GetMintRecordsBatch)
	r.Get("/records/:index", h.GetMintRecord)
	r.Get("/balances/:owner", h.GetBalance)
	return nil
}

type HttpResponse[T any] common.HttpResponse[T]

const (
	CodeNotInitialized     = "NOT_INITIALIZED"
	CodeAlreadyInitialized = "ALREADY_INITIALIZED"
	CodeInvalidMintIndex   = "INVALID_MINT_INDEX"
	CodeDuplicateRecord    = "DUPLICATE_RECORD"
	CodeDelegationFailed   = "DELEGATION_FAILED"
	CodeInvalidAmount      = "INVALID_AMOUNT"
	CodeInvalidCaller      = "INVALID_CALLER"
	CodeMintAlreadyExists  = "MINT_ALREADY_EXISTS"
	CodeUnauthorized       = "UNAUTHORIZED"
)

// order matters, a delegation failure may wrap any ledger error
var errorCodes = []struct {
	err  error
	code string
}{
	{usecase.ErrDelegationFailed, CodeDelegationFailed},
	{usecase.ErrNotInitialized, CodeNotInitialized},
	{usecase.ErrAlreadyInitialized, CodeAlreadyInitialized},
	{usecase.ErrInvalidMintIndex, CodeInvalidMintIndex},
	{usecase.ErrDuplicateRecord, CodeDuplicateRecord},
	{usecase.ErrInvalidAmount, CodeInvalidAmount},
	{usecase.ErrInvalidCaller, CodeInvalidCaller},
	{usecase.ErrMintAlreadyExists, CodeMintAlreadyExists},
	{errs.Unauthorized, CodeUnauthorized},
}

// publicError converts usecase errors into public errors carrying their api code.
func publicError(err error) error {
	for _, c := range errorCodes {
		if errors.Is(err, c.err) {
			return errs.WithPublicMessageCode(err, "", c.code)
		}
	}
	return errors.WithStack(err)
}

// callerRequest is embedded by every request that acts on behalf of a caller.
type callerRequest struct {
	Caller    common.Address `json:"caller"`
	Signature string         `json:"signature"`
}

func (r callerRequest) Validate() error {
	if r.Caller.IsZero() {
		return errs.NewPublicError("'caller' is required")
	}
	return nil
}

// verifyCaller checks the caller signature over message. Unsigned requests are accepted only when
// signatures are not required.
func (h *HttpHandler) verifyCaller(req callerRequest, message []byte) error {
	if req.Signature == "" && !h.requireSignature {
		return nil
	}
	if req.Signature == "" {
		return errs.WithPublicMessageCode(errors.Wrap(errs.Unauthorized, "'signature' is required"), "", CodeUnauthorized)
	}
	if err := signature.Verify(req.Caller, message, req.Signature); err != nil {
		return errs.WithPublicMessageCode(err, "", CodeUnauthorized)
	}
	return nil
}

func parseAddressParam(ctx *fiber.Ctx, name string) (common.Address, error) {
	addr, err := common.NewAddressFromString(ctx.Params(name))
	if err != nil {
		return common.Address{}, errs.WithPublicMessage(err, "invalid '"+name+"'")
	}
	return addr, nil
}
