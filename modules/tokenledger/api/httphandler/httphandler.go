package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common"
	"github.com/gaze-network/mint-authority/common/errs"
	"github.com/gaze-network/mint-authority/modules/tokenledger"
	"github.com/gaze-network/mint-authority/pkg/signature"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type HttpHandler struct {
	ledger tokenledger.Contract

	// ed25519 identities allowed to write
	clients map[common.Address]struct{}
}

func New(ledger tokenledger.Contract, clients []common.Address) *HttpHandler {
	return &HttpHandler{
		ledger:  ledger,
		clients: lo.SliceToMap(clients, func(c common.Address) (common.Address, struct{}) { return c, struct{}{} }),
	}
}

func (h *HttpHandler) Mount(router fiber.Router) error {
	if len(h.clients) == 0 {
		return errors.Wrap(errs.InvalidArgument, "token ledger can't be served without client keys")
	}
	r := router.Group("/v1/ledger")

	r.Post("/mints", h.authenticate(func(*fiber.Ctx) string { return tokenledger.OperationCreateMint }), h.CreateMint)
	r.Get("/mints/:mint", h.GetMint)
	r.Post("/mints/:mint/mint-to", h.authenticate(mintToOperation), h.MintTo)
	r.Get("/mints/:mint/balances/:owner", h.GetBalance)
	return nil
}

type HttpResponse[T any] common.HttpResponse[T]

// authenticate rejects write requests that are not signed by a registered client.
func (h *HttpHandler) authenticate(operation func(*fiber.Ctx) string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		client, err := common.NewAddressFromString(ctx.Get(tokenledger.HeaderClient))
		if err != nil {
			return publicLedgerError(errors.Wrapf(tokenledger.ErrUnauthenticatedClient, "invalid %s header", tokenledger.HeaderClient))
		}
		if _, ok := h.clients[client]; !ok {
			return publicLedgerError(errors.Wrapf(tokenledger.ErrUnauthenticatedClient, "unknown client %s", client))
		}
		message := signature.LedgerRequestMessage(operation(ctx), ctx.Get(tokenledger.HeaderIdempotencyKey), ctx.Body())
		if err := signature.Verify(client, message, ctx.Get(tokenledger.HeaderSignature)); err != nil {
			return publicLedgerError(errors.Wrap(tokenledger.ErrUnauthenticatedClient, err.Error()))
		}
		return ctx.Next()
	}
}

func mintToOperation(ctx *fiber.Ctx) string {
	mint, err := common.NewAddressFromString(ctx.Params("mint"))
	if err != nil {
		return ""
	}
	return tokenledger.OperationMintTo(mint)
}

// publicLedgerError converts ledger errors into public errors carrying their api code.
func publicLedgerError(err error) error {
	if code := tokenledger.CodeOf(err); code != "" {
		return errs.WithPublicMessageCode(err, "", code)
	}
	return errors.WithStack(err)
}

func parseAddressParam(ctx *fiber.Ctx, name string) (common.Address, error) {
	addr, err := common.NewAddressFromString(ctx.Params(name))
	if err != nil {
		return common.Address{}, errs.WithPublicMessage(err, "invalid '"+name+"'")
	}
	return addr, nil
}
