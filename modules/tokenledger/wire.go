package tokenledger

import (
	"encoding/hex"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common"
	"github.com/gaze-network/mint-authority/common/errs"
	"github.com/gaze-network/mint-authority/pkg/pda"
	"github.com/gaze-network/uint128"
	"github.com/samber/lo"
)

// Error codes of the ledger http api.
const (
	CodeMintNotFound          = "MINT_NOT_FOUND"
	CodeMintAlreadyExists     = "MINT_ALREADY_EXISTS"
	CodeUnauthorizedAuthority = "UNAUTHORIZED_AUTHORITY"
	CodeSupplyOverflow        = "SUPPLY_OVERFLOW"
	CodeIdempotencyKeyReused  = "IDEMPOTENCY_KEY_REUSED"
	CodeUnauthenticatedClient = "UNAUTHENTICATED_CLIENT"
)

// Request headers of the ledger http api. Writes must be signed by a registered client, see
// signature.LedgerRequestMessage.
const (
	HeaderClient         = "X-Ledger-Client"
	HeaderSignature      = "X-Ledger-Signature"
	HeaderIdempotencyKey = "Idempotency-Key"
)

// Operations bound into signed ledger requests.
const OperationCreateMint = "create_mint"

func OperationMintTo(mint common.Address) string {
	return "mint_to:" + mint.String()
}

var codeErrors = map[string]error{
	CodeMintNotFound:          ErrMintNotFound,
	CodeMintAlreadyExists:     ErrMintAlreadyExists,
	CodeUnauthorizedAuthority: ErrUnauthorizedAuthority,
	CodeSupplyOverflow:        ErrSupplyOverflow,
	CodeIdempotencyKeyReused:  ErrIdempotencyKeyReused,
	CodeUnauthenticatedClient: ErrUnauthenticatedClient,
}

// ErrorFromCode returns the sentinel error of an api error code.
func ErrorFromCode(code string) (error, bool) {
	err, ok := codeErrors[code]
	return err, ok
}

// CodeOf returns the api error code of a ledger error.
func CodeOf(err error) string {
	for code, target := range codeErrors {
		if errors.Is(err, target) {
			return code
		}
	}
	return ""
}

// SignerPayload is the wire form of a program signer.
type SignerPayload struct {
	ProgramID common.Address `json:"programId"`
	Seeds     []string       `json:"seeds"`
	Bump      uint8          `json:"bump"`
}

func NewSignerPayload(signer pda.Signer) SignerPayload {
	return SignerPayload{
		ProgramID: signer.ProgramID(),
		Seeds:     lo.Map(signer.Seeds(), func(seed []byte, _ int) string { return hex.EncodeToString(seed) }),
		Bump:      signer.Bump(),
	}
}

func (p SignerPayload) Signer() (pda.Signer, error) {
	seeds := make([][]byte, 0, len(p.Seeds))
	for _, s := range p.Seeds {
		seed, err := hex.DecodeString(s)
		if err != nil {
			return pda.Signer{}, errors.Wrapf(errs.InvalidArgument, "invalid seed %q", s)
		}
		seeds = append(seeds, seed)
	}
	return pda.NewSigner(p.ProgramID, seeds, p.Bump), nil
}

type CreateMintRequest struct {
	Authority SignerPayload  `json:"authority"`
	Mint      common.Address `json:"mint"`
	Decimals  uint8          `json:"decimals"`
}

type MintToRequest struct {
	Authority   SignerPayload  `json:"authority"`
	Destination common.Address `json:"destination"`
	Amount      uint64         `json:"amount"`
}

type BalanceResult struct {
	Mint    common.Address  `json:"mint"`
	Owner   common.Address  `json:"owner"`
	Balance uint128.Uint128 `json:"balance"`
}
