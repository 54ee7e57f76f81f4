// Package tokenledger defines the token-balance ledger that the minting module delegates balance updates to.
package tokenledger

import (
	"context"
	"encoding/binary"
	"encoding/hex"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common"
	"github.com/gaze-network/mint-authority/common/errs"
	"github.com/gaze-network/mint-authority/pkg/pda"
	"github.com/gaze-network/uint128"
)

var (
	ErrMintNotFound          = errors.Wrap(errs.NotFound, "token mint not found")
	ErrMintAlreadyExists     = errors.Wrap(errs.Conflict, "token mint already exists")
	ErrUnauthorizedAuthority = errors.Wrap(errs.Unauthorized, "signer is not the mint authority")
	ErrSupplyOverflow        = errors.Wrap(errs.OverflowUint128, "token supply overflow")
	ErrIdempotencyKeyReused  = errors.Wrap(errs.Conflict, "idempotency key was used for another request")
	ErrUnauthenticatedClient = errors.Wrap(errs.Unauthorized, "ledger client is not authenticated")
)

// Contract is the token-balance ledger. Every state change must be authorized by a program signer
// whose derived address matches the mint authority.
//
// MintTo with an idempotency key in ctx is applied at most once per key. Repeating the key with the same
// mint, destination and amount is a no-op, with any other payload it fails with ErrIdempotencyKeyReused.
type Contract interface {
	CreateMint(ctx context.Context, authority pda.Signer, mint common.Address, decimals uint8) (*Mint, error)
	MintTo(ctx context.Context, authority pda.Signer, mint common.Address, destination common.Address, amount uint64) error
	GetMint(ctx context.Context, mint common.Address) (*Mint, error)
	BalanceOf(ctx context.Context, mint common.Address, owner common.Address) (uint128.Uint128, error)
}

type Mint struct {
	Address   common.Address  `json:"address"`
	Authority common.Address  `json:"authority"`
	Decimals  uint8           `json:"decimals"`
	Supply    uint128.Uint128 `json:"supply"`
}

// Authorize checks that the signer re-derives to the mint authority.
func Authorize(authority pda.Signer, expected common.Address) error {
	if !authority.Verify(expected) {
		return errors.Wrapf(ErrUnauthorizedAuthority, "expected %s, got %s", expected, authority.Address())
	}
	return nil
}

// ApplyMint returns the new supply and destination balance after minting amount.
func ApplyMint(supply, balance uint128.Uint128, amount uint64) (newSupply uint128.Uint128, newBalance uint128.Uint128, err error) {
	newSupply, overflow := supply.AddOverflow(uint128.From64(amount))
	if overflow {
		return uint128.Uint128{}, uint128.Uint128{}, errors.WithStack(ErrSupplyOverflow)
	}
	// balance never exceeds supply
	newBalance = balance.Add64(amount)
	return newSupply, newBalance, nil
}

type idempotencyKey struct{}

// WithIdempotencyKey attaches a key that remote ledgers use to deduplicate retried requests.
func WithIdempotencyKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, idempotencyKey{}, key)
}

func IdempotencyKeyFrom(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(idempotencyKey{}).(string)
	return key, ok && key != ""
}

// MintToDigest identifies the payload of a MintTo call, stored along with its idempotency key.
func MintToDigest(mint common.Address, destination common.Address, amount uint64) string {
	data := make([]byte, 0, len(mint)+len(destination)+8)
	data = append(data, mint[:]...)
	data = append(data, destination[:]...)
	data = binary.LittleEndian.AppendUint64(data, amount)
	return hex.EncodeToString(chainhash.HashB(data))
}

// CheckReplay compares the digest stored for a key with the digest of the current call.
func CheckReplay(key string, stored string, digest string) error {
	if stored != digest {
		return errors.Wrapf(ErrIdempotencyKeyReused, "key %s", key)
	}
	return nil
}
