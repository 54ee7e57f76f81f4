// Package memory is an in-process token ledger.
package memory

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common"
	"github.com/gaze-network/mint-authority/modules/tokenledger"
	"github.com/gaze-network/mint-authority/pkg/pda"
	"github.com/gaze-network/uint128"
)

type balanceKey struct {
	mint  common.Address
	owner common.Address
}

type Ledger struct {
	mu       sync.RWMutex
	mints    map[common.Address]tokenledger.Mint
	balances map[balanceKey]uint128.Uint128
	requests map[string]string // idempotency key to MintToDigest
}

var _ tokenledger.Contract = (*Ledger)(nil)

func New() *Ledger {
	return &Ledger{
		mints:    make(map[common.Address]tokenledger.Mint),
		balances: make(map[balanceKey]uint128.Uint128),
		requests: make(map[string]string),
	}
}

func (l *Ledger) CreateMint(ctx context.Context, authority pda.Signer, mint common.Address, decimals uint8) (*tokenledger.Mint, error) {
	if err := tokenledger.Authorize(authority, authority.Address()); err != nil {
		return nil, errors.WithStack(err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.mints[mint]; ok {
		return nil, errors.Wrapf(tokenledger.ErrMintAlreadyExists, "mint %s", mint)
	}
	m := tokenledger.Mint{
		Address:   mint,
		Authority: authority.Address(),
		Decimals:  decimals,
		Supply:    uint128.Zero,
	}
	l.mints[mint] = m
	return &m, nil
}

func (l *Ledger) MintTo(ctx context.Context, authority pda.Signer, mint common.Address, destination common.Address, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.mints[mint]
	if !ok {
		return errors.Wrapf(tokenledger.ErrMintNotFound, "mint %s", mint)
	}
	if err := tokenledger.Authorize(authority, m.Authority); err != nil {
		return errors.WithStack(err)
	}

	requestKey, hasKey := tokenledger.IdempotencyKeyFrom(ctx)
	digest := tokenledger.MintToDigest(mint, destination, amount)
	if hasKey {
		if stored, ok := l.requests[requestKey]; ok {
			return errors.WithStack(tokenledger.CheckReplay(requestKey, stored, digest))
		}
	}

	key := balanceKey{mint: mint, owner: destination}
	supply, balance, err := tokenledger.ApplyMint(m.Supply, l.balances[key], amount)
	if err != nil {
		return errors.WithStack(err)
	}
	m.Supply = supply
	l.mints[mint] = m
	l.balances[key] = balance
	if hasKey {
		l.requests[requestKey] = digest
	}
	return nil
}

func (l *Ledger) GetMint(ctx context.Context, mint common.Address) (*tokenledger.Mint, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	m, ok := l.mints[mint]
	if !ok {
		return nil, errors.Wrapf(tokenledger.ErrMintNotFound, "mint %s", mint)
	}
	return &m, nil
}

func (l *Ledger) BalanceOf(ctx context.Context, mint common.Address, owner common.Address) (uint128.Uint128, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if _, ok := l.mints[mint]; !ok {
		return uint128.Uint128{}, errors.Wrapf(tokenledger.ErrMintNotFound, "mint %s", mint)
	}
	return l.balances[balanceKey{mint: mint, owner: owner}], nil
}

// Clone returns an independent copy of the ledger state.
func (l *Ledger) Clone() *Ledger {
	l.mu.RLock()
	defer l.mu.RUnlock()

	clone := &Ledger{
		mints:    make(map[common.Address]tokenledger.Mint, len(l.mints)),
		balances: make(map[balanceKey]uint128.Uint128, len(l.balances)),
		requests: make(map[string]string, len(l.requests)),
	}
	for k, v := range l.mints {
		clone.mints[k] = v
	}
	for k, v := range l.balances {
		clone.balances[k] = v
	}
	for k, v := range l.requests {
		clone.requests[k] = v
	}
	return clone
}
