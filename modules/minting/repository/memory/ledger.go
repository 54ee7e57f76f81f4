package memory

import (
	"context"

	"github.com/gaze-network/mint-authority/common"
	"github.com/gaze-network/mint-authority/modules/tokenledger"
	"github.com/gaze-network/mint-authority/pkg/pda"
	"github.com/gaze-network/uint128"
)

var _ tokenledger.Contract = (*Repository)(nil)

func (r *Repository) CreateMint(ctx context.Context, authority pda.Signer, mint common.Address, decimals uint8) (*tokenledger.Mint, error) {
	var result *tokenledger.Mint
	err := r.write(func(s *state) (err error) {
		result, err = s.ledger.CreateMint(ctx, authority, mint, decimals)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *Repository) MintTo(ctx context.Context, authority pda.Signer, mint common.Address, destination common.Address, amount uint64) error {
	return r.write(func(s *state) error {
		return s.ledger.MintTo(ctx, authority, mint, destination, amount)
	})
}

func (r *Repository) GetMint(ctx context.Context, mint common.Address) (*tokenledger.Mint, error) {
	var result *tokenledger.Mint
	err := r.read(func(s *state) (err error) {
		result, err = s.ledger.GetMint(ctx, mint)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *Repository) BalanceOf(ctx context.Context, mint common.Address, owner common.Address) (uint128.Uint128, error) {
	var balance uint128.Uint128
	err := r.read(func(s *state) (err error) {
		balance, err = s.ledger.BalanceOf(ctx, mint, owner)
		return err
	})
	if err != nil {
		return uint128.Uint128{}, err
	}
	return balance, nil
}
