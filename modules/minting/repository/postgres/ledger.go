package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common"
	"github.com/gaze-network/mint-authority/modules/minting/repository/postgres/gen"
	"github.com/gaze-network/mint-authority/modules/tokenledger"
	"github.com/gaze-network/mint-authority/pkg/logger"
	"github.com/gaze-network/mint-authority/pkg/logger/slogx"
	"github.com/gaze-network/mint-authority/pkg/pda"
	"github.com/gaze-network/uint128"
	"github.com/jackc/pgx/v5"
)

var _ tokenledger.Contract = (*Repository)(nil)

func (r *Repository) CreateMint(ctx context.Context, authority pda.Signer, mint common.Address, decimals uint8) (*tokenledger.Mint, error) {
	if err := tokenledger.Authorize(authority, authority.Address()); err != nil {
		return nil, errors.WithStack(err)
	}
	affected, err := r.queries.CreateTokenMint(ctx, gen.CreateTokenMintParams{
		Address:   mint.String(),
		Authority: authority.Address().String(),
		Decimals:  int16(decimals),
	})
	if err != nil {
		return nil, errors.Wrap(err, "error during exec")
	}
	if affected == 0 {
		return nil, errors.Wrapf(tokenledger.ErrMintAlreadyExists, "mint %s", mint)
	}
	return &tokenledger.Mint{
		Address:   mint,
		Authority: authority.Address(),
		Decimals:  decimals,
		Supply:    uint128.Zero,
	}, nil
}

// MintTo locks the mint row, so concurrent mints to the same mint are serialized.
// Outside a transaction it runs in its own.
func (r *Repository) MintTo(ctx context.Context, authority pda.Signer, mint common.Address, destination common.Address, amount uint64) error {
	if r.tx != nil {
		return r.mintTo(ctx, authority, mint, destination, amount)
	}

	repo, err := r.begin(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	defer func() {
		if err := repo.Rollback(ctx); err != nil {
			logger.WarnContext(ctx, "failed to rollback transaction", slogx.Error(err))
		}
	}()
	if err := repo.mintTo(ctx, authority, mint, destination, amount); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(repo.Commit(ctx))
}

func (r *Repository) mintTo(ctx context.Context, authority pda.Signer, mint common.Address, destination common.Address, amount uint64) error {
	model, err := r.queries.GetTokenMintForUpdate(ctx, mint.String())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errors.Wrapf(tokenledger.ErrMintNotFound, "mint %s", mint)
		}
		return errors.Wrap(err, "error during query")
	}
	m, err := mapTokenMintModelToType(model)
	if err != nil {
		return errors.Wrap(err, "failed to parse token mint model")
	}
	if err := tokenledger.Authorize(authority, m.Authority); err != nil {
		return errors.WithStack(err)
	}

	// the key row commits or rolls back with the balance update
	if key, ok := tokenledger.IdempotencyKeyFrom(ctx); ok {
		digest := tokenledger.MintToDigest(mint, destination, amount)
		affected, err := r.queries.CreateTokenLedgerRequest(ctx, gen.CreateTokenLedgerRequestParams{
			IdempotencyKey: key,
			Mint:           mint.String(),
			Digest:         digest,
		})
		if err != nil {
			return errors.Wrap(err, "error during exec")
		}
		if affected == 0 {
			stored, err := r.queries.GetTokenLedgerRequestDigest(ctx, key)
			if err != nil {
				return errors.Wrap(err, "error during query")
			}
			return errors.WithStack(tokenledger.CheckReplay(key, stored, digest))
		}
	}

	balance, err := r.balanceOf(ctx, mint, destination)
	if err != nil {
		return errors.WithStack(err)
	}
	supply, balance, err := tokenledger.ApplyMint(m.Supply, balance, amount)
	if err != nil {
		return errors.WithStack(err)
	}

	supplyNumeric, err := numericFromUint128(&supply)
	if err != nil {
		return errors.WithStack(err)
	}
	balanceNumeric, err := numericFromUint128(&balance)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := r.queries.UpdateTokenMintSupply(ctx, gen.UpdateTokenMintSupplyParams{
		Address: mint.String(),
		Supply:  supplyNumeric,
	}); err != nil {
		return errors.Wrap(err, "error during exec")
	}
	if err := r.queries.UpsertTokenBalance(ctx, gen.UpsertTokenBalanceParams{
		Mint:    mint.String(),
		Owner:   destination.String(),
		Balance: balanceNumeric,
	}); err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

func (r *Repository) GetMint(ctx context.Context, mint common.Address) (*tokenledger.Mint, error) {
	model, err := r.queries.GetTokenMint(ctx, mint.String())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.Wrapf(tokenledger.ErrMintNotFound, "mint %s", mint)
		}
		return nil, errors.Wrap(err, "error during query")
	}
	m, err := mapTokenMintModelToType(model)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token mint model")
	}
	return m, nil
}

func (r *Repository) BalanceOf(ctx context.Context, mint common.Address, owner common.Address) (uint128.Uint128, error) {
	if _, err := r.GetMint(ctx, mint); err != nil {
		return uint128.Uint128{}, errors.WithStack(err)
	}
	return r.balanceOf(ctx, mint, owner)
}

func (r *Repository) balanceOf(ctx context.Context, mint common.Address, owner common.Address) (uint128.Uint128, error) {
	numeric, err := r.queries.GetTokenBalance(ctx, gen.GetTokenBalanceParams{
		Mint:  mint.String(),
		Owner: owner.String(),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uint128.Zero, nil
		}
		return uint128.Uint128{}, errors.Wrap(err, "error during query")
	}
	balance, err := uint128FromNumeric(numeric)
	if err != nil {
		return uint128.Uint128{}, errors.Wrap(err, "failed to parse balance")
	}
	if balance == nil {
		return uint128.Zero, nil
	}
	return *balance, nil
}
