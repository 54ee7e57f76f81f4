package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common"
	"github.com/gaze-network/mint-authority/common/errs"
	"github.com/gaze-network/mint-authority/modules/minting/internal/entity"
	"github.com/gaze-network/mint-authority/modules/tokenledger"
	"github.com/gaze-network/uint128"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// maxBatchChunk is the number of indexes fetched per datagateway call in GetMintRecords.
const maxBatchChunk = 500

func (u *Usecase) GetConfig(ctx context.Context) (*entity.ConfigurationRecord, error) {
	config, err := u.dg.GetConfig(ctx)
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return nil, errors.WithStack(ErrNotInitialized)
		}
		return nil, errors.Wrap(err, "failed to get configuration record")
	}
	return config, nil
}

// GetMintRecord returns errs.NotFound if no mint was completed at index.
func (u *Usecase) GetMintRecord(ctx context.Context, index uint64) (*entity.MintRecord, error) {
	record, err := u.dg.GetMintRecord(ctx, index)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get mint record %d", index)
	}
	return record, nil
}

// GetMintRecords returns the records of the given indexes, missing indexes are omitted.
func (u *Usecase) GetMintRecords(ctx context.Context, indexes []uint64) (map[uint64]*entity.MintRecord, error) {
	indexes = lo.Uniq(indexes)
	chunks := lo.Chunk(indexes, maxBatchChunk)
	results := make([]map[uint64]*entity.MintRecord, len(chunks))

	eg, ectx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		eg.Go(func() error {
			records, err := u.dg.GetMintRecordsByIndexes(ectx, chunk)
			if err != nil {
				return errors.Wrap(err, "failed to get mint records")
			}
			results[i] = records
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, errors.WithStack(err)
	}
	return lo.Assign(results...), nil
}

func (u *Usecase) ListMintRecords(ctx context.Context, limit int32, offset int32) ([]*entity.MintRecord, uint64, error) {
	records, err := u.dg.ListMintRecords(ctx, limit, offset)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list mint records")
	}
	total, err := u.dg.CountMintRecords(ctx)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to count mint records")
	}
	return records, total, nil
}

// GetBalance returns the token balance of owner.
func (u *Usecase) GetBalance(ctx context.Context, owner common.Address) (uint128.Uint128, error) {
	mintAddress, err := u.TokenMintAddress()
	if err != nil {
		return uint128.Uint128{}, errors.WithStack(err)
	}
	balance, err := u.ledgerOf(u.dg).BalanceOf(ctx, mintAddress, owner)
	if err != nil {
		return uint128.Uint128{}, errors.Wrap(err, "failed to get balance")
	}
	return balance, nil
}

// GetTokenMint returns the token mint created by CreateTokenMint.
func (u *Usecase) GetTokenMint(ctx context.Context) (*tokenledger.Mint, error) {
	mintAddress, err := u.TokenMintAddress()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	mint, err := u.ledgerOf(u.dg).GetMint(ctx, mintAddress)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get token mint")
	}
	return mint, nil
}
