package usecase

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common"
	"github.com/gaze-network/mint-authority/common/errs"
	"github.com/gaze-network/mint-authority/modules/minting/constants"
	"github.com/gaze-network/mint-authority/modules/minting/internal/entity"
	"github.com/gaze-network/mint-authority/modules/tokenledger"
	"github.com/gaze-network/mint-authority/pkg/logger"
	"github.com/gaze-network/mint-authority/pkg/logger/slogx"
	"github.com/gaze-network/mint-authority/pkg/pda"
)

// Mint credits amount to caller and records the mint at claimedIndex. claimedIndex must be exactly the
// configuration's mint sequence + 1. Either every effect is committed or none is.
func (u *Usecase) Mint(ctx context.Context, caller common.Address, amount uint64, claimedIndex uint64) (*entity.MintRecord, error) {
	if caller.IsZero() {
		return nil, errors.WithStack(ErrInvalidCaller)
	}
	if amount == 0 {
		return nil, errors.WithStack(ErrInvalidAmount)
	}

	dgTx, err := u.dg.BeginMintingTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		if err := dgTx.Rollback(ctx); err != nil {
			logger.WarnContext(ctx, "failed to rollback transaction", slogx.Error(err))
		}
	}()

	// locked until commit or rollback, concurrent mints queue here
	config, err := dgTx.GetConfigForUpdate(ctx)
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return nil, errors.WithStack(ErrNotInitialized)
		}
		return nil, errors.Wrap(err, "failed to get configuration record")
	}

	next, err := config.NextMintIndex()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if claimedIndex != next {
		return nil, errors.WithStack(&InvalidMintIndexError{Expected: next, Claimed: claimedIndex})
	}

	if err := dgTx.UpdateMintSequence(ctx, config.Address, next, u.now().UTC()); err != nil {
		return nil, errors.Wrap(err, "failed to update mint sequence")
	}

	recordAddress, _, err := u.resolver.Find(constants.MintRecordTag, pda.Uint64Seed(next))
	if err != nil {
		return nil, errors.Wrap(err, "can't derive mint record address")
	}
	record := &entity.MintRecord{
		Address:       recordAddress,
		Minter:        caller,
		Amount:        amount,
		Timestamp:     u.now().Unix(),
		SequenceIndex: next,
	}
	if err := dgTx.CreateMintRecord(ctx, record); err != nil {
		if errors.Is(err, errs.Conflict) {
			return nil, errors.Wrapf(ErrDuplicateRecord, "index %d at %s", next, recordAddress)
		}
		return nil, errors.Wrap(err, "failed to create mint record")
	}

	// delegation goes last, the only step a remote ledger can't roll back
	authority, err := u.authority(config)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	mintAddress, err := u.TokenMintAddress()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	delegateCtx := tokenledger.WithIdempotencyKey(ctx, recordAddress.String())
	if err := u.ledgerOf(dgTx).MintTo(delegateCtx, authority, mintAddress, caller, amount); err != nil {
		return nil, errors.Join(ErrDelegationFailed, err)
	}

	if err := dgTx.Commit(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to commit transaction")
	}

	logger.InfoContext(ctx, "Minted",
		slog.Uint64("index", record.SequenceIndex),
		slog.Uint64("amount", record.Amount),
		slog.String("minter", record.Minter.String()),
		slog.String("record", record.Address.String()),
	)
	u.submitMintReport(ctx, record)
	return record, nil
}
