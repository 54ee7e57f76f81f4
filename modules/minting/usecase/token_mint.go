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

// CreateTokenMint creates the token mint with the derived signing authority as its mint authority.
func (u *Usecase) CreateTokenMint(ctx context.Context, caller common.Address) (*tokenledger.Mint, error) {
	if caller.IsZero() {
		return nil, errors.WithStack(ErrInvalidCaller)
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

	config, err := dgTx.GetConfigForUpdate(ctx)
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return nil, errors.WithStack(ErrNotInitialized)
		}
		return nil, errors.Wrap(err, "failed to get configuration record")
	}
	authority, err := u.authority(config)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	mintAddress, err := u.TokenMintAddress()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	mint, err := u.ledgerOf(dgTx).CreateMint(ctx, authority, mintAddress, constants.TokenDecimals)
	if err != nil {
		if errors.Is(err, tokenledger.ErrMintAlreadyExists) {
			return nil, errors.WithStack(ErrMintAlreadyExists)
		}
		return nil, errors.Join(ErrDelegationFailed, err)
	}
	if err := dgTx.Commit(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to commit transaction")
	}

	logger.InfoContext(ctx, "Created token mint",
		slog.String("mint", mint.Address.String()),
		slog.String("authority", mint.Authority.String()),
		slog.String("caller", caller.String()),
	)
	return mint, nil
}

// TokenMintAddress returns the derived address of the token mint.
func (u *Usecase) TokenMintAddress() (common.Address, error) {
	addr, _, err := u.resolver.Find(constants.TokenMintTag)
	if err != nil {
		return common.Address{}, errors.Wrap(err, "can't derive token mint address")
	}
	return addr, nil
}

// authority re-derives the signing authority from the proof stored in the configuration record.
func (u *Usecase) authority(config *entity.ConfigurationRecord) (pda.Signer, error) {
	signer, err := u.resolver.Signer(config.AuthorityBump, constants.AuthorityTag)
	if err != nil {
		return pda.Signer{}, errors.Wrap(err, "can't derive signing authority")
	}
	return signer, nil
}
