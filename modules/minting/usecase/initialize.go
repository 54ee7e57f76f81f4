package usecase

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common"
	"github.com/gaze-network/mint-authority/common/errs"
	"github.com/gaze-network/mint-authority/modules/minting/constants"
	"github.com/gaze-network/mint-authority/modules/minting/internal/entity"
	"github.com/gaze-network/mint-authority/pkg/logger"
	"github.com/gaze-network/mint-authority/pkg/logger/slogx"
)

// Initialize creates the configuration record with caller as admin. It succeeds exactly once per deployment.
func (u *Usecase) Initialize(ctx context.Context, caller common.Address) (*entity.ConfigurationRecord, error) {
	if caller.IsZero() {
		return nil, errors.WithStack(ErrInvalidCaller)
	}

	// no viable bump is fatal, the deployment can't hold a configuration record
	configAddress, configBump, err := u.resolver.Find(constants.ConfigTag)
	if err != nil {
		return nil, errors.Wrap(err, "can't derive configuration address")
	}
	_, authorityBump, err := u.resolver.Find(constants.AuthorityTag)
	if err != nil {
		return nil, errors.Wrap(err, "can't derive signing authority")
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

	now := u.now().UTC()
	config := &entity.ConfigurationRecord{
		Address:       configAddress,
		Admin:         caller,
		Bump:          configBump,
		AuthorityBump: authorityBump,
		MintSequence:  0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := dgTx.CreateConfig(ctx, config); err != nil {
		if errors.Is(err, errs.Conflict) {
			return nil, errors.WithStack(ErrAlreadyInitialized)
		}
		return nil, errors.Wrap(err, "failed to create configuration record")
	}
	if err := dgTx.Commit(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to commit transaction")
	}

	logger.InfoContext(ctx, "Initialized configuration record",
		slog.String("address", configAddress.String()),
		slog.String("admin", caller.String()),
	)
	return config, nil
}
