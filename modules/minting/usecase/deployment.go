package usecase

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common/errs"
	"github.com/gaze-network/mint-authority/modules/minting/constants"
	"github.com/gaze-network/mint-authority/modules/minting/internal/entity"
	"github.com/gaze-network/mint-authority/pkg/logger"
)

// VerifyDeployment checks that the database was created by the same network and program, then records the running client version.
func (u *Usecase) VerifyDeployment(ctx context.Context) error {
	stats, err := u.dg.GetDeploymentStats(ctx)
	if err != nil && !errors.Is(err, errs.NotFound) {
		return errors.Wrap(err, "failed to get deployment stats")
	}
	if stats != nil {
		if stats.Network != u.network {
			return errors.Wrapf(ErrDeploymentMismatch, "network mismatch, stored %q, configured %q", stats.Network, u.network)
		}
		if stats.ProgramID != u.resolver.ProgramID() {
			return errors.Wrapf(ErrDeploymentMismatch, "program id mismatch, stored %s, configured %s", stats.ProgramID, u.resolver.ProgramID())
		}
		if stats.DBVersion > constants.DBVersion {
			return errors.Wrapf(errs.Unsupported, "database version %d is newer than supported %d", stats.DBVersion, constants.DBVersion)
		}
		if stats.ClientVersion == constants.Version && stats.DBVersion == constants.DBVersion {
			return nil
		}
	}

	if err := u.dg.UpdateDeploymentStats(ctx, entity.DeploymentStats{
		ClientVersion: constants.Version,
		DBVersion:     constants.DBVersion,
		Network:       u.network,
		ProgramID:     u.resolver.ProgramID(),
	}); err != nil {
		return errors.Wrap(err, "failed to update deployment stats")
	}
	logger.InfoContext(ctx, "Recorded deployment stats",
		slog.String("version", constants.Version),
		slog.String("network", u.network.String()),
		slog.String("program_id", u.resolver.ProgramID().String()),
	)
	return nil
}
