package usecase

import (
	"context"

	"github.com/gaze-network/mint-authority/modules/minting/constants"
	"github.com/gaze-network/mint-authority/modules/minting/internal/entity"
	"github.com/gaze-network/mint-authority/pkg/logger"
	"github.com/gaze-network/mint-authority/pkg/logger/slogx"
	"github.com/gaze-network/mint-authority/pkg/reportingclient"
)

// submitMintReport reports a committed mint in the background. Failures are logged only.
func (u *Usecase) submitMintReport(ctx context.Context, record *entity.MintRecord) {
	if u.reportingClient == nil {
		return
	}
	payload := reportingclient.SubmitMintReportPayload{
		Type:          "minting",
		ClientVersion: constants.Version,
		DBVersion:     constants.DBVersion,
		Network:       u.network,
		ProgramID:     u.resolver.ProgramID(),
		MintIndex:     record.SequenceIndex,
		Minter:        record.Minter,
		Amount:        record.Amount,
		RecordAddress: record.Address,
		Timestamp:     record.Timestamp,
	}
	ctx = context.WithoutCancel(ctx)
	go func() {
		if err := u.reportingClient.SubmitMintReport(ctx, payload); err != nil {
			logger.WarnContext(ctx, "failed to submit mint report", slogx.Error(err))
		}
	}()
}
