package cmd

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common/errs"
	"github.com/gaze-network/mint-authority/internal/config"
	"github.com/gaze-network/mint-authority/modules/minting"
	"github.com/gaze-network/mint-authority/modules/minting/exporter"
	mintingusecase "github.com/gaze-network/mint-authority/modules/minting/usecase"
	"github.com/gaze-network/mint-authority/pkg/logger"
	"github.com/gaze-network/mint-authority/pkg/logger/slogx"
	"github.com/gaze-network/mint-authority/pkg/pda"
	"github.com/spf13/cobra"
)

func NewExportAuditCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-audit",
		Short: "Export every mint record to a parquet file, locally or to S3",
		Example: `mint-authority export-audit --path ./exports
mint-authority export-audit --bucket my-audit-bucket --prefix mint-authority`,
		RunE: exportAuditHandler,
	}

	flags := cmd.Flags()
	flags.String("path", "", "Output directory of the export file")
	flags.String("bucket", "", "Upload the export to this S3 bucket instead of a local file")
	flags.String("prefix", "", "Key prefix of the S3 object")
	flags.String("region", "", "S3 region")
	flags.Int32("batch-size", exporter.DefaultBatchSize, "Number of mint records fetched per query")

	config.BindPFlag("modules.minting.export.path", flags.Lookup("path"))
	config.BindPFlag("modules.minting.export.bucket", flags.Lookup("bucket"))
	config.BindPFlag("modules.minting.export.prefix", flags.Lookup("prefix"))
	config.BindPFlag("modules.minting.export.region", flags.Lookup("region"))
	config.BindPFlag("modules.minting.export.batch_size", flags.Lookup("batch-size"))

	return cmd
}

func exportAuditHandler(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	conf := config.Load()
	mintingConf := conf.Modules.Minting
	if mintingConf.Database == "memory" {
		return errors.Wrap(errs.Unsupported, "can't export an in-memory database from another process")
	}

	dg, cleanup, err := minting.NewDataGateway(ctx, mintingConf)
	if err != nil {
		return errors.WithStack(err)
	}
	defer func() {
		if err := cleanup(ctx); err != nil {
			logger.WarnContext(ctx, "failed to close minting database", slogx.Error(err))
		}
	}()
	programID, err := minting.ProgramID(mintingConf)
	if err != nil {
		return errors.WithStack(err)
	}

	usecase := mintingusecase.New(dg, pda.NewResolver(programID), conf.Network)
	location, count, err := exporter.New(usecase, mintingConf.Export.BatchSize).ExportTo(ctx, mintingConf.Export, conf.Network, time.Now())
	if err != nil {
		return errors.Wrap(err, "failed to export mint records")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d mint records to %s\n", count, location)
	return nil
}
