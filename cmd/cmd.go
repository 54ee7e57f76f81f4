package cmd

import (
	"context"
	"log/slog"

	"github.com/gaze-network/mint-authority/internal/config"
	"github.com/gaze-network/mint-authority/pkg/logger"
	"github.com/gaze-network/mint-authority/pkg/logger/slogx"
	"github.com/spf13/cobra"
)

var cmd = &cobra.Command{
	Use:   "mint-authority",
	Long:  `Mint authority validates, sequences and records every mint of a single fungible token.`,
	Short: "Minting authorization ledger",
}

func init() {
	var configFile string

	// Add global flags
	flags := cmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file, E.g. `./config.yaml`")
	flags.String("network", "localnet", "network of the deployment, E.g. `mainnet`, `devnet`, `testnet` or `localnet`")

	// Bind flags to configuration
	config.BindPFlag("network", flags.Lookup("network"))

	// Initialize configuration and logger on start command
	cobra.OnInitialize(func() {
		// Initialize configuration
		config := config.Parse(configFile)

		// Initialize logger
		if err := logger.Init(config.Logger); err != nil {
			logger.Panic("Failed to initialize logger", slogx.Error(err), slog.Any("config", config.Logger))
		}
	})
}

func Execute(ctx context.Context) {
	// Register sub-commands
	cmd.AddCommand(
		NewRunCommand(),
		NewMigrateCommand(),
		NewGenerateKeypairCommand(),
		NewVersionCommand(),
		NewClientCommand(),
		NewExportAuditCommand(),
	)

	// Execute command
	if err := cmd.ExecuteContext(ctx); err != nil {
		logger.Panic("Failed to execute root command", slogx.Error(err))
	}
}
