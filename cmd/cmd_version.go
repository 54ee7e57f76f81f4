package cmd

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common"
	"github.com/gaze-network/mint-authority/common/errs"
	mintingconstants "github.com/gaze-network/mint-authority/modules/minting/constants"
	"github.com/spf13/cobra"
)

type moduleVersion struct {
	Version   string
	DBVersion int
}

var versions = map[string]moduleVersion{
	common.ModuleMinting.String(): {mintingconstants.Version, mintingconstants.DBVersion},
}

func NewVersionCommand() *cobra.Command {
	var module string
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show mint-authority version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if module == "" {
				fmt.Fprintln(cmd.OutOrStdout(), mintingconstants.Version)
				return nil
			}
			v, ok := versions[module]
			if !ok {
				return errors.Wrapf(errs.Unsupported, "unknown module %q", module)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (db version %d)\n", v.Version, v.DBVersion)
			return nil
		},
	}
	cmd.Flags().StringVar(&module, "module", "", `Show version of a specific module. E.g. "minting"`)
	return cmd
}
