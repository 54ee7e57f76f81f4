package client

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common"
	"github.com/gaze-network/mint-authority/pkg/signature"
	"github.com/spf13/cobra"
)

func newInitializeCommand(opts *clientCmdOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "initialize",
		Short: "Create the configuration record with the keypair as admin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := opts.sign(signature.InitializeMessage)
			if err != nil {
				return errors.WithStack(err)
			}
			result, err := opts.call(cmd.Context(), http.MethodPost, "/v1/minting/initialize", req)
			if err != nil {
				return errors.WithStack(err)
			}
			return printResult(cmd.OutOrStdout(), result)
		},
	}
}

func newCreateTokenMintCommand(opts *clientCmdOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "create-token-mint",
		Short: "Create the token mint owned by the signing authority",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := opts.sign(signature.CreateTokenMintMessage)
			if err != nil {
				return errors.WithStack(err)
			}
			result, err := opts.call(cmd.Context(), http.MethodPost, "/v1/minting/token-mint", req)
			if err != nil {
				return errors.WithStack(err)
			}
			return printResult(cmd.OutOrStdout(), result)
		},
	}
}

type mintCmdOptions struct {
	Amount string
	Raw    bool
	Index  uint64
}

type mintRequest struct {
	signedRequest
	Amount    uint64 `json:"amount"`
	MintIndex uint64 `json:"mintIndex"`
}

func newMintCommand(opts *clientCmdOptions) *cobra.Command {
	mintOpts := &mintCmdOptions{}

	cmd := &cobra.Command{
		Use:     "mint",
		Short:   "Mint tokens to the keypair",
		Args:    cobra.NoArgs,
		Example: `mint-authority client mint --keypair /data/keys/priv.key --amount 1.5`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			amount, err := parseAmount(mintOpts.Amount, mintOpts.Raw)
			if err != nil {
				return errors.WithStack(err)
			}

			index := mintOpts.Index
			if index == 0 {
				index, err = nextMintIndex(cmd, opts)
				if err != nil {
					return errors.WithStack(err)
				}
			}

			req, err := opts.sign(func(programID common.Address) []byte {
				return signature.MintMessage(programID, amount, index)
			})
			if err != nil {
				return errors.WithStack(err)
			}
			result, err := opts.call(cmd.Context(), http.MethodPost, "/v1/minting/mint", mintRequest{
				signedRequest: req,
				Amount:        amount,
				MintIndex:     index,
			})
			if err != nil {
				return errors.WithStack(err)
			}
			return printResult(cmd.OutOrStdout(), result)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&mintOpts.Amount, "amount", "", "Amount to mint in token units, E.g. `1.5`")
	flags.BoolVar(&mintOpts.Raw, "raw", false, "Amount is in base units instead of token units")
	flags.Uint64Var(&mintOpts.Index, "index", 0, "Mint index to claim. Default is the next index of the configuration record")

	return cmd
}

func nextMintIndex(cmd *cobra.Command, opts *clientCmdOptions) (uint64, error) {
	result, err := opts.call(cmd.Context(), http.MethodGet, "/v1/minting/config", nil)
	if err != nil {
		return 0, errors.Wrap(err, "can't get configuration record")
	}
	var config struct {
		NextMintIndex uint64 `json:"nextMintIndex"`
	}
	if err := json.Unmarshal(result, &config); err != nil {
		return 0, errors.Wrap(err, "invalid configuration record")
	}
	return config.NextMintIndex, nil
}

func newConfigCommand(opts *clientCmdOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the configuration record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := opts.call(cmd.Context(), http.MethodGet, "/v1/minting/config", nil)
			if err != nil {
				return errors.WithStack(err)
			}
			return printResult(cmd.OutOrStdout(), result)
		},
	}
}

func newRecordCommand(opts *clientCmdOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "record <index>",
		Short: "Show the mint record of a mint index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return errors.Wrap(err, "invalid mint index")
			}
			result, err := opts.call(cmd.Context(), http.MethodGet, "/v1/minting/records/"+strconv.FormatUint(index, 10), nil)
			if err != nil {
				return errors.WithStack(err)
			}
			return printResult(cmd.OutOrStdout(), result)
		},
	}
}

func newBalanceCommand(opts *clientCmdOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "balance [owner]",
		Short: "Show the token balance of owner. Default is the keypair",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var owner common.Address
			if len(args) > 0 {
				addr, err := common.NewAddressFromString(args[0])
				if err != nil {
					return errors.Wrap(err, "invalid owner")
				}
				owner = addr
			} else {
				keypair, err := opts.keypair()
				if err != nil {
					return errors.WithStack(err)
				}
				owner = keypair.Address()
			}
			result, err := opts.call(cmd.Context(), http.MethodGet, "/v1/minting/balances/"+owner.String(), nil)
			if err != nil {
				return errors.WithStack(err)
			}
			return printResult(cmd.OutOrStdout(), result)
		},
	}
}
