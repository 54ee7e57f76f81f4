// Package client holds the cli commands that call a running mint-authority api.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common"
	"github.com/gaze-network/mint-authority/internal/config"
	"github.com/gaze-network/mint-authority/modules/minting/constants"
	"github.com/gaze-network/mint-authority/pkg/httpclient"
	"github.com/gaze-network/mint-authority/pkg/signature"
	"github.com/spf13/cobra"
)

type clientCmdOptions struct {
	URL         string
	KeypairPath string
	ProgramID   string
	Debug       bool
}

// signedRequest is the caller part of every state changing request.
type signedRequest struct {
	Caller    common.Address `json:"caller"`
	Signature string         `json:"signature"`
}

func (o *clientCmdOptions) httpClient() (*httpclient.Client, error) {
	client, err := httpclient.New(o.URL, httpclient.Config{Debug: o.Debug})
	if err != nil {
		return nil, errors.Wrap(err, "can't create http client")
	}
	return client, nil
}

func (o *clientCmdOptions) keypair() (*signature.Keypair, error) {
	if o.KeypairPath == "" {
		return nil, errors.New("--keypair is required")
	}
	keypair, err := signature.LoadKeypair(o.KeypairPath)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return keypair, nil
}

// programID resolves the program id that messages are signed for: flag, then configuration, then the built-in id.
func (o *clientCmdOptions) programID() (common.Address, error) {
	id := o.ProgramID
	if id == "" {
		id = config.Load().Modules.Minting.ProgramID
	}
	if id == "" {
		return constants.DefaultProgramID, nil
	}
	programID, err := common.NewAddressFromString(id)
	if err != nil {
		return common.Address{}, errors.Wrap(err, "invalid program id")
	}
	return programID, nil
}

// sign signs message with the keypair and returns the caller fields of the request.
func (o *clientCmdOptions) sign(message func(programID common.Address) []byte) (signedRequest, error) {
	keypair, err := o.keypair()
	if err != nil {
		return signedRequest{}, errors.WithStack(err)
	}
	programID, err := o.programID()
	if err != nil {
		return signedRequest{}, errors.WithStack(err)
	}
	return signedRequest{
		Caller:    keypair.Address(),
		Signature: keypair.Sign(message(programID)),
	}, nil
}

type response struct {
	Error  *string         `json:"error"`
	Code   string          `json:"code,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
}

// call sends the request and returns the raw result of a successful response.
func (o *clientCmdOptions) call(ctx context.Context, method string, path string, body any) (json.RawMessage, error) {
	client, err := o.httpClient()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	var reqOptions httpclient.RequestOptions
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "can't marshal request")
		}
		reqOptions.Body = data
	}
	resp, err := client.Do(ctx, method, path, reqOptions)
	if err != nil {
		return nil, errors.Wrap(err, "can't send request")
	}
	var out response
	if err := resp.UnmarshalBody(&out); err != nil {
		return nil, errors.Wrapf(err, "unexpected response, status %d", resp.StatusCode())
	}
	if out.Error != nil {
		if out.Code != "" {
			return nil, errors.Newf("%s (%s)", *out.Error, out.Code)
		}
		return nil, errors.Newf("%s (status %d)", *out.Error, resp.StatusCode())
	}
	return out.Result, nil
}

func printResult(w io.Writer, result json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, result, "", "  "); err != nil {
		return errors.Wrap(err, "invalid json result")
	}
	_, err := fmt.Fprintln(w, buf.String())
	return errors.WithStack(err)
}

func NewClientCommand() *cobra.Command {
	opts := &clientCmdOptions{}

	cmd := &cobra.Command{
		Use:   "client",
		Short: "Call a running mint-authority API",
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.URL, "url", "http://localhost:8080", "Base url of the mint-authority API")
	flags.StringVar(&opts.KeypairPath, "keypair", "", "Private key file of the caller, E.g. `/data/keys/priv.key`")
	flags.StringVar(&opts.ProgramID, "program-id", "", "Program id to sign messages for. Default is modules.minting.program_id")
	flags.BoolVar(&opts.Debug, "debug", false, "Log http requests")

	cmd.AddCommand(
		newInitializeCommand(opts),
		newCreateTokenMintCommand(opts),
		newMintCommand(opts),
		newConfigCommand(opts),
		newRecordCommand(opts),
		newBalanceCommand(opts),
	)
	return cmd
}
