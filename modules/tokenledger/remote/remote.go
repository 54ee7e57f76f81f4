// Package remote is a token ledger client for a ledger served over http.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common"
	"github.com/gaze-network/mint-authority/common/errs"
	"github.com/gaze-network/mint-authority/modules/tokenledger"
	"github.com/gaze-network/mint-authority/pkg/httpclient"
	"github.com/gaze-network/mint-authority/pkg/pda"
	"github.com/gaze-network/mint-authority/pkg/signature"
	"github.com/gaze-network/uint128"
	"github.com/samber/lo"
)

type Client struct {
	httpClient *httpclient.Client
	keypair    *signature.Keypair
}

var _ tokenledger.Contract = (*Client)(nil)

// New returns a client signing its write requests with keypair, which must be registered on the served ledger.
func New(baseURL string, keypair *signature.Keypair, config ...httpclient.Config) (*Client, error) {
	if keypair == nil {
		return nil, errors.Wrap(errs.InvalidArgument, "ledger client keypair is required")
	}
	httpClient, err := httpclient.New(baseURL, config...)
	if err != nil {
		return nil, errors.Wrap(err, "can't create http client")
	}
	return &Client{httpClient: httpClient, keypair: keypair}, nil
}

// signedHeaders authenticates a write request.
func (c *Client) signedHeaders(operation string, idempotencyKey string, body []byte) map[string]string {
	header := map[string]string{
		tokenledger.HeaderClient:    c.keypair.Address().String(),
		tokenledger.HeaderSignature: c.keypair.Sign(signature.LedgerRequestMessage(operation, idempotencyKey, body)),
	}
	if idempotencyKey != "" {
		header[tokenledger.HeaderIdempotencyKey] = idempotencyKey
	}
	return header
}

type response[T any] common.HttpResponse[T]

func (c *Client) CreateMint(ctx context.Context, authority pda.Signer, mint common.Address, decimals uint8) (*tokenledger.Mint, error) {
	body, err := json.Marshal(tokenledger.CreateMintRequest{
		Authority: tokenledger.NewSignerPayload(authority),
		Mint:      mint,
		Decimals:  decimals,
	})
	if err != nil {
		return nil, errors.Wrap(err, "can't marshal request")
	}
	resp, err := c.httpClient.Post(ctx, "/v1/ledger/mints", httpclient.RequestOptions{
		Body:   body,
		Header: c.signedHeaders(tokenledger.OperationCreateMint, "", body),
	})
	if err != nil {
		return nil, errors.Wrap(err, "can't send request")
	}
	result, err := decode[tokenledger.Mint](resp)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return result, nil
}

// MintTo requires an idempotency key in ctx, see tokenledger.WithIdempotencyKey.
func (c *Client) MintTo(ctx context.Context, authority pda.Signer, mint common.Address, destination common.Address, amount uint64) error {
	key, ok := tokenledger.IdempotencyKeyFrom(ctx)
	if !ok {
		return errors.Wrap(errs.InvalidArgument, "idempotency key is required")
	}
	body, err := json.Marshal(tokenledger.MintToRequest{
		Authority:   tokenledger.NewSignerPayload(authority),
		Destination: destination,
		Amount:      amount,
	})
	if err != nil {
		return errors.Wrap(err, "can't marshal request")
	}
	resp, err := c.httpClient.Post(ctx, fmt.Sprintf("/v1/ledger/mints/%s/mint-to", mint), httpclient.RequestOptions{
		Body:   body,
		Header: c.signedHeaders(tokenledger.OperationMintTo(mint), key, body),
	})
	if err != nil {
		return errors.Wrap(err, "can't send request")
	}
	if _, err := decode[json.RawMessage](resp); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

func (c *Client) GetMint(ctx context.Context, mint common.Address) (*tokenledger.Mint, error) {
	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("/v1/ledger/mints/%s", mint), httpclient.RequestOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "can't send request")
	}
	result, err := decode[tokenledger.Mint](resp)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return result, nil
}

func (c *Client) BalanceOf(ctx context.Context, mint common.Address, owner common.Address) (uint128.Uint128, error) {
	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("/v1/ledger/mints/%s/balances/%s", mint, owner), httpclient.RequestOptions{})
	if err != nil {
		return uint128.Uint128{}, errors.Wrap(err, "can't send request")
	}
	result, err := decode[tokenledger.BalanceResult](resp)
	if err != nil {
		return uint128.Uint128{}, errors.WithStack(err)
	}
	return result.Balance, nil
}

// decode unwraps the response envelope, mapping api error codes back to ledger errors.
func decode[T any](resp *httpclient.Response) (*T, error) {
	var out response[T]
	if err := resp.UnmarshalBody(&out); err != nil {
		return nil, errors.Wrapf(err, "unexpected response, status %d", resp.StatusCode())
	}
	if resp.StatusCode() >= http.StatusBadRequest || out.Error != nil {
		message := lo.FromPtr(out.Error)
		if target, ok := tokenledger.ErrorFromCode(out.Code); ok {
			return nil, errors.Wrap(target, message)
		}
		return nil, errors.Wrapf(errs.SomethingWentWrong, "ledger responded %d: %s", resp.StatusCode(), message)
	}
	if out.Result == nil {
		return nil, errors.Wrap(errs.SomethingWentWrong, "ledger responded without result")
	}
	return out.Result, nil
}
