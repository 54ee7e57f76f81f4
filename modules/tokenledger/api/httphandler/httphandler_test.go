package httphandler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gaze-network/mint-authority/common"
	"github.com/gaze-network/mint-authority/modules/tokenledger"
	"github.com/gaze-network/mint-authority/modules/tokenledger/memory"
	"github.com/gaze-network/mint-authority/pkg/errorhandler"
	"github.com/gaze-network/mint-authority/pkg/pda"
	"github.com/gaze-network/mint-authority/pkg/signature"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	programID = common.MustAddressFromString("11111111111111111111111111111112")
	owner     = common.MustAddressFromString("4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T")
	attacker  = common.MustAddressFromString("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
)

type rawResponse struct {
	Error  *string         `json:"error"`
	Code   string          `json:"code"`
	Result json.RawMessage `json:"result"`
}

func newKeypair(t *testing.T, b byte) *signature.Keypair {
	t.Helper()
	kp, err := signature.NewKeypairFromSeed(bytes.Repeat([]byte{b}, 32))
	require.NoError(t, err)
	return kp
}

type fixture struct {
	app       *fiber.App
	ledger    *memory.Ledger
	client    *signature.Keypair
	authority pda.Signer
	mint      common.Address
}

// newFixture serves a ledger whose token mint already exists under the derived authority.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	resolver := pda.NewResolver(programID)
	_, bump, err := resolver.Find("authority")
	require.NoError(t, err)
	authority, err := resolver.Signer(bump, "authority")
	require.NoError(t, err)
	mint, _, err := resolver.Find("token_mint")
	require.NoError(t, err)

	ledger := memory.New()
	_, err = ledger.CreateMint(context.Background(), authority, mint, 9)
	require.NoError(t, err)

	client := newKeypair(t, 1)
	app := fiber.New(fiber.Config{ErrorHandler: errorhandler.NewHTTPErrorHandler()})
	require.NoError(t, New(ledger, []common.Address{client.Address()}).Mount(app))
	return &fixture{app: app, ledger: ledger, client: client, authority: authority, mint: mint}
}

type signing struct {
	keypair   *signature.Keypair
	operation string // defaults to the operation of the route
	key       string
}

func (f *fixture) do(t *testing.T, path string, operation string, body any, s *signing) (int, rawResponse) {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if s != nil {
		if s.key != "" {
			req.Header.Set(tokenledger.HeaderIdempotencyKey, s.key)
		}
		if s.operation != "" {
			operation = s.operation
		}
		req.Header.Set(tokenledger.HeaderClient, s.keypair.Address().String())
		req.Header.Set(tokenledger.HeaderSignature, s.keypair.Sign(signature.LedgerRequestMessage(operation, s.key, data)))
	}

	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out rawResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func (f *fixture) mintTo(t *testing.T, destination common.Address, amount uint64, s *signing) (int, rawResponse) {
	t.Helper()
	body := tokenledger.MintToRequest{
		Authority:   tokenledger.NewSignerPayload(f.authority),
		Destination: destination,
		Amount:      amount,
	}
	return f.do(t, fmt.Sprintf("/v1/ledger/mints/%s/mint-to", f.mint), tokenledger.OperationMintTo(f.mint), body, s)
}

func (f *fixture) balance(t *testing.T, owner common.Address) uint128.Uint128 {
	t.Helper()
	balance, err := f.ledger.BalanceOf(context.Background(), f.mint, owner)
	require.NoError(t, err)
	return balance
}

func TestMountRequiresClients(t *testing.T) {
	app := fiber.New()
	assert.Error(t, New(memory.New(), nil).Mount(app))
}

func TestMintToAuthentication(t *testing.T) {
	f := newFixture(t)
	stranger := newKeypair(t, 2)

	// anyone can rebuild the authority signer from public values, it must not be enough to write
	testcases := []struct {
		name    string
		signing *signing
	}{
		{"unsigned", nil},
		{"unknown_client", &signing{keypair: stranger, key: "record-1"}},
		{"other_operation", &signing{keypair: f.client, key: "record-1", operation: tokenledger.OperationCreateMint}},
		{"other_mint", &signing{keypair: f.client, key: "record-1", operation: tokenledger.OperationMintTo(attacker)}},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			status, resp := f.mintTo(t, attacker, 1_000_000, tc.signing)
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, tokenledger.CodeUnauthenticatedClient, resp.Code)
		})
	}

	t.Run("tampered_body", func(t *testing.T) {
		signed, err := json.Marshal(tokenledger.MintToRequest{
			Authority:   tokenledger.NewSignerPayload(f.authority),
			Destination: owner,
			Amount:      1,
		})
		require.NoError(t, err)
		body := tokenledger.MintToRequest{
			Authority:   tokenledger.NewSignerPayload(f.authority),
			Destination: attacker,
			Amount:      1_000_000,
		}
		data, err := json.Marshal(body)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/v1/ledger/mints/%s/mint-to", f.mint), bytes.NewReader(data))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		req.Header.Set(tokenledger.HeaderIdempotencyKey, "record-1")
		req.Header.Set(tokenledger.HeaderClient, f.client.Address().String())
		req.Header.Set(tokenledger.HeaderSignature, f.client.Sign(signature.LedgerRequestMessage(tokenledger.OperationMintTo(f.mint), "record-1", signed)))
		resp, err := f.app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	assert.True(t, f.balance(t, attacker).IsZero())
	m, err := f.ledger.GetMint(context.Background(), f.mint)
	require.NoError(t, err)
	assert.True(t, m.Supply.IsZero())
}

func TestCreateMintAuthentication(t *testing.T) {
	f := newFixture(t)
	resolver := pda.NewResolver(programID)
	squatted, _, err := resolver.Find("squatted_mint")
	require.NoError(t, err)

	body := tokenledger.CreateMintRequest{
		Authority: tokenledger.NewSignerPayload(f.authority),
		Mint:      squatted,
		Decimals:  9,
	}
	status, resp := f.do(t, "/v1/ledger/mints", tokenledger.OperationCreateMint, body, &signing{keypair: newKeypair(t, 2)})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, tokenledger.CodeUnauthenticatedClient, resp.Code)

	_, err = f.ledger.GetMint(context.Background(), squatted)
	assert.ErrorIs(t, err, tokenledger.ErrMintNotFound)

	status, _ = f.do(t, "/v1/ledger/mints", tokenledger.OperationCreateMint, body, &signing{keypair: f.client})
	assert.Equal(t, http.StatusOK, status)
}

func TestMintToIdempotency(t *testing.T) {
	f := newFixture(t)

	status, _ := f.mintTo(t, owner, 100, &signing{keypair: f.client})
	assert.Equal(t, http.StatusBadRequest, status, "idempotency key is required")
	assert.True(t, f.balance(t, owner).IsZero())

	status, _ = f.mintTo(t, owner, 100, &signing{keypair: f.client, key: "record-5"})
	require.Equal(t, http.StatusOK, status)
	status, _ = f.mintTo(t, owner, 100, &signing{keypair: f.client, key: "record-5"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, uint128.From64(100), f.balance(t, owner))

	status, resp := f.mintTo(t, attacker, 50, &signing{keypair: f.client, key: "record-5"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, tokenledger.CodeIdempotencyKeyReused, resp.Code)
	assert.True(t, f.balance(t, attacker).IsZero())
	assert.Equal(t, uint128.From64(100), f.balance(t, owner))
}
