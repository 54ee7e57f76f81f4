package remote

import (
	"bytes"
	"context"
	"net"
	"testing"

	"github.com/gaze-network/mint-authority/common"
	"github.com/gaze-network/mint-authority/common/errs"
	"github.com/gaze-network/mint-authority/modules/tokenledger"
	"github.com/gaze-network/mint-authority/modules/tokenledger/api/httphandler"
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
)

func newTestKeypair(t *testing.T, b byte) *signature.Keypair {
	t.Helper()
	kp, err := signature.NewKeypairFromSeed(bytes.Repeat([]byte{b}, 32))
	require.NoError(t, err)
	return kp
}

// newTestServer serves a memory ledger that accepts writes from registered and returns a client signing as keypair.
func newTestServer(t *testing.T, registered *signature.Keypair, keypair *signature.Keypair) *Client {
	t.Helper()
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          errorhandler.NewHTTPErrorHandler(),
	})
	require.NoError(t, httphandler.New(memory.New(), []common.Address{registered.Address()}).Mount(app))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	client, err := New("http://"+ln.Addr().String(), keypair)
	require.NoError(t, err)
	return client
}

func TestClient(t *testing.T) {
	ctx := context.Background()
	keypair := newTestKeypair(t, 1)
	client := newTestServer(t, keypair, keypair)

	resolver := pda.NewResolver(programID)
	_, bump, err := resolver.Find("authority")
	require.NoError(t, err)
	authority, err := resolver.Signer(bump, "authority")
	require.NoError(t, err)
	mintAddress, _, err := resolver.Find("token_mint")
	require.NoError(t, err)

	_, err = client.GetMint(ctx, mintAddress)
	assert.ErrorIs(t, err, tokenledger.ErrMintNotFound)

	mint, err := client.CreateMint(ctx, authority, mintAddress, 9)
	require.NoError(t, err)
	assert.Equal(t, authority.Address(), mint.Authority)

	_, err = client.CreateMint(ctx, authority, mintAddress, 9)
	assert.ErrorIs(t, err, tokenledger.ErrMintAlreadyExists)

	keyed := tokenledger.WithIdempotencyKey(ctx, "record-1")
	require.NoError(t, client.MintTo(keyed, authority, mintAddress, owner, 100))
	require.NoError(t, client.MintTo(keyed, authority, mintAddress, owner, 100), "replayed request should be accepted")

	balance, err := client.BalanceOf(ctx, mintAddress, owner)
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(100), balance, "replayed request must not credit twice")

	_, configBump, err := resolver.Find("config")
	require.NoError(t, err)
	other, err := resolver.Signer(configBump, "config")
	require.NoError(t, err)
	err = client.MintTo(tokenledger.WithIdempotencyKey(ctx, "record-2"), other, mintAddress, owner, 1)
	assert.ErrorIs(t, err, tokenledger.ErrUnauthorizedAuthority)

	err = client.MintTo(keyed, authority, mintAddress, owner, 50)
	assert.ErrorIs(t, err, tokenledger.ErrIdempotencyKeyReused)

	err = client.MintTo(ctx, authority, mintAddress, owner, 1)
	assert.ErrorIs(t, err, errs.InvalidArgument)

	balance, err = client.BalanceOf(ctx, mintAddress, owner)
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(100), balance)
}

func TestClientNotRegistered(t *testing.T) {
	ctx := context.Background()
	client := newTestServer(t, newTestKeypair(t, 1), newTestKeypair(t, 2))

	resolver := pda.NewResolver(programID)
	_, bump, err := resolver.Find("authority")
	require.NoError(t, err)
	authority, err := resolver.Signer(bump, "authority")
	require.NoError(t, err)
	mintAddress, _, err := resolver.Find("token_mint")
	require.NoError(t, err)

	_, err = client.CreateMint(ctx, authority, mintAddress, 9)
	assert.ErrorIs(t, err, tokenledger.ErrUnauthenticatedClient)

	err = client.MintTo(tokenledger.WithIdempotencyKey(ctx, "record-1"), authority, mintAddress, owner, 1)
	assert.ErrorIs(t, err, tokenledger.ErrUnauthenticatedClient)

	_, err = client.GetMint(ctx, mintAddress)
	assert.ErrorIs(t, err, tokenledger.ErrMintNotFound, "reads don't need a registered client")
}

func TestNewRequiresKeypair(t *testing.T) {
	_, err := New("http://127.0.0.1:1", nil)
	assert.ErrorIs(t, err, errs.InvalidArgument)
}
