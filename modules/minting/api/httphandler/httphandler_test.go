package httphandler

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gaze-network/mint-authority/common"
	"github.com/gaze-network/mint-authority/modules/minting/internal/entity"
	"github.com/gaze-network/mint-authority/modules/minting/repository/memory"
	"github.com/gaze-network/mint-authority/modules/minting/usecase"
	"github.com/gaze-network/mint-authority/pkg/errorhandler"
	"github.com/gaze-network/mint-authority/pkg/pda"
	"github.com/gaze-network/mint-authority/pkg/signature"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testProgramID = common.MustAddressFromString("7o3hKkBugQQ5duPBRSzU1KZshKTK1o3ob3jwLSBPa65c")

type rawResponse struct {
	Error  *string         `json:"error"`
	Code   string          `json:"code"`
	Result json.RawMessage `json:"result"`
}

func newTestApp(t *testing.T, requireSignature bool) *fiber.App {
	t.Helper()
	uc := usecase.New(memory.NewRepository(), pda.NewResolver(testProgramID), common.NetworkLocalnet)
	app := fiber.New(fiber.Config{ErrorHandler: errorhandler.NewHTTPErrorHandler()})
	require.NoError(t, New(uc, requireSignature).Mount(app))
	return app
}

func doRequest(t *testing.T, app *fiber.App, method string, path string, body any) (int, rawResponse) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out rawResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func decodeResult[T any](t *testing.T, resp rawResponse) T {
	t.Helper()
	var result T
	require.NoError(t, json.Unmarshal(resp.Result, &result))
	return result
}

func newKeypair(t *testing.T, b byte) *signature.Keypair {
	t.Helper()
	kp, err := signature.NewKeypairFromSeed(bytes.Repeat([]byte{b}, 32))
	require.NoError(t, err)
	return kp
}

func TestMintingFlow(t *testing.T) {
	app := newTestApp(t, false)
	admin := newKeypair(t, 1).Address()
	minter := newKeypair(t, 2).Address()

	status, resp := doRequest(t, app, http.MethodPost, "/v1/minting/mint", map[string]any{"caller": minter, "amount": 1, "mintIndex": 1})
	assert.Equal(t, http.StatusPreconditionFailed, status)
	assert.Equal(t, CodeNotInitialized, resp.Code)

	status, resp = doRequest(t, app, http.MethodPost, "/v1/minting/initialize", map[string]any{"caller": admin})
	require.Equal(t, http.StatusCreated, status)
	config := decodeResult[configuration](t, resp)
	assert.Equal(t, admin, config.Admin)
	assert.Equal(t, uint64(0), config.MintSequence)
	assert.Equal(t, uint64(1), config.NextMintIndex)

	accountData, err := base64.StdEncoding.DecodeString(config.AccountData)
	require.NoError(t, err)
	account, err := entity.UnmarshalConfigurationAccount(config.Address, accountData)
	require.NoError(t, err)
	assert.Equal(t, admin, account.Admin)

	status, resp = doRequest(t, app, http.MethodPost, "/v1/minting/initialize", map[string]any{"caller": minter})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, CodeAlreadyInitialized, resp.Code)

	status, _ = doRequest(t, app, http.MethodPost, "/v1/minting/token-mint", map[string]any{"caller": admin})
	require.Equal(t, http.StatusCreated, status)

	status, resp = doRequest(t, app, http.MethodPost, "/v1/minting/token-mint", map[string]any{"caller": admin})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, CodeMintAlreadyExists, resp.Code)

	status, resp = doRequest(t, app, http.MethodPost, "/v1/minting/mint", map[string]any{"caller": minter, "amount": 1_500_000_000, "mintIndex": 1})
	require.Equal(t, http.StatusCreated, status)
	record := decodeResult[mintRecord](t, resp)
	assert.Equal(t, minter, record.Minter)
	assert.Equal(t, uint64(1), record.SequenceIndex)
	assert.Equal(t, "1.5", record.UiAmount.String())

	testCases := []struct {
		name   string
		body   map[string]any
		status int
		code   string
	}{
		{"replay", map[string]any{"caller": minter, "amount": 1, "mintIndex": 1}, http.StatusConflict, CodeInvalidMintIndex},
		{"skip", map[string]any{"caller": minter, "amount": 1, "mintIndex": 3}, http.StatusConflict, CodeInvalidMintIndex},
		{"zero_amount", map[string]any{"caller": minter, "amount": 0, "mintIndex": 2}, http.StatusBadRequest, CodeInvalidAmount},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, resp := doRequest(t, app, http.MethodPost, "/v1/minting/mint", tc.body)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, resp.Code)
		})
	}

	status, resp = doRequest(t, app, http.MethodPost, "/v1/minting/mint", map[string]any{"caller": admin, "amount": 7, "mintIndex": 2})
	require.Equal(t, http.StatusCreated, status)

	status, resp = doRequest(t, app, http.MethodGet, "/v1/minting/config", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, uint64(2), decodeResult[configuration](t, resp).MintSequence)

	status, resp = doRequest(t, app, http.MethodGet, "/v1/minting/records/2", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, admin, decodeResult[mintRecord](t, resp).Minter)

	status, _ = doRequest(t, app, http.MethodGet, "/v1/minting/records/3", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, resp = doRequest(t, app, http.MethodPost, "/v1/minting/records/batch", map[string]any{"indexes": []uint64{1, 2, 3}})
	require.Equal(t, http.StatusOK, status)
	batch := decodeResult[map[string]*mintRecord](t, resp)
	assert.Len(t, batch, 2)
	assert.Contains(t, batch, "1")
	assert.Contains(t, batch, "2")

	status, resp = doRequest(t, app, http.MethodGet, "/v1/minting/records?limit=1&offset=1", nil)
	require.Equal(t, http.StatusOK, status)
	list := decodeResult[listMintRecordsResult](t, resp)
	assert.Equal(t, uint64(2), list.Total)
	require.Len(t, list.List, 1)
	assert.Equal(t, uint64(2), list.List[0].SequenceIndex)

	status, resp = doRequest(t, app, http.MethodGet, "/v1/minting/balances/"+minter.String(), nil)
	require.Equal(t, http.StatusOK, status)
	b := decodeResult[struct {
		UiAmount decimal.Decimal `json:"uiAmount"`
		Decimals uint8           `json:"decimals"`
	}](t, resp)
	assert.Equal(t, "1.5", b.UiAmount.String())
	assert.Equal(t, uint8(9), b.Decimals)
}

func TestRequireSignature(t *testing.T) {
	app := newTestApp(t, true)
	admin := newKeypair(t, 1)
	other := newKeypair(t, 3)
	initMessage := signature.InitializeMessage(testProgramID)

	testCases := []struct {
		name   string
		body   map[string]any
		status int
		code   string
	}{
		{"unsigned", map[string]any{"caller": admin.Address()}, http.StatusUnauthorized, CodeUnauthorized},
		{"wrong_signer", map[string]any{"caller": admin.Address(), "signature": other.Sign(initMessage)}, http.StatusUnauthorized, CodeUnauthorized},
		{"wrong_message", map[string]any{"caller": admin.Address(), "signature": admin.Sign([]byte("initialize"))}, http.StatusUnauthorized, CodeUnauthorized},
		{"signed", map[string]any{"caller": admin.Address(), "signature": admin.Sign(initMessage)}, http.StatusCreated, ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, resp := doRequest(t, app, http.MethodPost, "/v1/minting/initialize", tc.body)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, resp.Code)
		})
	}
}

func TestValidation(t *testing.T) {
	app := newTestApp(t, false)

	testCases := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{"missing_caller", http.MethodPost, "/v1/minting/initialize", map[string]any{}, http.StatusBadRequest},
		{"zero_mint_index", http.MethodPost, "/v1/minting/mint", map[string]any{"caller": newKeypair(t, 1).Address(), "amount": 1, "mintIndex": 0}, http.StatusBadRequest},
		{"invalid_index", http.MethodGet, "/v1/minting/records/abc", nil, http.StatusBadRequest},
		{"invalid_owner", http.MethodGet, "/v1/minting/balances/0OIl", nil, http.StatusBadRequest},
		{"empty_batch", http.MethodPost, "/v1/minting/records/batch", map[string]any{"indexes": []uint64{}}, http.StatusBadRequest},
		{"limit_too_large", http.MethodGet, "/v1/minting/records?limit=5000", nil, http.StatusBadRequest},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, resp := doRequest(t, app, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.status, status)
			assert.NotNil(t, resp.Error)
		})
	}
}
