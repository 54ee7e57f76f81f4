package reportingclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common"
	"github.com/gaze-network/mint-authority/common/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresName(t *testing.T) {
	_, err := New(Config{})
	assert.True(t, errors.Is(err, errs.InvalidArgument))
}

func TestSubmit(t *testing.T) {
	received := make(map[string]map[string]any)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		received[r.URL.Path] = body
		if r.URL.Path == "/v1/report/mint" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := New(Config{BaseURL: server.URL, Name: "node-1"})
	require.NoError(t, err)

	ctx := context.Background()
	programID := common.MustAddressFromString("7o3hKkBugQQ5duPBRSzU1KZshKTK1o3ob3jwLSBPa65c")
	require.NoError(t, client.SubmitNodeReport(ctx, "minting", common.NetworkLocalnet, programID))
	require.NoError(t, client.SubmitMintReport(ctx, SubmitMintReportPayload{Type: "minting", MintIndex: 1, Amount: 5}))

	assert.Equal(t, "node-1", received["/v1/report/node"]["name"])
	assert.Equal(t, programID.String(), received["/v1/report/node"]["programId"])
	assert.EqualValues(t, 1, received["/v1/report/mint"]["mintIndex"])
}
