package minting

import (
	"testing"

	"github.com/gaze-network/mint-authority/common"
	"github.com/gaze-network/mint-authority/common/errs"
	mintingconfig "github.com/gaze-network/mint-authority/modules/minting/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerClients(t *testing.T) {
	const (
		clientA = "4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T"
		clientB = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
	)
	testcases := []struct {
		name     string
		conf     mintingconfig.LedgerConfig
		expected []common.Address
		err      error
	}{
		{
			name:     "not_served",
			conf:     mintingconfig.LedgerConfig{},
			expected: []common.Address{},
		},
		{
			name: "served",
			conf: mintingconfig.LedgerConfig{Serve: true, Clients: []string{clientA, clientB, clientA}},
			expected: []common.Address{
				common.MustAddressFromString(clientA),
				common.MustAddressFromString(clientB),
			},
		},
		{
			name: "served_without_clients",
			conf: mintingconfig.LedgerConfig{Serve: true},
			err:  errs.InvalidArgument,
		},
		{
			name: "invalid_client",
			conf: mintingconfig.LedgerConfig{Serve: true, Clients: []string{"not-base58-0OIl"}},
			err:  errs.InvalidArgument,
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			clients, err := LedgerClients(tc.conf)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, clients)
		})
	}
}
