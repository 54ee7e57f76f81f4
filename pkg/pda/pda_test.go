package pda

import (
	"crypto/ed25519"
	"encoding/hex"
	"testing"

	"github.com/gaze-network/mint-authority/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testProgramID = common.MustAddressFromString("7o3hKkBugQQ5duPBRSzU1KZshKTK1o3ob3jwLSBPa65c")

func TestFindProgramAddress(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		seeds := [][]byte{[]byte("config")}
		addr1, bump1, err := FindProgramAddress(seeds, testProgramID)
		require.NoError(t, err)
		addr2, bump2, err := FindProgramAddress(seeds, testProgramID)
		require.NoError(t, err)

		assert.Equal(t, addr1, addr2)
		assert.Equal(t, bump1, bump2)
		assert.False(t, IsOnCurve(addr1[:]), "derived address must be off curve")
	})
	t.Run("bump_recreates_address", func(t *testing.T) {
		seeds := [][]byte{[]byte("mint_record"), Uint64Seed(42)}
		addr, bump, err := FindProgramAddress(seeds, testProgramID)
		require.NoError(t, err)

		created, err := CreateProgramAddress(append(seeds, []byte{bump}), testProgramID)
		require.NoError(t, err)
		assert.Equal(t, addr, created)
	})
	t.Run("namespace_separation", func(t *testing.T) {
		otherProgramID := common.MustAddressFromString("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
		seeds := [][]byte{[]byte("config")}
		addr1, _, err := FindProgramAddress(seeds, testProgramID)
		require.NoError(t, err)
		addr2, _, err := FindProgramAddress(seeds, otherProgramID)
		require.NoError(t, err)
		assert.NotEqual(t, addr1, addr2)
	})
	t.Run("too_many_seeds", func(t *testing.T) {
		seeds := make([][]byte, MaxSeeds+1)
		for i := range seeds {
			seeds[i] = []byte{byte(i)}
		}
		_, _, err := FindProgramAddress(seeds, testProgramID)
		assert.ErrorIs(t, err, ErrTooManySeeds)
	})
	t.Run("seed_too_long", func(t *testing.T) {
		seeds := [][]byte{make([]byte, MaxSeedLength+1)}
		_, _, err := FindProgramAddress(seeds, testProgramID)
		assert.ErrorIs(t, err, ErrMaxSeedLengthExceeded)
	})
}

func TestIsOnCurve(t *testing.T) {
	basePoint, err := hex.DecodeString("5866666666666666666666666666666666666666666666666666666666666666")
	require.NoError(t, err)
	assert.True(t, IsOnCurve(basePoint))

	pub := ed25519.NewKeyFromSeed(make([]byte, ed25519.SeedSize)).Public().(ed25519.PublicKey)
	assert.True(t, IsOnCurve(pub), "public keys are always on curve")

	assert.False(t, IsOnCurve([]byte{1, 2, 3}), "wrong length")
}

func TestUint64Seed(t *testing.T) {
	assert.Equal(t, []byte{1, 0, 0, 0, 0, 0, 0, 0}, Uint64Seed(1))
	assert.Equal(t, []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}, Uint64Seed(0x0102030405060708))
}
