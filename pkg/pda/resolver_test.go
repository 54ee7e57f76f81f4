package pda

import (
	"testing"

	"github.com/gaze-network/mint-authority/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver(t *testing.T) {
	resolver := NewResolver(testProgramID)

	t.Run("same_tag_same_address", func(t *testing.T) {
		addr1, bump1, err := resolver.Find("config")
		require.NoError(t, err)
		addr2, bump2, err := resolver.Find("config")
		require.NoError(t, err)
		assert.Equal(t, addr1, addr2)
		assert.Equal(t, bump1, bump2)
	})
	t.Run("empty_suffix_is_ignored", func(t *testing.T) {
		addr1, _, err := resolver.Find("config")
		require.NoError(t, err)
		addr2, _, err := resolver.Find("config", nil)
		require.NoError(t, err)
		assert.Equal(t, addr1, addr2)
	})
	t.Run("suffix_changes_address", func(t *testing.T) {
		addr1, _, err := resolver.Find("mint_record", Uint64Seed(1))
		require.NoError(t, err)
		addr2, _, err := resolver.Find("mint_record", Uint64Seed(2))
		require.NoError(t, err)
		assert.NotEqual(t, addr1, addr2)
	})
	t.Run("create_with_found_bump", func(t *testing.T) {
		addr, bump, err := resolver.Find("authority")
		require.NoError(t, err)
		created, err := resolver.Create(bump, "authority")
		require.NoError(t, err)
		assert.Equal(t, addr, created)
	})
}

func TestSigner(t *testing.T) {
	resolver := NewResolver(testProgramID)
	authority, bump, err := resolver.Find("authority")
	require.NoError(t, err)

	signer, err := resolver.Signer(bump, "authority")
	require.NoError(t, err)
	assert.Equal(t, authority, signer.Address())
	assert.Equal(t, bump, signer.Bump())
	assert.Equal(t, testProgramID, signer.ProgramID())

	t.Run("verify_expected_authority", func(t *testing.T) {
		assert.True(t, signer.Verify(authority))
	})
	t.Run("reject_other_address", func(t *testing.T) {
		other, _, err := resolver.Find("config")
		require.NoError(t, err)
		assert.False(t, signer.Verify(other))
		assert.False(t, signer.Verify(common.ZeroAddress))
	})
	t.Run("rebuilt_from_wire", func(t *testing.T) {
		rebuilt := NewSigner(signer.ProgramID(), signer.Seeds(), signer.Bump())
		assert.True(t, rebuilt.Verify(authority))
		assert.Equal(t, authority, rebuilt.Address())
	})
	t.Run("forged_program_id", func(t *testing.T) {
		forged := NewSigner(common.MustAddressFromString("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"), signer.Seeds(), signer.Bump())
		assert.False(t, forged.Verify(authority))
	})
	t.Run("seeds_are_copied", func(t *testing.T) {
		seeds := signer.Seeds()
		seeds[0][0] = 'x'
		assert.True(t, signer.Verify(authority))
	})
}
