package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gaze-network/mint-authority/common/errs"
	mintingconstants "github.com/gaze-network/mint-authority/modules/minting/constants"
	"github.com/gaze-network/mint-authority/pkg/signature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKeypair(t *testing.T) {
	dir := t.TempDir()
	run := func(stdin string, args ...string) string {
		var out strings.Builder
		cmd := NewGenerateKeypairCommand()
		cmd.SetArgs(append([]string{"--path", dir}, args...))
		cmd.SetIn(strings.NewReader(stdin))
		cmd.SetOut(&out)
		require.NoError(t, cmd.Execute())
		return out.String()
	}

	run("")
	keypair, err := signature.LoadKeypair(filepath.Join(dir, privateKeyFile))
	require.NoError(t, err)
	pub, err := os.ReadFile(filepath.Join(dir, publicKeyFile))
	require.NoError(t, err)
	assert.Equal(t, keypair.Address().String(), string(pub))

	out := run("no\n")
	assert.Contains(t, out, "aborted")
	unchanged, err := signature.LoadKeypair(filepath.Join(dir, privateKeyFile))
	require.NoError(t, err)
	assert.Equal(t, keypair.Address(), unchanged.Address())

	run("", "--force")
	replaced, err := signature.LoadKeypair(filepath.Join(dir, privateKeyFile))
	require.NoError(t, err)
	assert.NotEqual(t, keypair.Address(), replaced.Address())
}

func TestVersion(t *testing.T) {
	var out strings.Builder
	cmd := NewVersionCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--module", "minting"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), mintingconstants.Version)

	cmd = NewVersionCommand()
	cmd.SetOut(&strings.Builder{})
	cmd.SetErr(&strings.Builder{})
	cmd.SetArgs([]string{"--module", "runes"})
	assert.ErrorIs(t, cmd.Execute(), errs.Unsupported)
}
