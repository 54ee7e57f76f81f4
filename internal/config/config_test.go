package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		conf := Parse()
		assert.True(t, conf.Modules.Minting.RequireSignature, "caller signatures are required unless turned off")
		assert.Equal(t, "local", conf.Modules.Minting.Ledger.Mode)
		assert.False(t, conf.Modules.Minting.Ledger.Serve)
	})

	t.Run("opt_out", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("modules:\n  minting:\n    database: memory\n    require_signature: false\n"), 0o600))

		conf := Parse(path)
		assert.False(t, conf.Modules.Minting.RequireSignature)
		assert.Equal(t, "memory", conf.Modules.Minting.Database)
	})
}
