package config

import (
	"time"

	"github.com/gaze-network/mint-authority/internal/postgres"
)

type Config struct {
	Database    string          `mapstructure:"database"` // Database to store minting state. `postgres` | `memory`
	Postgres    postgres.Config `mapstructure:"postgres"`
	ProgramID   string          `mapstructure:"program_id"` // Namespace id of derived addresses, base58. Empty uses the built-in id.
	Ledger      LedgerConfig    `mapstructure:"ledger"`
	APIHandlers []string        `mapstructure:"api_handlers"`

	// Reject requests without a valid ed25519 signature of the caller. Enabled by default, turn off only on
	// localnet or with the memory database.
	RequireSignature bool `mapstructure:"require_signature"`

	Export ExportConfig `mapstructure:"export"`
}

type LedgerConfig struct {
	Mode      string `mapstructure:"mode"`       // `local` keeps balances in the minting database, `remote` delegates over http.
	RemoteURL string `mapstructure:"remote_url"` // Base url of the remote ledger.
	Debug     bool   `mapstructure:"debug"`
	KeyPath   string `mapstructure:"key_path"` // Private key file signing requests to the remote ledger, see generate-keypair.

	// Serve the local ledger over http for other nodes running in remote mode.
	Serve bool `mapstructure:"serve"`
	// Base58 public keys of the nodes allowed to write to the served ledger.
	Clients []string `mapstructure:"clients"`
}

type ExportConfig struct {
	Bucket    string `mapstructure:"bucket"` // Upload to S3 if set, otherwise write to Path.
	Region    string `mapstructure:"region"` // S3 region. Empty uses the default aws config chain.
	Prefix    string `mapstructure:"prefix"`
	Path      string `mapstructure:"path"` // Output directory of local exports.
	BatchSize int32  `mapstructure:"batch_size"`

	// Export periodically while running. Zero disables scheduled exports.
	Interval time.Duration `mapstructure:"interval"`
}
