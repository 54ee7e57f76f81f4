package postgres

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common/errs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigString(t *testing.T) {
	testcases := []struct {
		name     string
		config   Config
		expected string
	}{
		{
			name:     "defaults",
			config:   Config{},
			expected: "postgres://127.0.0.1:5432/postgres?sslmode=prefer",
		},
		{
			name: "credentials",
			config: Config{
				Host:     "db",
				Port:     "6543",
				User:     "minter",
				Password: "s3cret",
				DBName:   "mint",
				SSLMode:  "disable",
			},
			expected: "postgres://minter:s3cret@db:6543/mint?sslmode=disable",
		},
		{
			name:     "user_without_password",
			config:   Config{User: "minter"},
			expected: "postgres://minter@127.0.0.1:5432/postgres?sslmode=prefer",
		},
		{
			name: "url_takes_precedence",
			config: Config{
				Host: "db",
				URL:  "postgres://minter@localhost:5432/mint",
			},
			expected: "postgres://minter@localhost:5432/mint",
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.config.String())
		})
	}
}

func TestConfigStringParsesWithPgx(t *testing.T) {
	conf := Config{Host: "db", User: "minter", Password: "p@ss word", DBName: "mint"}
	parsed, err := pgxpool.ParseConfig(conf.String())
	require.NoError(t, err)
	assert.Equal(t, "db", parsed.ConnConfig.Host)
	assert.Equal(t, "minter", parsed.ConnConfig.User)
	assert.Equal(t, "p@ss word", parsed.ConnConfig.Password)
	assert.Equal(t, "mint", parsed.ConnConfig.Database)
}

func TestNewPoolInvalidConfig(t *testing.T) {
	_, err := NewPool(context.Background(), Config{URL: "postgres://localhost:notaport/db"})
	assert.True(t, errors.Is(err, errs.InvalidArgument))
}
