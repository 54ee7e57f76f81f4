// Package migrate applies the minting schema migrations with golang-migrate.
package migrate

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/internal/config"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const (
	mintingMigrationSource = "modules/minting/database/postgresql/migrations"
	mintingMigrationTable  = "minting_schema_migrations"
)

var supportedDrivers = map[string]bool{
	"postgres":   true,
	"postgresql": true,
}

type options struct {
	DatabaseURL   string
	MintingSource string
}

// resolveDatabaseURL parses rawURL, falling back to the configured minting postgres connection when it's empty.
func resolveDatabaseURL(rawURL string) (*url.URL, error) {
	if rawURL == "" {
		rawURL = config.Load().Modules.Minting.Postgres.String()
	}
	databaseURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse database URL")
	}
	if !supportedDrivers[databaseURL.Scheme] {
		return nil, errors.Errorf("unsupported database driver: %s", databaseURL.Scheme)
	}
	return databaseURL, nil
}

// withQuery returns a copy of u with query added to its own.
func withQuery(u *url.URL, query url.Values) *url.URL {
	clone := *u
	q := clone.Query()
	for key, values := range query {
		for _, value := range values {
			q.Add(key, value)
		}
	}
	clone.RawQuery = q.Encode()
	return &clone
}

// parseSteps reads the optional [N] argument. Zero means all migrations.
func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 0, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, errors.Wrap(err, "failed to parse N")
	}
	if n < 0 {
		return 0, errors.New("N must be a positive integer")
	}
	return n, nil
}

func (o *options) newMigrate() (*migrate.Migrate, error) {
	databaseURL, err := resolveDatabaseURL(o.DatabaseURL)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	databaseURL = withQuery(databaseURL, url.Values{"x-migrations-table": {mintingMigrationTable}})
	m, err := migrate.New("file://"+o.MintingSource, databaseURL.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Migrate instance")
	}
	m.Log = consoleLogger("[Minting] ")
	return m, nil
}

type consoleLogger string

func (l consoleLogger) Printf(format string, v ...any) {
	fmt.Fprintf(os.Stdout, string(l)+format, v...)
}

func (l consoleLogger) Verbose() bool { return false }
