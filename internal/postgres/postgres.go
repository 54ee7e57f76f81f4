// Package postgres opens pgx connection pools from service configuration.
package postgres

import (
	"context"
	"net"
	"net/url"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common/errs"
	"github.com/gaze-network/mint-authority/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	pgxslog "github.com/mcosta74/pgx-slog"
)

const (
	DefaultMaxConns = 16
	DefaultMinConns = 0
	DefaultLogLevel = tracelog.LogLevelError
)

var (
	_ DB = (*pgxpool.Pool)(nil)
	_ DB = (*pgxpool.Conn)(nil)
)

// DB is the part of *pgxpool.Pool the repositories use.
type DB interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
	Begin(context.Context) (pgx.Tx, error)
	BeginTx(context.Context, pgx.TxOptions) (pgx.Tx, error)
}

type Config struct {
	// URL overrides every connection field below when set.
	URL string `mapstructure:"url"`

	Host     string `mapstructure:"host"` // default 127.0.0.1
	Port     string `mapstructure:"port"` // default 5432
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"db_name"`  // default postgres
	SSLMode  string `mapstructure:"ssl_mode"` // default prefer

	MaxConns int32 `mapstructure:"max_conns"`
	MinConns int32 `mapstructure:"min_conns"`

	// Debug traces every query.
	Debug bool `mapstructure:"debug"`
}

// String returns the connection url.
func (conf Config) String() string {
	if conf.URL != "" {
		return conf.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		Host:     net.JoinHostPort(utils.Default(conf.Host, "127.0.0.1"), utils.Default(conf.Port, "5432")),
		Path:     "/" + utils.Default(conf.DBName, "postgres"),
		RawQuery: url.Values{"sslmode": {utils.Default(conf.SSLMode, "prefer")}}.Encode(),
	}
	switch {
	case conf.User != "" && conf.Password != "":
		u.User = url.UserPassword(conf.User, conf.Password)
	case conf.User != "":
		u.User = url.User(conf.User)
	}
	return u.String()
}

func (conf Config) QueryTracer() pgx.QueryTracer {
	level := DefaultLogLevel
	if conf.Debug {
		level = tracelog.LogLevelTrace
	}
	return &tracelog.TraceLog{
		Logger:   pgxslog.NewLogger(logger.With("package", "postgres")),
		LogLevel: level,
	}
}

// NewPool connects and pings the database.
func NewPool(ctx context.Context, conf Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(conf.String())
	if err != nil {
		return nil, errors.Wrap(errors.Join(errs.InvalidArgument, err), "can't parse postgres config")
	}
	poolConfig.MaxConns = utils.Default(conf.MaxConns, DefaultMaxConns)
	poolConfig.MinConns = utils.Default(conf.MinConns, DefaultMinConns)
	poolConfig.ConnConfig.Tracer = conf.QueryTracer()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, errors.Wrap(err, "can't create connection pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "can't connect to the database")
	}
	return pool, nil
}
