package postgres

import (
	"github.com/gaze-network/mint-authority/internal/postgres"
	"github.com/gaze-network/mint-authority/modules/minting/datagateway"
	"github.com/gaze-network/mint-authority/modules/minting/repository/postgres/gen"
	"github.com/jackc/pgx/v5"
)

var _ datagateway.MintingDataGateway = (*Repository)(nil)

type Repository struct {
	db      postgres.DB
	queries *gen.Queries
	tx      pgx.Tx
}

func NewRepository(db postgres.DB) *Repository {
	return &Repository{
		db:      db,
		queries: gen.New(db),
	}
}
