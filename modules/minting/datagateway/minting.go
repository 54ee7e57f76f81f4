package datagateway

import (
	"context"
	"time"

	"github.com/gaze-network/mint-authority/common"
	"github.com/gaze-network/mint-authority/modules/minting/internal/entity"
	"github.com/gaze-network/mint-authority/modules/tokenledger"
)

type MintingDataGateway interface {
	MintingReaderDataGateway
	MintingWriterDataGateway
	DeploymentDataGateway

	// Local token ledger. Inside a transaction, ledger changes commit or roll back together with the minting state.
	tokenledger.Contract

	// BeginMintingTx returns a new MintingDataGateway with transaction enabled. All write operations performed in this datagateway must be committed to persist changes.
	// The configuration record is the serialization point: concurrent transactions that lock it run one after another.
	BeginMintingTx(ctx context.Context) (MintingDataGatewayWithTx, error)
}

type MintingDataGatewayWithTx interface {
	MintingDataGateway
	Tx
}

type MintingReaderDataGateway interface {
	// GetConfig returns the configuration record. Returns errs.NotFound if it was never initialized.
	GetConfig(ctx context.Context) (*entity.ConfigurationRecord, error)
	// GetMintRecord returns the audit record of the mint with the given sequence index. Returns errs.NotFound if the record does not exist.
	GetMintRecord(ctx context.Context, index uint64) (*entity.MintRecord, error)
	// GetMintRecordsByIndexes returns the audit records of the given sequence indexes. Missing indexes are omitted.
	GetMintRecordsByIndexes(ctx context.Context, indexes []uint64) (map[uint64]*entity.MintRecord, error)
	// ListMintRecords returns audit records ordered by sequence index. Use limit = -1 as no limit.
	ListMintRecords(ctx context.Context, limit int32, offset int32) ([]*entity.MintRecord, error)
	CountMintRecords(ctx context.Context) (uint64, error)
}

type MintingWriterDataGateway interface {
	// GetConfigForUpdate returns the configuration record and locks it until the transaction ends. Returns errs.NotFound if it was never initialized.
	GetConfigForUpdate(ctx context.Context) (*entity.ConfigurationRecord, error)
	// CreateConfig stores the configuration record. Returns errs.Conflict if it already exists.
	CreateConfig(ctx context.Context, config *entity.ConfigurationRecord) error
	// UpdateMintSequence sets the mint sequence of the configuration record and stamps updatedAt.
	UpdateMintSequence(ctx context.Context, address common.Address, sequence uint64, updatedAt time.Time) error
	// CreateMintRecord stores a write-once audit record. Returns errs.Conflict if a record already exists at its address.
	CreateMintRecord(ctx context.Context, record *entity.MintRecord) error
}

type DeploymentDataGateway interface {
	// GetDeploymentStats returns errs.NotFound if the deployment was never recorded.
	GetDeploymentStats(ctx context.Context) (*entity.DeploymentStats, error)
	UpdateDeploymentStats(ctx context.Context, stats entity.DeploymentStats) error
}
