package postgres

import (
	"context"
	"math"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common"
	"github.com/gaze-network/mint-authority/common/errs"
	"github.com/gaze-network/mint-authority/modules/minting/internal/entity"
	"github.com/gaze-network/mint-authority/modules/minting/repository/postgres/gen"
	"github.com/jackc/pgx/v5"
	"github.com/samber/lo"
)

func (r *Repository) GetConfig(ctx context.Context) (*entity.ConfigurationRecord, error) {
	model, err := r.queries.GetConfig(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.WithStack(errs.NotFound)
		}
		return nil, errors.Wrap(err, "error during query")
	}
	config, err := mapConfigModelToType(model)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse config model")
	}
	return config, nil
}

func (r *Repository) GetConfigForUpdate(ctx context.Context) (*entity.ConfigurationRecord, error) {
	model, err := r.queries.GetConfigForUpdate(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.WithStack(errs.NotFound)
		}
		return nil, errors.Wrap(err, "error during query")
	}
	config, err := mapConfigModelToType(model)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse config model")
	}
	return config, nil
}

func (r *Repository) CreateConfig(ctx context.Context, config *entity.ConfigurationRecord) error {
	params, err := mapConfigTypeToParams(config)
	if err != nil {
		return errors.Wrap(err, "failed to map config to params")
	}
	affected, err := r.queries.CreateConfig(ctx, params)
	if err != nil {
		return errors.Wrap(err, "error during exec")
	}
	if affected == 0 {
		return errors.Wrap(errs.Conflict, "configuration record already exists")
	}
	return nil
}

func (r *Repository) UpdateMintSequence(ctx context.Context, address common.Address, sequence uint64, updatedAt time.Time) error {
	config, err := r.GetConfig(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	config.MintSequence = sequence
	config.UpdatedAt = updatedAt
	accountData, err := config.MarshalAccount()
	if err != nil {
		return errors.WithStack(err)
	}
	seq, err := int64FromUint64(sequence)
	if err != nil {
		return errors.WithStack(err)
	}
	affected, err := r.queries.UpdateMintSequence(ctx, gen.UpdateMintSequenceParams{
		Address:      address.String(),
		MintSequence: seq,
		AccountData:  accountData,
		UpdatedAt:    timestamptz(updatedAt),
	})
	if err != nil {
		return errors.Wrap(err, "error during exec")
	}
	if affected == 0 {
		return errors.Wrapf(errs.NotFound, "configuration record %s", address)
	}
	return nil
}

func (r *Repository) CreateMintRecord(ctx context.Context, record *entity.MintRecord) error {
	params, err := mapMintRecordTypeToParams(record)
	if err != nil {
		return errors.Wrap(err, "failed to map mint record to params")
	}
	affected, err := r.queries.CreateMintRecord(ctx, params)
	if err != nil {
		return errors.Wrap(err, "error during exec")
	}
	if affected == 0 {
		return errors.Wrapf(errs.Conflict, "mint record %s already exists", record.Address)
	}
	return nil
}

func (r *Repository) GetMintRecord(ctx context.Context, index uint64) (*entity.MintRecord, error) {
	idx, err := int64FromUint64(index)
	if err != nil {
		return nil, errors.Wrap(errs.NotFound, err.Error())
	}
	model, err := r.queries.GetMintRecordByIndex(ctx, idx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.WithStack(errs.NotFound)
		}
		return nil, errors.Wrap(err, "error during query")
	}
	record, err := mapMintRecordModelToType(model)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse mint record model")
	}
	return record, nil
}

func (r *Repository) GetMintRecordsByIndexes(ctx context.Context, indexes []uint64) (map[uint64]*entity.MintRecord, error) {
	params := lo.FilterMap(indexes, func(index uint64, _ int) (int64, bool) {
		return int64(index), index <= math.MaxInt64
	})
	models, err := r.queries.GetMintRecordsByIndexes(ctx, params)
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	records := make(map[uint64]*entity.MintRecord, len(models))
	for _, model := range models {
		record, err := mapMintRecordModelToType(model)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse mint record model")
		}
		records[record.SequenceIndex] = record
	}
	return records, nil
}

func (r *Repository) ListMintRecords(ctx context.Context, limit int32, offset int32) ([]*entity.MintRecord, error) {
	if limit < 0 {
		limit = math.MaxInt32
	}
	models, err := r.queries.ListMintRecords(ctx, gen.ListMintRecordsParams{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	records := make([]*entity.MintRecord, 0, len(models))
	for _, model := range models {
		record, err := mapMintRecordModelToType(model)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse mint record model")
		}
		records = append(records, record)
	}
	return records, nil
}

func (r *Repository) CountMintRecords(ctx context.Context) (uint64, error) {
	count, err := r.queries.CountMintRecords(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "error during query")
	}
	return uint64(count), nil
}

func (r *Repository) GetDeploymentStats(ctx context.Context) (*entity.DeploymentStats, error) {
	model, err := r.queries.GetLatestDeploymentStats(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.WithStack(errs.NotFound)
		}
		return nil, errors.Wrap(err, "error during query")
	}
	stats, err := mapDeploymentStatsModelToType(model)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse deployment stats model")
	}
	return stats, nil
}

func (r *Repository) UpdateDeploymentStats(ctx context.Context, stats entity.DeploymentStats) error {
	if err := r.queries.CreateDeploymentStats(ctx, gen.CreateDeploymentStatsParams{
		ClientVersion: stats.ClientVersion,
		DbVersion:     stats.DBVersion,
		Network:       stats.Network.String(),
		ProgramID:     stats.ProgramID.String(),
	}); err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}
