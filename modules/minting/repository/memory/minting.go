package memory

import (
	"context"
	"slices"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common"
	"github.com/gaze-network/mint-authority/common/errs"
	"github.com/gaze-network/mint-authority/modules/minting/internal/entity"
	"github.com/samber/lo"
)

func (r *Repository) GetConfig(ctx context.Context) (*entity.ConfigurationRecord, error) {
	var config *entity.ConfigurationRecord
	err := r.read(func(s *state) error {
		if s.config == nil {
			return errors.WithStack(errs.NotFound)
		}
		c := *s.config
		config = &c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return config, nil
}

// GetConfigForUpdate is GetConfig; a transaction already excludes every other one.
func (r *Repository) GetConfigForUpdate(ctx context.Context) (*entity.ConfigurationRecord, error) {
	return r.GetConfig(ctx)
}

func (r *Repository) CreateConfig(ctx context.Context, config *entity.ConfigurationRecord) error {
	return r.write(func(s *state) error {
		if s.config != nil {
			return errors.Wrap(errs.Conflict, "configuration record already exists")
		}
		c := *config
		s.config = &c
		return nil
	})
}

func (r *Repository) UpdateMintSequence(ctx context.Context, address common.Address, sequence uint64, updatedAt time.Time) error {
	return r.write(func(s *state) error {
		if s.config == nil || s.config.Address != address {
			return errors.Wrapf(errs.NotFound, "configuration record %s", address)
		}
		s.config.MintSequence = sequence
		s.config.UpdatedAt = updatedAt
		return nil
	})
}

func (r *Repository) CreateMintRecord(ctx context.Context, record *entity.MintRecord) error {
	return r.write(func(s *state) error {
		if _, ok := s.addresses[record.Address]; ok {
			return errors.Wrapf(errs.Conflict, "mint record %s already exists", record.Address)
		}
		if _, ok := s.records[record.SequenceIndex]; ok {
			return errors.Wrapf(errs.Conflict, "mint record of index %d already exists", record.SequenceIndex)
		}
		s.records[record.SequenceIndex] = *record
		s.addresses[record.Address] = record.SequenceIndex
		return nil
	})
}

func (r *Repository) GetMintRecord(ctx context.Context, index uint64) (*entity.MintRecord, error) {
	var record *entity.MintRecord
	err := r.read(func(s *state) error {
		rec, ok := s.records[index]
		if !ok {
			return errors.WithStack(errs.NotFound)
		}
		record = &rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *Repository) GetMintRecordsByIndexes(ctx context.Context, indexes []uint64) (map[uint64]*entity.MintRecord, error) {
	result := make(map[uint64]*entity.MintRecord, len(indexes))
	_ = r.read(func(s *state) error {
		for _, index := range indexes {
			if rec, ok := s.records[index]; ok {
				result[index] = &rec
			}
		}
		return nil
	})
	return result, nil
}

func (r *Repository) ListMintRecords(ctx context.Context, limit int32, offset int32) ([]*entity.MintRecord, error) {
	var records []*entity.MintRecord
	_ = r.read(func(s *state) error {
		indexes := lo.Keys(s.records)
		slices.Sort(indexes)
		if offset > 0 {
			indexes = indexes[min(int(offset), len(indexes)):]
		}
		if limit >= 0 {
			indexes = indexes[:min(int(limit), len(indexes))]
		}
		records = make([]*entity.MintRecord, 0, len(indexes))
		for _, index := range indexes {
			rec := s.records[index]
			records = append(records, &rec)
		}
		return nil
	})
	return records, nil
}

func (r *Repository) CountMintRecords(ctx context.Context) (uint64, error) {
	var count uint64
	_ = r.read(func(s *state) error {
		count = uint64(len(s.records))
		return nil
	})
	return count, nil
}

func (r *Repository) GetDeploymentStats(ctx context.Context) (*entity.DeploymentStats, error) {
	var stats *entity.DeploymentStats
	err := r.read(func(s *state) error {
		if s.stats == nil {
			return errors.WithStack(errs.NotFound)
		}
		st := *s.stats
		stats = &st
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *Repository) UpdateDeploymentStats(ctx context.Context, stats entity.DeploymentStats) error {
	return r.write(func(s *state) error {
		s.stats = &stats
		return nil
	})
}
