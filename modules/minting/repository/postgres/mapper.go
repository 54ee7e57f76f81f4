package postgres

import (
	"math"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common"
	"github.com/gaze-network/mint-authority/common/errs"
	"github.com/gaze-network/mint-authority/modules/minting/internal/entity"
	"github.com/gaze-network/mint-authority/modules/minting/repository/postgres/gen"
	"github.com/gaze-network/mint-authority/modules/tokenledger"
	"github.com/gaze-network/uint128"
	"github.com/jackc/pgx/v5/pgtype"
)

func uint128FromNumeric(src pgtype.Numeric) (*uint128.Uint128, error) {
	if !src.Valid {
		return nil, nil
	}
	bytes, err := src.MarshalJSON()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	result, err := uint128.FromString(string(bytes))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &result, nil
}

func numericFromUint128(src *uint128.Uint128) (pgtype.Numeric, error) {
	if src == nil {
		return pgtype.Numeric{}, nil
	}
	bytes := []byte(src.String())
	var result pgtype.Numeric
	err := result.UnmarshalJSON(bytes)
	if err != nil {
		return pgtype.Numeric{}, errors.WithStack(err)
	}
	return result, nil
}

func uint64FromNumeric(src pgtype.Numeric) (uint64, error) {
	value, err := uint128FromNumeric(src)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	if value == nil {
		return 0, nil
	}
	if value.Hi != 0 {
		return 0, errors.Wrapf(errs.OverflowUint64, "numeric %s", value)
	}
	return value.Lo, nil
}

func numericFromUint64(src uint64) (pgtype.Numeric, error) {
	value := uint128.From64(src)
	return numericFromUint128(&value)
}

// int64FromUint64 maps unsigned sequence numbers to BIGINT columns.
func int64FromUint64(src uint64) (int64, error) {
	if src > math.MaxInt64 {
		return 0, errors.Wrapf(errs.OverflowUint64, "%d exceeds bigint", src)
	}
	return int64(src), nil
}

func timestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: !t.IsZero()}
}

func mapConfigModelToType(src gen.MintingConfig) (*entity.ConfigurationRecord, error) {
	address, err := common.NewAddressFromString(src.Address)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse config address")
	}
	admin, err := common.NewAddressFromString(src.Admin)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse admin")
	}
	return &entity.ConfigurationRecord{
		Address:       address,
		Admin:         admin,
		Bump:          uint8(src.Bump),
		AuthorityBump: uint8(src.AuthorityBump),
		MintSequence:  uint64(src.MintSequence),
		CreatedAt:     src.CreatedAt.Time.UTC(),
		UpdatedAt:     src.UpdatedAt.Time.UTC(),
	}, nil
}

func mapConfigTypeToParams(src *entity.ConfigurationRecord) (gen.CreateConfigParams, error) {
	accountData, err := src.MarshalAccount()
	if err != nil {
		return gen.CreateConfigParams{}, errors.WithStack(err)
	}
	sequence, err := int64FromUint64(src.MintSequence)
	if err != nil {
		return gen.CreateConfigParams{}, errors.WithStack(err)
	}
	return gen.CreateConfigParams{
		Address:       src.Address.String(),
		Admin:         src.Admin.String(),
		Bump:          int16(src.Bump),
		AuthorityBump: int16(src.AuthorityBump),
		MintSequence:  sequence,
		AccountData:   accountData,
		CreatedAt:     timestamptz(src.CreatedAt),
	}, nil
}

func mapMintRecordModelToType(src gen.MintingMintRecord) (*entity.MintRecord, error) {
	address, err := common.NewAddressFromString(src.Address)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse record address")
	}
	minter, err := common.NewAddressFromString(src.Minter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse minter")
	}
	amount, err := uint64FromNumeric(src.Amount)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse amount")
	}
	return &entity.MintRecord{
		Address:       address,
		Minter:        minter,
		Amount:        amount,
		Timestamp:     src.Timestamp,
		SequenceIndex: uint64(src.SequenceIndex),
	}, nil
}

func mapMintRecordTypeToParams(src *entity.MintRecord) (gen.CreateMintRecordParams, error) {
	accountData, err := src.MarshalAccount()
	if err != nil {
		return gen.CreateMintRecordParams{}, errors.WithStack(err)
	}
	amount, err := numericFromUint64(src.Amount)
	if err != nil {
		return gen.CreateMintRecordParams{}, errors.WithStack(err)
	}
	index, err := int64FromUint64(src.SequenceIndex)
	if err != nil {
		return gen.CreateMintRecordParams{}, errors.WithStack(err)
	}
	return gen.CreateMintRecordParams{
		Address:       src.Address.String(),
		SequenceIndex: index,
		Minter:        src.Minter.String(),
		Amount:        amount,
		Timestamp:     src.Timestamp,
		AccountData:   accountData,
	}, nil
}

func mapDeploymentStatsModelToType(src gen.MintingDeploymentStat) (*entity.DeploymentStats, error) {
	programID, err := common.NewAddressFromString(src.ProgramID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse program id")
	}
	return &entity.DeploymentStats{
		ClientVersion: src.ClientVersion,
		DBVersion:     src.DbVersion,
		Network:       common.Network(src.Network),
		ProgramID:     programID,
	}, nil
}

func mapTokenMintModelToType(src gen.MintingTokenMint) (*tokenledger.Mint, error) {
	address, err := common.NewAddressFromString(src.Address)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse mint address")
	}
	authority, err := common.NewAddressFromString(src.Authority)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse mint authority")
	}
	supply, err := uint128FromNumeric(src.Supply)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse supply")
	}
	mint := &tokenledger.Mint{
		Address:   address,
		Authority: authority,
		Decimals:  uint8(src.Decimals),
	}
	if supply != nil {
		mint.Supply = *supply
	}
	return mint, nil
}
