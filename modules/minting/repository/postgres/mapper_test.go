package postgres

import (
	"math"
	"testing"
	"time"

	"github.com/gaze-network/mint-authority/common"
	"github.com/gaze-network/mint-authority/common/errs"
	"github.com/gaze-network/mint-authority/modules/minting/internal/entity"
	"github.com/gaze-network/uint128"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericMapping(t *testing.T) {
	t.Run("uint64", func(t *testing.T) {
		for _, v := range []uint64{0, 1, 1_000_000_000, math.MaxUint64} {
			numeric, err := numericFromUint64(v)
			require.NoError(t, err)
			actual, err := uint64FromNumeric(numeric)
			require.NoError(t, err)
			assert.Equal(t, v, actual)
		}
	})
	t.Run("uint64_overflow", func(t *testing.T) {
		numeric, err := numericFromUint128(&uint128.Max)
		require.NoError(t, err)
		_, err = uint64FromNumeric(numeric)
		assert.ErrorIs(t, err, errs.OverflowUint64)
	})
	t.Run("invalid_numeric", func(t *testing.T) {
		value, err := uint128FromNumeric(pgtype.Numeric{})
		require.NoError(t, err)
		assert.Nil(t, value)
	})
	t.Run("bigint_overflow", func(t *testing.T) {
		_, err := int64FromUint64(math.MaxInt64 + 1)
		assert.ErrorIs(t, err, errs.OverflowUint64)
	})
}

func TestMintRecordMapping(t *testing.T) {
	record := &entity.MintRecord{
		Address:       common.MustAddressFromString("11111111111111111111111111111112"),
		Minter:        common.MustAddressFromString("4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T"),
		Amount:        math.MaxUint64,
		Timestamp:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Unix(),
		SequenceIndex: 42,
	}
	params, err := mapMintRecordTypeToParams(record)
	require.NoError(t, err)
	assert.Len(t, params.AccountData, entity.MintRecordAccountSize)

	model := genRecordFromParams(params)
	actual, err := mapMintRecordModelToType(model)
	require.NoError(t, err)
	assert.Equal(t, record, actual)

	decoded, err := entity.UnmarshalMintRecordAccount(record.Address, params.AccountData)
	require.NoError(t, err)
	assert.Equal(t, record, decoded)
}

func TestConfigMapping(t *testing.T) {
	config := &entity.ConfigurationRecord{
		Address:       common.MustAddressFromString("11111111111111111111111111111112"),
		Admin:         common.MustAddressFromString("4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T"),
		Bump:          255,
		AuthorityBump: 251,
		MintSequence:  3,
		CreatedAt:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	params, err := mapConfigTypeToParams(config)
	require.NoError(t, err)
	assert.Len(t, params.AccountData, entity.ConfigurationAccountSize)

	actual, err := mapConfigModelToType(genConfigFromParams(params))
	require.NoError(t, err)
	assert.Equal(t, config, actual)
}
