package exporter

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common"
	mintingconfig "github.com/gaze-network/mint-authority/modules/minting/config"
	"github.com/gaze-network/mint-authority/modules/minting/internal/entity"
	"github.com/gaze-network/mint-authority/pkg/parquetutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	records []*entity.MintRecord
	err     error
}

func (s *fakeSource) ListMintRecords(ctx context.Context, limit int32, offset int32) ([]*entity.MintRecord, uint64, error) {
	if s.err != nil && offset > 0 {
		return nil, 0, s.err
	}
	total := uint64(len(s.records))
	start := min(int(offset), len(s.records))
	end := min(start+int(limit), len(s.records))
	return s.records[start:end], total, nil
}

func newFakeSource(n int) *fakeSource {
	minter := common.MustAddressFromString("4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T")
	records := make([]*entity.MintRecord, 0, n)
	for i := 1; i <= n; i++ {
		var addr common.Address
		addr[0] = byte(i)
		records = append(records, &entity.MintRecord{
			Address:       addr,
			Minter:        minter,
			Amount:        uint64(i) * 1000,
			Timestamp:     1_700_000_000 + int64(i),
			SequenceIndex: uint64(i),
		})
	}
	return &fakeSource{records: records}
}

func TestRows(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name      string
		count     int
		batchSize int32
	}{
		{"empty", 0, 10},
		{"single_batch", 5, 10},
		{"exact_batches", 12, 4},
		{"partial_batch", 25, 4},
		{"default_batch_size", 3, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rows, err := New(newFakeSource(tc.count), tc.batchSize).Rows(ctx)
			require.NoError(t, err)
			require.Len(t, rows, tc.count)
			for i, row := range rows {
				assert.Equal(t, int64(i+1), row.SequenceIndex)
			}
		})
	}

	t.Run("source_error", func(t *testing.T) {
		source := newFakeSource(10)
		source.err = errors.New("database is down")
		_, err := New(source, 3).Rows(ctx)
		assert.ErrorIs(t, err, source.err)
	})
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	source := newFakeSource(30)

	data, count, err := New(source, 7).Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, 30, count)

	rows, err := parquetutils.ReadAllBytes[Row](data)
	require.NoError(t, err)
	require.Len(t, rows, 30)
	for i, row := range rows {
		expected, err := NewRow(source.records[i])
		require.NoError(t, err)
		assert.Equal(t, expected, row)
	}

	record, err := entity.UnmarshalMintRecordAccount(source.records[0].Address, []byte(rows[0].AccountData))
	require.NoError(t, err)
	assert.Equal(t, *source.records[0], *record)
}

func TestExportToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mint_records.parquet")

	count, err := New(newFakeSource(3), 2).ExportToFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	rows, err := parquetutils.ReadAllBytes[Row](data)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

type fakeUploadClient struct {
	manager.UploadAPIClient

	mu      sync.Mutex
	objects map[string][]byte
}

func (c *fakeUploadClient) PutObject(ctx context.Context, input *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.objects[aws.ToString(input.Bucket)+"/"+aws.ToString(input.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func TestExportToS3(t *testing.T) {
	client := &fakeUploadClient{objects: make(map[string][]byte)}

	count, err := New(newFakeSource(4), 0).ExportToS3(context.Background(), client, "audit", "localnet/mint_records.parquet")
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	data, ok := client.objects["audit/localnet/mint_records.parquet"]
	require.True(t, ok)
	rows, err := parquetutils.ReadAllBytes[Row](data)
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestExportTo(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)

	location, count, err := New(newFakeSource(2), 0).ExportTo(context.Background(), mintingconfig.ExportConfig{Path: dir}, common.NetworkLocalnet, now)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, filepath.Join(dir, "mint_records_20240601T123000Z.parquet"), location)
	assert.FileExists(t, location)
}
