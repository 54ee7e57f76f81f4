// Package exporter writes the mint audit trail to parquet files, locally or to S3.
package exporter

import (
	"bytes"
	"cmp"
	"context"
	"os"
	"slices"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/modules/minting/internal/entity"
	"github.com/gaze-network/mint-authority/pkg/logger"
	"github.com/gaze-network/mint-authority/pkg/logger/slogx"
	"github.com/gaze-network/mint-authority/pkg/parquetutils"
	cstream "github.com/planxnx/concurrent-stream"
	"github.com/xitongsys/parquet-go/parquet"
)

const (
	DefaultBatchSize = 1000

	fetchConcurrency = 4
)

// Row is the parquet schema of an exported mint record.
type Row struct {
	SequenceIndex int64  `parquet:"name=sequence_index, type=INT64"`
	Address       string `parquet:"name=address, type=BYTE_ARRAY, convertedtype=UTF8"`
	Minter        string `parquet:"name=minter, type=BYTE_ARRAY, convertedtype=UTF8"`
	Amount        string `parquet:"name=amount, type=BYTE_ARRAY, convertedtype=UTF8"`
	Timestamp     int64  `parquet:"name=timestamp, type=INT64"`
	AccountData   string `parquet:"name=account_data, type=BYTE_ARRAY"`
}

func NewRow(record *entity.MintRecord) (Row, error) {
	data, err := record.MarshalAccount()
	if err != nil {
		return Row{}, errors.WithStack(err)
	}
	return Row{
		SequenceIndex: int64(record.SequenceIndex),
		Address:       record.Address.String(),
		Minter:        record.Minter.String(),
		Amount:        strconv.FormatUint(record.Amount, 10),
		Timestamp:     record.Timestamp,
		AccountData:   string(data),
	}, nil
}

// RecordSource pages through mint records in sequence order.
type RecordSource interface {
	ListMintRecords(ctx context.Context, limit int32, offset int32) ([]*entity.MintRecord, uint64, error)
}

type Exporter struct {
	source    RecordSource
	batchSize int32
}

func New(source RecordSource, batchSize int32) *Exporter {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Exporter{
		source:    source,
		batchSize: batchSize,
	}
}

type page struct {
	rows []Row
	err  error
}

// Rows fetches every mint record, ordered by sequence index.
func (e *Exporter) Rows(ctx context.Context) ([]Row, error) {
	_, total, err := e.source.ListMintRecords(ctx, 0, 0)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count mint records")
	}
	if total == 0 {
		return []Row{}, nil
	}

	out := make(chan page)
	stream := cstream.NewStream(ctx, fetchConcurrency, out)

	go func() {
		defer close(out)
		_ = stream.Wait()
	}()

	go func() {
		defer stream.Close()
		for offset := int64(0); offset < int64(total); offset += int64(e.batchSize) {
			offset := int32(offset)
			select {
			case <-ctx.Done():
				return
			default:
				stream.Go(func() page {
					records, _, err := e.source.ListMintRecords(ctx, e.batchSize, offset)
					if err != nil {
						return page{err: errors.Wrapf(err, "failed to list mint records at offset %d", offset)}
					}
					rows := make([]Row, 0, len(records))
					for _, record := range records {
						row, err := NewRow(record)
						if err != nil {
							return page{err: errors.Wrapf(err, "can't encode mint record %d", record.SequenceIndex)}
						}
						rows = append(rows, row)
					}
					return page{rows: rows}
				})
			}
		}
	}()

	rows := make([]Row, 0, total)
	var errList []error
	for p := range out {
		if p.err != nil {
			errList = append(errList, p.err)
			continue
		}
		rows = append(rows, p.rows...)
	}
	if err := errors.Join(errList...); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "context done")
	}

	slices.SortFunc(rows, func(a, b Row) int {
		return cmp.Compare(a.SequenceIndex, b.SequenceIndex)
	})
	return rows, nil
}

// Export encodes every mint record into a snappy compressed parquet file.
func (e *Exporter) Export(ctx context.Context) ([]byte, int, error) {
	rows, err := e.Rows(ctx)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}
	data, err := parquetutils.WriteAll(rows, parquet.CompressionCodec_SNAPPY)
	if err != nil {
		return nil, 0, errors.Wrap(err, "can't encode mint records")
	}
	return data, len(rows), nil
}

// ExportToFile writes the parquet export to path.
func (e *Exporter) ExportToFile(ctx context.Context, path string) (int, error) {
	data, count, err := e.Export(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, errors.Wrapf(err, "can't write export file %q", path)
	}
	logger.InfoContext(ctx, "Exported mint records", slogx.String("path", path), slogx.Int("count", count))
	return count, nil
}

// ExportToS3 uploads the parquet export to bucket under key.
func (e *Exporter) ExportToS3(ctx context.Context, client manager.UploadAPIClient, bucket string, key string) (int, error) {
	data, count, err := e.Export(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	uploader := manager.NewUploader(client, func(u *manager.Uploader) {
		u.Concurrency = 4
		u.PartSize = 10 * 1024 * 1024
	})
	if _, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/vnd.apache.parquet"),
	}); err != nil {
		return 0, errors.Wrapf(err, "failed to upload export for bucket %q and key %q", bucket, key)
	}
	logger.InfoContext(ctx, "Uploaded mint records export",
		slogx.String("bucket", bucket),
		slogx.String("key", key),
		slogx.Int("count", count),
	)
	return count, nil
}
