// Package parquetutils reads and writes whole parquet files held in memory.
package parquetutils

import (
	"github.com/cockroachdb/errors"
	parquetbuffer "github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

var (
	// ReaderConcurrency parallel number of file readers.
	ReaderConcurrency int64 = 8

	// WriterConcurrency parallel number of row group encoders.
	WriterConcurrency int64 = 4
)

// ReadAll reads all records from the parquet file.
func ReadAll[T any](sourceFile source.ParquetFile) ([]T, error) {
	r, err := reader.NewParquetReader(sourceFile, new(T), ReaderConcurrency)
	if err != nil {
		return nil, errors.Wrap(err, "can't create parquet reader")
	}
	defer r.ReadStop()

	data := make([]T, r.GetNumRows())
	if err = r.Read(&data); err != nil {
		return nil, errors.Wrap(err, "failed to read parquet data")
	}

	return data, nil
}

// ReadAllBytes reads all records from an in-memory parquet file. data is not copied.
func ReadAllBytes[T any](data []byte) ([]T, error) {
	return ReadAll[T](parquetbuffer.NewBufferFileFromBytesNoAlloc(data))
}

// WriteAll encodes records into an in-memory parquet file. The schema is taken from the parquet tags of T.
func WriteAll[T any](records []T, codec parquet.CompressionCodec) ([]byte, error) {
	buf := parquetbuffer.NewBufferFile()
	w, err := writer.NewParquetWriter(buf, new(T), WriterConcurrency)
	if err != nil {
		return nil, errors.Wrap(err, "can't create parquet writer")
	}
	w.CompressionType = codec
	for i, record := range records {
		if err := w.Write(record); err != nil {
			return nil, errors.Wrapf(err, "failed to write record %d", i)
		}
	}
	if err := w.WriteStop(); err != nil {
		return nil, errors.Wrap(err, "failed to flush parquet writer")
	}
	return buf.Bytes(), nil
}
