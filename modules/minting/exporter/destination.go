package exporter

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common"
	mintingconfig "github.com/gaze-network/mint-authority/modules/minting/config"
)

// FileName is the name of an export taken at t.
func FileName(t time.Time) string {
	return fmt.Sprintf("mint_records_%s.parquet", t.UTC().Format("20060102T150405Z"))
}

// ExportTo writes an export to the configured destination and returns where it was written.
func (e *Exporter) ExportTo(ctx context.Context, conf mintingconfig.ExportConfig, network common.Network, now time.Time) (string, int, error) {
	name := FileName(now)
	if conf.Bucket == "" {
		dir := conf.Path
		if dir == "" {
			dir = "."
		}
		location := filepath.Join(dir, name)
		count, err := e.ExportToFile(ctx, location)
		if err != nil {
			return "", 0, errors.WithStack(err)
		}
		return location, count, nil
	}

	client, err := NewS3Client(ctx, conf.Region)
	if err != nil {
		return "", 0, errors.WithStack(err)
	}
	key := path.Join(conf.Prefix, network.String(), name)
	count, err := e.ExportToS3(ctx, client, conf.Bucket, key)
	if err != nil {
		return "", 0, errors.WithStack(err)
	}
	return "s3://" + conf.Bucket + "/" + key, count, nil
}
