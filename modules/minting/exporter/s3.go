package exporter

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cockroachdb/errors"
)

// NewS3Client returns an s3 client from the default aws config chain. Empty region keeps the chain's region.
func NewS3Client(ctx context.Context, region string) (*s3.Client, error) {
	sdkConfig, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "can't load aws user config")
	}
	return s3.NewFromConfig(sdkConfig, func(o *s3.Options) {
		if region != "" {
			o.Region = region
		}
	}), nil
}
