package minting

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common"
	"github.com/gaze-network/mint-authority/core"
	mintingconfig "github.com/gaze-network/mint-authority/modules/minting/config"
	"github.com/gaze-network/mint-authority/modules/minting/exporter"
	"github.com/gaze-network/mint-authority/pkg/logger"
	"github.com/gaze-network/mint-authority/pkg/logger/slogx"
)

var _ core.Worker = (*Worker)(nil)

// Worker runs the scheduled audit exports of the minting module and releases its resources on shutdown.
type Worker struct {
	exporter     *exporter.Exporter
	exportConf   mintingconfig.ExportConfig
	network      common.Network
	cleanupFuncs []func(context.Context) error
}

func NewWorker(exporter *exporter.Exporter, exportConf mintingconfig.ExportConfig, network common.Network, cleanupFuncs []func(context.Context) error) *Worker {
	return &Worker{
		exporter:     exporter,
		exportConf:   exportConf,
		network:      network,
		cleanupFuncs: cleanupFuncs,
	}
}

func (w *Worker) Run(ctx context.Context) error {
	defer func() {
		if err := w.cleanup(context.WithoutCancel(ctx)); err != nil {
			logger.ErrorContext(ctx, "failed to cleanup minting worker", slogx.Error(err))
		}
	}()

	if w.exportConf.Interval <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(w.exportConf.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case t := <-ticker.C:
			location, count, err := w.exporter.ExportTo(ctx, w.exportConf, w.network, t)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				// next tick retries, a failed export loses nothing
				logger.ErrorContext(ctx, "Failed to export mint records", slogx.Error(err))
				continue
			}
			logger.InfoContext(ctx, "Scheduled export completed", slogx.String("location", location), slogx.Int("count", count))
		}
	}
}

func (w *Worker) cleanup(ctx context.Context) error {
	errList := make([]error, 0, len(w.cleanupFuncs))
	for _, cleanup := range w.cleanupFuncs {
		if err := cleanup(ctx); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.WithStack(errors.Join(errList...))
}
