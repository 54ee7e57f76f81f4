package minting

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/gaze-network/mint-authority/common"
	mintingconfig "github.com/gaze-network/mint-authority/modules/minting/config"
	"github.com/gaze-network/mint-authority/modules/minting/exporter"
	"github.com/gaze-network/mint-authority/modules/minting/repository/memory"
	"github.com/gaze-network/mint-authority/modules/minting/usecase"
	"github.com/gaze-network/mint-authority/pkg/pda"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorker(t *testing.T) {
	uc := usecase.New(memory.NewRepository(), pda.NewResolver(common.MustAddressFromString("7o3hKkBugQQ5duPBRSzU1KZshKTK1o3ob3jwLSBPa65c")), common.NetworkLocalnet)

	t.Run("scheduled_export", func(t *testing.T) {
		dir := t.TempDir()
		cleaned := make(chan struct{})
		w := NewWorker(exporter.New(uc, 0), mintingconfig.ExportConfig{Path: dir, Interval: 10 * time.Millisecond}, common.NetworkLocalnet,
			[]func(context.Context) error{func(context.Context) error { close(cleaned); return nil }},
		)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error)
		go func() { done <- w.Run(ctx) }()

		assert.Eventually(t, func() bool {
			entries, err := os.ReadDir(dir)
			return err == nil && len(entries) > 0
		}, 2*time.Second, 10*time.Millisecond)

		cancel()
		require.NoError(t, <-done)
		<-cleaned
	})

	t.Run("no_schedule", func(t *testing.T) {
		dir := t.TempDir()
		w := NewWorker(exporter.New(uc, 0), mintingconfig.ExportConfig{Path: dir}, common.NetworkLocalnet, nil)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		require.NoError(t, w.Run(ctx))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
