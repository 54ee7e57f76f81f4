// Package automaxprocs sizes GOMAXPROCS to the container CPU quota.
package automaxprocs

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/pkg/logger"
	"github.com/gaze-network/mint-authority/pkg/logger/slogx"
	"go.uber.org/automaxprocs/maxprocs"
)

var undo = func() {}

// Init applies the CPU quota, if any. A GOMAXPROCS environment variable takes precedence.
func Init() error {
	prev := runtime.GOMAXPROCS(0)
	printf := func(format string, args ...any) {
		logger.LogAttrs(context.Background(), slog.LevelInfo, fmt.Sprintf(format, args...),
			slogx.String("package", "automaxprocs"),
			slogx.Int("prev_maxprocs", prev),
			slogx.Int("maxprocs", runtime.GOMAXPROCS(0)),
		)
	}

	revert, err := maxprocs.Set(maxprocs.Logger(printf), maxprocs.Min(1))
	if err != nil {
		return errors.Wrap(err, "can't set GOMAXPROCS")
	}
	undo = revert
	return nil
}

// Undo restores the GOMAXPROCS value observed before Init.
func Undo() {
	undo()
}
