package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common"
	"github.com/gaze-network/mint-authority/common/errs"
	"github.com/gaze-network/mint-authority/core"
	"github.com/gaze-network/mint-authority/internal/config"
	"github.com/gaze-network/mint-authority/modules/minting"
	"github.com/gaze-network/mint-authority/pkg/automaxprocs"
	"github.com/gaze-network/mint-authority/pkg/errorhandler"
	"github.com/gaze-network/mint-authority/pkg/logger"
	"github.com/gaze-network/mint-authority/pkg/logger/slogx"
	"github.com/gaze-network/mint-authority/pkg/middleware/requestcontext"
	"github.com/gaze-network/mint-authority/pkg/middleware/requestlogger"
	"github.com/gaze-network/mint-authority/pkg/reportingclient"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/samber/do/v2"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// Modules are resolved by name from enable_modules.
var Modules = do.Package(
	do.LazyNamed(common.ModuleMinting.String(), minting.New),
)

const shutdownTimeout = 60 * time.Second

func NewRunCommand() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Start mint-authority service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := automaxprocs.Init(); err != nil {
				logger.Error("Failed to set GOMAXPROCS", slogx.Error(err))
			}
			return runHandler(cmd.Context(), config.Load())
		},
	}

	flags := runCmd.Flags()
	flags.Bool("api-only", false, "Run only API server, without scheduled exports")
	flags.String("modules", "", "Enable specific modules to run. E.g. `minting`")
	config.BindPFlag("api_only", flags.Lookup("api-only"))
	config.BindPFlag("enable_modules", flags.Lookup("modules"))

	return runCmd
}

func runHandler(parent context.Context, conf config.Config) error {
	if !conf.Network.IsSupported() {
		return errors.Wrapf(errs.Unsupported, "%q network is not supported", conf.Network.String())
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	injector := do.New(Modules)
	do.ProvideValue(injector, conf)
	do.ProvideValue(injector, ctx)
	do.Provide(injector, provideReportingClient)
	do.Provide(injector, provideHTTPServer)

	// workers outlive ctx so in-flight mints finish before shutdown
	ctxWorker, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	ctxWorker = logger.WithContext(ctxWorker, slogx.Stringer("network", conf.Network))

	modules := lo.Uniq(lo.Without(lo.Map(conf.EnableModules, func(m string, _ int) string { return strings.TrimSpace(m) }), ""))
	for _, module := range modules {
		ctx := logger.WithContext(ctxWorker, slogx.String("module", module))

		worker, err := do.InvokeNamed[core.Worker](injector, module)
		if err != nil {
			if errors.Is(err, do.ErrServiceNotFound) {
				return errors.Wrapf(errs.Unsupported, "module %q is not supported", module)
			}
			return errors.Wrapf(err, "can't init module %q", module)
		}
		if conf.APIOnly {
			continue
		}
		go func() {
			defer stop()
			logger.InfoContext(ctx, "Starting module worker")
			if err := worker.Run(ctx); err != nil {
				logger.PanicContext(ctx, "Something went wrong, error during running module worker", slogx.Error(err))
			}
		}()
	}

	httpServer := do.MustInvoke[*fiber.App](injector)
	go func() {
		defer stop()
		logger.InfoContext(ctx, "Started HTTP server", slog.Int("port", conf.HTTPServer.Port))
		if err := httpServer.Listen(fmt.Sprintf(":%d", conf.HTTPServer.Port)); err != nil {
			logger.PanicContext(ctx, "Something went wrong, error during running HTTP server", slogx.Error(err))
		}
	}()

	logger.InfoContext(ctxWorker, "Mint Authority started")
	<-ctx.Done()

	go forceExitAfter(shutdownTimeout + 15*time.Second)

	stopWorker()
	if err := httpServer.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.ErrorContext(ctx, "Failed while shutting down HTTP server", slogx.Error(err))
	}
	if err := injector.Shutdown(); err != nil {
		logger.PanicContext(ctx, "Failed while gracefully shutting down", slogx.Error(err))
	}
	return nil
}

// forceExitAfter exits on a second signal or when graceful shutdown takes longer than timeout.
func forceExitAfter(timeout time.Duration) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
		logger.FatalContext(ctx, "Received exit signal again. Force shutdown...")
	case <-time.After(timeout):
		logger.FatalContext(ctx, "Shutdown timeout exceeded. Force shutdown...")
	}
}

// provideReportingClient returns a nil client when reporting is disabled.
func provideReportingClient(i do.Injector) (*reportingclient.ReportingClient, error) {
	conf := do.MustInvoke[config.Config](i)
	if conf.Reporting.Disabled {
		return nil, nil
	}
	client, err := reportingclient.New(conf.Reporting)
	if err != nil {
		return nil, errors.Wrap(err, "invalid reporting configuration")
	}
	return client, nil
}

func provideHTTPServer(i do.Injector) (*fiber.App, error) {
	conf := do.MustInvoke[config.Config](i).HTTPServer
	app := fiber.New(fiber.Config{
		AppName:                 "Mint Authority",
		ErrorHandler:            errorhandler.NewHTTPErrorHandler(),
		ProxyHeader:             conf.ProxyHeader,
		EnableTrustedProxyCheck: len(conf.TrustedProxies) > 0,
		TrustedProxies:          conf.TrustedProxies,
		EnableIPValidation:      true,
	})
	app.
		Use(favicon.New()).
		Use(cors.New()).
		Use(requestid.New()).
		Use(requestcontext.New()).
		Use(requestlogger.New(conf.Logger)).
		Use(fiberrecover.New(fiberrecover.Config{
			EnableStackTrace: true,
			StackTraceHandler: func(c *fiber.Ctx, e any) {
				logger.ErrorContext(c.UserContext(), "Something went wrong, panic in http handler",
					slogx.Any("panic", e),
					slog.String("stacktrace", string(debug.Stack())),
				)
			},
		})).
		Use(compress.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return errors.WithStack(c.SendStatus(http.StatusOK))
	})
	return app, nil
}
