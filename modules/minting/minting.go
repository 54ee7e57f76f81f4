package minting

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common"
	"github.com/gaze-network/mint-authority/common/errs"
	"github.com/gaze-network/mint-authority/core"
	"github.com/gaze-network/mint-authority/internal/config"
	"github.com/gaze-network/mint-authority/internal/postgres"
	mintingapi "github.com/gaze-network/mint-authority/modules/minting/api"
	mintingconfig "github.com/gaze-network/mint-authority/modules/minting/config"
	"github.com/gaze-network/mint-authority/modules/minting/constants"
	mintingdatagateway "github.com/gaze-network/mint-authority/modules/minting/datagateway"
	"github.com/gaze-network/mint-authority/modules/minting/exporter"
	mintingmemory "github.com/gaze-network/mint-authority/modules/minting/repository/memory"
	mintingpostgres "github.com/gaze-network/mint-authority/modules/minting/repository/postgres"
	mintingusecase "github.com/gaze-network/mint-authority/modules/minting/usecase"
	ledgerhttphandler "github.com/gaze-network/mint-authority/modules/tokenledger/api/httphandler"
	"github.com/gaze-network/mint-authority/modules/tokenledger/remote"
	"github.com/gaze-network/mint-authority/pkg/httpclient"
	"github.com/gaze-network/mint-authority/pkg/logger"
	"github.com/gaze-network/mint-authority/pkg/logger/slogx"
	"github.com/gaze-network/mint-authority/pkg/pda"
	"github.com/gaze-network/mint-authority/pkg/reportingclient"
	"github.com/gaze-network/mint-authority/pkg/signature"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/do/v2"
	"github.com/samber/lo"
)

func New(injector do.Injector) (core.Worker, error) {
	ctx := do.MustInvoke[context.Context](injector)
	conf := do.MustInvoke[config.Config](injector)
	reportingClient := do.MustInvoke[*reportingclient.ReportingClient](injector)
	mintingConf := conf.Modules.Minting

	mintingDg, cleanup, err := NewDataGateway(ctx, mintingConf)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	cleanupFuncs := []func(context.Context) error{cleanup}

	programID, err := ProgramID(mintingConf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	opts := []mintingusecase.Option{mintingusecase.WithReportingClient(reportingClient)}
	ledgerMode := strings.ToLower(mintingConf.Ledger.Mode)
	if mintingConf.Ledger.Serve && ledgerMode == "remote" {
		return nil, errors.Wrap(errs.InvalidArgument, "only a local token ledger can be served")
	}
	switch ledgerMode {
	case "", "local":
	case "remote":
		if mintingConf.Ledger.KeyPath == "" {
			return nil, errors.Wrap(errs.InvalidArgument, "remote token ledger requires a key path")
		}
		keypair, err := signature.LoadKeypair(mintingConf.Ledger.KeyPath)
		if err != nil {
			return nil, errors.Wrap(err, "can't load token ledger client key")
		}
		ledger, err := remote.New(mintingConf.Ledger.RemoteURL, keypair, httpclient.Config{Debug: mintingConf.Ledger.Debug})
		if err != nil {
			return nil, errors.Wrap(err, "can't create remote token ledger client")
		}
		opts = append(opts, mintingusecase.WithLedger(ledger))
	default:
		return nil, errors.Wrapf(errs.Unsupported, "%q token ledger mode is not supported", mintingConf.Ledger.Mode)
	}

	if !mintingConf.RequireSignature {
		logger.WarnContext(ctx, "Caller signatures are not required, any client can act as any caller")
	}

	usecase := mintingusecase.New(mintingDg, pda.NewResolver(programID), conf.Network, opts...)
	if err := usecase.VerifyDeployment(ctx); err != nil {
		return nil, errors.WithStack(err)
	}

	if reportingClient != nil {
		go func() {
			if err := reportingClient.SubmitNodeReport(ctx, common.ModuleMinting.String(), conf.Network, programID); err != nil {
				logger.WarnContext(ctx, "Failed to submit node report", slogx.Error(err))
			}
		}()
	}

	// Mount API
	apiHandlers := lo.Uniq(mintingConf.APIHandlers)
	for _, handler := range apiHandlers {
		switch handler {
		case "http":
			httpServer := do.MustInvoke[*fiber.App](injector)
			mintingHTTPHandler := mintingapi.NewHTTPHandler(usecase, mintingConf.RequireSignature)
			if err := mintingHTTPHandler.Mount(httpServer); err != nil {
				return nil, errors.Wrap(err, "can't mount Minting API")
			}
			logger.InfoContext(ctx, "Mounted HTTP handler")

			if mintingConf.Ledger.Serve {
				clients, err := LedgerClients(mintingConf.Ledger)
				if err != nil {
					return nil, errors.WithStack(err)
				}
				if err := ledgerhttphandler.New(mintingDg, clients).Mount(httpServer); err != nil {
					return nil, errors.Wrap(err, "can't mount Token Ledger API")
				}
				logger.InfoContext(ctx, "Mounted token ledger HTTP handler")
			}
		default:
			return nil, errors.Wrapf(errs.Unsupported, "%q API handler is not supported", handler)
		}
	}

	return NewWorker(exporter.New(usecase, mintingConf.Export.BatchSize), mintingConf.Export, conf.Network, cleanupFuncs), nil
}

// NewDataGateway opens the configured minting database. cleanup releases it.
func NewDataGateway(ctx context.Context, conf mintingconfig.Config) (mintingdatagateway.MintingDataGateway, func(context.Context) error, error) {
	switch strings.ToLower(conf.Database) {
	case "postgresql", "postgres", "pg":
		pg, err := postgres.NewPool(ctx, conf.Postgres)
		if err != nil {
			if errors.Is(err, errs.InvalidArgument) {
				return nil, nil, errors.Wrap(err, "Invalid Postgres configuration for minting")
			}
			return nil, nil, errors.Wrap(err, "can't create Postgres connection pool")
		}
		return mintingpostgres.NewRepository(pg), func(context.Context) error {
			pg.Close()
			return nil
		}, nil
	case "memory":
		logger.WarnContext(ctx, "Using in-memory database for minting, state is lost on shutdown")
		return mintingmemory.NewRepository(), func(context.Context) error { return nil }, nil
	default:
		return nil, nil, errors.Wrapf(errs.Unsupported, "%q database for minting is not supported", conf.Database)
	}
}

// ProgramID returns the configured program id, or the built-in one.
func ProgramID(conf mintingconfig.Config) (common.Address, error) {
	if conf.ProgramID == "" {
		return constants.DefaultProgramID, nil
	}
	programID, err := common.NewAddressFromString(conf.ProgramID)
	if err != nil {
		return common.Address{}, errors.Wrap(err, "invalid program id")
	}
	return programID, nil
}

// LedgerClients returns the identities allowed to write to the served ledger.
func LedgerClients(conf mintingconfig.LedgerConfig) ([]common.Address, error) {
	clients := make([]common.Address, 0, len(conf.Clients))
	for _, c := range lo.Uniq(conf.Clients) {
		client, err := common.NewAddressFromString(c)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid token ledger client %q", c)
		}
		clients = append(clients, client)
	}
	if conf.Serve && len(clients) == 0 {
		return nil, errors.Wrap(errs.InvalidArgument, "serving the token ledger requires at least one client key")
	}
	return clients, nil
}
