package usecase

import (
	"time"

	"github.com/gaze-network/mint-authority/common"
	"github.com/gaze-network/mint-authority/modules/minting/datagateway"
	"github.com/gaze-network/mint-authority/modules/tokenledger"
	"github.com/gaze-network/mint-authority/pkg/pda"
	"github.com/gaze-network/mint-authority/pkg/reportingclient"
)

type Usecase struct {
	dg              datagateway.MintingDataGateway
	ledger          tokenledger.Contract
	resolver        *pda.Resolver
	network         common.Network
	reportingClient *reportingclient.ReportingClient
	now             func() time.Time
}

type Option func(*Usecase)

// WithLedger delegates balance updates to an external ledger instead of the datagateway's local ledger.
func WithLedger(ledger tokenledger.Contract) Option {
	return func(u *Usecase) {
		u.ledger = ledger
	}
}

func WithReportingClient(client *reportingclient.ReportingClient) Option {
	return func(u *Usecase) {
		u.reportingClient = client
	}
}

func WithClock(now func() time.Time) Option {
	return func(u *Usecase) {
		u.now = now
	}
}

func New(dg datagateway.MintingDataGateway, resolver *pda.Resolver, network common.Network, opts ...Option) *Usecase {
	u := &Usecase{
		dg:       dg,
		resolver: resolver,
		network:  network,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *Usecase) ProgramID() common.Address {
	return u.resolver.ProgramID()
}

// ledgerOf returns the ledger bound to the unit of work of dg.
func (u *Usecase) ledgerOf(dg datagateway.MintingDataGateway) tokenledger.Contract {
	if u.ledger != nil {
		return u.ledger
	}
	return dg
}
