// Package memory is an in-process minting datagateway. Transactions work on a copy of the state
// and run one at a time.
package memory

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common"
	"github.com/gaze-network/mint-authority/modules/minting/datagateway"
	"github.com/gaze-network/mint-authority/modules/minting/internal/entity"
	ledgermemory "github.com/gaze-network/mint-authority/modules/tokenledger/memory"
)

var ErrTxAlreadyExists = errors.New("Transaction already exists. Call Commit() or Rollback() first.")

type state struct {
	config    *entity.ConfigurationRecord
	records   map[uint64]entity.MintRecord
	addresses map[common.Address]uint64
	ledger    *ledgermemory.Ledger
	stats     *entity.DeploymentStats
}

func newState() *state {
	return &state{
		records:   make(map[uint64]entity.MintRecord),
		addresses: make(map[common.Address]uint64),
		ledger:    ledgermemory.New(),
	}
}

func (s *state) clone() *state {
	c := &state{
		records:   make(map[uint64]entity.MintRecord, len(s.records)),
		addresses: make(map[common.Address]uint64, len(s.addresses)),
		ledger:    s.ledger.Clone(),
	}
	if s.config != nil {
		config := *s.config
		c.config = &config
	}
	if s.stats != nil {
		stats := *s.stats
		c.stats = &stats
	}
	for k, v := range s.records {
		c.records[k] = v
	}
	for k, v := range s.addresses {
		c.addresses[k] = v
	}
	return c
}

type store struct {
	txMu  sync.Mutex // held for the whole lifetime of a transaction
	mu    sync.RWMutex
	state *state
}

type Repository struct {
	store *store
	tx    *state
}

var _ datagateway.MintingDataGateway = (*Repository)(nil)

func NewRepository() *Repository {
	return &Repository{
		store: &store{state: newState()},
	}
}

func (r *Repository) BeginMintingTx(ctx context.Context) (datagateway.MintingDataGatewayWithTx, error) {
	if r.tx != nil {
		return nil, errors.WithStack(ErrTxAlreadyExists)
	}

	r.store.txMu.Lock()
	r.store.mu.RLock()
	working := r.store.state.clone()
	r.store.mu.RUnlock()

	return &Repository{
		store: r.store,
		tx:    working,
	}, nil
}

func (r *Repository) Commit(ctx context.Context) error {
	if r.tx == nil {
		return nil
	}
	r.store.mu.Lock()
	r.store.state = r.tx
	r.store.mu.Unlock()

	r.tx = nil
	r.store.txMu.Unlock()
	return nil
}

func (r *Repository) Rollback(ctx context.Context) error {
	if r.tx == nil {
		return nil
	}
	r.tx = nil
	r.store.txMu.Unlock()
	return nil
}

func (r *Repository) read(fn func(s *state) error) error {
	if r.tx != nil {
		return fn(r.tx)
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return fn(r.store.state)
}

// write applies fn to the transaction state, or outside a transaction, commits it immediately.
func (r *Repository) write(fn func(s *state) error) error {
	if r.tx != nil {
		return fn(r.tx)
	}
	r.store.txMu.Lock()
	defer r.store.txMu.Unlock()

	r.store.mu.RLock()
	next := r.store.state.clone()
	r.store.mu.RUnlock()

	if err := fn(next); err != nil {
		return err
	}

	r.store.mu.Lock()
	r.store.state = next
	r.store.mu.Unlock()
	return nil
}
