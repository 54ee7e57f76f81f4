package entity

import (
	"math"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common"
	"github.com/gaze-network/mint-authority/common/errs"
)

// ConfigurationRecord is the singleton that gates minting. MintSequence equals the index of the last completed mint.
type ConfigurationRecord struct {
	Address       common.Address
	Admin         common.Address
	Bump          uint8
	AuthorityBump uint8
	MintSequence  uint64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NextMintIndex returns the only index the next mint may claim.
// Returns errs.OverflowUint64 once the sequence is exhausted.
func (c ConfigurationRecord) NextMintIndex() (uint64, error) {
	if c.MintSequence == math.MaxUint64 {
		return 0, errors.Wrap(errs.OverflowUint64, "mint sequence exhausted")
	}
	return c.MintSequence + 1, nil
}

type DeploymentStats struct {
	ClientVersion string
	DBVersion     int32
	Network       common.Network
	ProgramID     common.Address
}
