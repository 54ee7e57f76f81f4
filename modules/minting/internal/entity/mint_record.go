package entity

import (
	"time"

	"github.com/gaze-network/mint-authority/common"
)

// MintRecord is the write-once audit entry of a completed mint.
type MintRecord struct {
	Address       common.Address
	Minter        common.Address
	Amount        uint64
	Timestamp     int64 // unix seconds
	SequenceIndex uint64
}

func (r MintRecord) Time() time.Time {
	return time.Unix(r.Timestamp, 0).UTC()
}
