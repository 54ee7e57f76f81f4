package pda

import (
	"bytes"

	"github.com/gaze-network/mint-authority/common"
)

// Signer is the capability to act as a program derived address. It is handed to a token ledger in
// place of a signature: the ledger re-derives the address from the seeds and bump, which only the
// program owning the seeds can present.
type Signer struct {
	programID common.Address
	seeds     [][]byte
	bump      uint8
	address   common.Address
}

// NewSigner rebuilds a signer received over the wire. The result is only useful if Verify succeeds.
func NewSigner(programID common.Address, seeds [][]byte, bump uint8) Signer {
	s := Signer{
		programID: programID,
		seeds:     make([][]byte, len(seeds)),
		bump:      bump,
	}
	for i, seed := range seeds {
		s.seeds[i] = bytes.Clone(seed)
	}
	if addr, err := CreateProgramAddress(append(s.Seeds(), []byte{bump}), programID); err == nil {
		s.address = addr
	}
	return s
}

func (s Signer) ProgramID() common.Address { return s.programID }

func (s Signer) Bump() uint8 { return s.bump }

func (s Signer) Address() common.Address { return s.address }

// Seeds returns a copy of the seeds, bump excluded.
func (s Signer) Seeds() [][]byte {
	seeds := make([][]byte, len(s.seeds))
	for i, seed := range s.seeds {
		seeds[i] = bytes.Clone(seed)
	}
	return seeds
}

// Verify reports whether the signer derives to expected.
func (s Signer) Verify(expected common.Address) bool {
	if expected.IsZero() {
		return false
	}
	addr, err := CreateProgramAddress(append(s.Seeds(), []byte{s.bump}), s.programID)
	if err != nil {
		return false
	}
	return addr == expected
}
