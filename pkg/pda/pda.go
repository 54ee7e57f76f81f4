// Package pda derives program-owned addresses.
//
// A program derived address is the sha256 digest of a list of seeds, a one-byte bump, the program id
// and a fixed marker, retried over the bump until the digest is not a valid ed25519 point. An address
// off the curve has no private key, so only the program that knows the seeds can act for it.
package pda

import (
	"bytes"

	"filippo.io/edwards25519"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common"
)

const (
	// MaxSeeds is the maximum number of seeds, the bump excluded.
	MaxSeeds = 16

	// MaxSeedLength is the maximum length of a single seed in bytes.
	MaxSeedLength = 32
)

var derivedAddressMarker = []byte("ProgramDerivedAddress")

var (
	// ErrMaxSeedLengthExceeded is returned when a seed is longer than MaxSeedLength.
	ErrMaxSeedLengthExceeded = errors.New("length of the seed is too long for address generation")

	// ErrTooManySeeds is returned when more than MaxSeeds seeds are given.
	ErrTooManySeeds = errors.New("too many seeds for address generation")

	// ErrInvalidSeeds is returned when the seeds produce an address on the ed25519 curve.
	ErrInvalidSeeds = errors.New("provided seeds do not result in a valid address")

	// ErrNoViableBump is returned when no bump in [0, 255] produces an off-curve address.
	ErrNoViableBump = errors.New("unable to find a viable program address bump seed")
)

// CreateProgramAddress computes the address of the given seeds under programID.
// The last seed is usually the bump returned by FindProgramAddress.
func CreateProgramAddress(seeds [][]byte, programID common.Address) (common.Address, error) {
	if len(seeds) > MaxSeeds+1 {
		return common.Address{}, errors.WithStack(ErrTooManySeeds)
	}
	for _, seed := range seeds {
		if len(seed) > MaxSeedLength {
			return common.Address{}, errors.WithStack(ErrMaxSeedLengthExceeded)
		}
	}

	var buf bytes.Buffer
	for _, seed := range seeds {
		buf.Write(seed)
	}
	buf.Write(programID[:])
	buf.Write(derivedAddressMarker)

	hash := chainhash.HashH(buf.Bytes())
	if IsOnCurve(hash[:]) {
		return common.Address{}, errors.WithStack(ErrInvalidSeeds)
	}
	return common.Address(hash), nil
}

// FindProgramAddress searches bumps from 255 down to 0 and returns the first off-curve address
// together with its bump.
func FindProgramAddress(seeds [][]byte, programID common.Address) (common.Address, uint8, error) {
	if len(seeds) > MaxSeeds {
		return common.Address{}, 0, errors.WithStack(ErrTooManySeeds)
	}

	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	for bump := 255; bump >= 0; bump-- {
		withBump[len(seeds)] = []byte{uint8(bump)}
		addr, err := CreateProgramAddress(withBump, programID)
		if err == nil {
			return addr, uint8(bump), nil
		}
		if !errors.Is(err, ErrInvalidSeeds) {
			return common.Address{}, 0, errors.WithStack(err)
		}
	}
	return common.Address{}, 0, errors.WithStack(ErrNoViableBump)
}

// IsOnCurve reports whether b is the canonical encoding of a point on the ed25519 curve.
func IsOnCurve(b []byte) bool {
	if len(b) != common.AddressLength {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}
