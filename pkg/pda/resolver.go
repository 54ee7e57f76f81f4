package pda

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common"
)

// Resolver derives addresses of logical entities inside one program namespace.
type Resolver struct {
	programID common.Address
}

func NewResolver(programID common.Address) *Resolver {
	return &Resolver{programID: programID}
}

// ProgramID returns the namespace id of the resolver.
func (r *Resolver) ProgramID() common.Address {
	return r.programID
}

// Find resolves the address and bump of the entity identified by tag and an optional suffix.
func (r *Resolver) Find(tag string, suffix ...[]byte) (common.Address, uint8, error) {
	addr, bump, err := FindProgramAddress(seedsOf(tag, suffix), r.programID)
	if err != nil {
		return common.Address{}, 0, errors.Wrapf(err, "can't resolve %q address", tag)
	}
	return addr, bump, nil
}

// Create re-derives the address of the entity with a known bump.
func (r *Resolver) Create(bump uint8, tag string, suffix ...[]byte) (common.Address, error) {
	seeds := append(seedsOf(tag, suffix), []byte{bump})
	addr, err := CreateProgramAddress(seeds, r.programID)
	if err != nil {
		return common.Address{}, errors.Wrapf(err, "can't create %q address with bump %d", tag, bump)
	}
	return addr, nil
}

// Signer returns the signing capability of the entity identified by tag, suffix and bump.
func (r *Resolver) Signer(bump uint8, tag string, suffix ...[]byte) (Signer, error) {
	seeds := seedsOf(tag, suffix)
	addr, err := CreateProgramAddress(append(seeds, []byte{bump}), r.programID)
	if err != nil {
		return Signer{}, errors.Wrapf(err, "can't derive %q signer", tag)
	}
	return Signer{
		programID: r.programID,
		seeds:     seeds,
		bump:      bump,
		address:   addr,
	}, nil
}

// Uint64Seed encodes a sequence number as an 8-byte little-endian seed.
func Uint64Seed(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

func seedsOf(tag string, suffix [][]byte) [][]byte {
	seeds := make([][]byte, 0, 1+len(suffix))
	seeds = append(seeds, []byte(tag))
	for _, s := range suffix {
		if len(s) > 0 {
			seeds = append(seeds, s)
		}
	}
	return seeds
}
