// Package signature signs and verifies caller messages with ed25519 identities.
package signature

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"os"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common"
	"github.com/gaze-network/mint-authority/common/errs"
	"github.com/hdevalence/ed25519consensus"
)

// Length is the size of an ed25519 signature in bytes.
const Length = ed25519.SignatureSize

// Keypair is an ed25519 identity able to sign caller messages.
type Keypair struct {
	privateKey ed25519.PrivateKey
}

// NewKeypairFromSeed returns the keypair of the given 32-byte seed.
func NewKeypairFromSeed(seed []byte) (*Keypair, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, errors.Wrapf(errs.InvalidArgument, "invalid seed length: expected %d, got %d", ed25519.SeedSize, len(seed))
	}
	return &Keypair{privateKey: ed25519.NewKeyFromSeed(seed)}, nil
}

// GenerateKeypair returns a new random keypair.
func GenerateKeypair() (*Keypair, error) {
	_, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, errors.Wrap(err, "can't generate ed25519 key")
	}
	return &Keypair{privateKey: privateKey}, nil
}

// NewKeypairFromString parses a private key in hex (32-byte seed) or base58 (64-byte keypair) format.
func NewKeypairFromString(s string) (*Keypair, error) {
	s = strings.TrimSpace(s)
	if seed, err := hex.DecodeString(s); err == nil {
		return NewKeypairFromSeed(seed)
	}
	raw := base58.Decode(s)
	if len(raw) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errs.InvalidArgument, "private key is neither a hex seed nor a base58 keypair")
	}
	return NewKeypairFromSeed(raw[:ed25519.SeedSize])
}

// LoadKeypair reads a private key file written by the generate-keypair command.
func LoadKeypair(path string) (*Keypair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "can't read private key file")
	}
	kp, err := NewKeypairFromString(string(data))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid private key file %q", path)
	}
	return kp, nil
}

// Address returns the public identity of the keypair.
func (k *Keypair) Address() common.Address {
	var addr common.Address
	copy(addr[:], k.privateKey.Public().(ed25519.PublicKey))
	return addr
}

// Seed returns the 32-byte private seed.
func (k *Keypair) Seed() []byte {
	return k.privateKey.Seed()
}

// Sign signs the message and returns the base58 encoded signature.
func (k *Keypair) Sign(message []byte) string {
	return base58.Encode(ed25519.Sign(k.privateKey, message))
}

// Verify reports whether sig is a valid signature of message by signer.
// It follows the ZIP-215 validation rules, so every node agrees on the result.
func Verify(signer common.Address, message []byte, sig string) error {
	raw := base58.Decode(sig)
	if len(raw) != Length {
		return errors.Wrap(errs.Unauthorized, "malformed signature")
	}
	if !ed25519consensus.Verify(ed25519.PublicKey(signer[:]), message, raw) {
		return errors.Wrap(errs.Unauthorized, "invalid signature")
	}
	return nil
}
