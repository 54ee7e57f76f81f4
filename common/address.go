package common

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common/errs"
)

// AddressLength is the size of an identity or a derived address in bytes.
const AddressLength = 32

// Address is a 32-byte account identity. It is either an ed25519 public key held by a user,
// or a program derived address that no private key can sign for.
type Address [AddressLength]byte

// ZeroAddress is the zero value of Address.
var ZeroAddress = Address{}

// NewAddressFromBytes returns the Address for the given 32 bytes.
func NewAddressFromBytes(b []byte) (Address, error) {
	if len(b) != AddressLength {
		return Address{}, errors.Wrapf(errs.InvalidArgument, "invalid address length: expected %d, got %d", AddressLength, len(b))
	}
	var addr Address
	copy(addr[:], b)
	return addr, nil
}

// NewAddressFromString parses a base58 encoded Address.
func NewAddressFromString(s string) (Address, error) {
	if s == "" {
		return Address{}, errors.Wrap(errs.InvalidArgument, "empty address")
	}
	b := base58.Decode(s)
	if len(b) == 0 {
		return Address{}, errors.Wrapf(errs.InvalidArgument, "invalid base58 address %q", s)
	}
	addr, err := NewAddressFromBytes(b)
	if err != nil {
		return Address{}, errors.WithStack(err)
	}
	return addr, nil
}

// MustAddressFromString is like NewAddressFromString but panics on error.
func MustAddressFromString(s string) Address {
	addr, err := NewAddressFromString(s)
	if err != nil {
		panic(err)
	}
	return addr
}

func (a Address) Bytes() []byte {
	return bytes.Clone(a[:])
}

func (a Address) IsZero() bool {
	return a == ZeroAddress
}

func (a Address) Equal(other Address) bool {
	return a == other
}

// String returns the base58 representation of the address.
func (a Address) String() string {
	return base58.Encode(a[:])
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	addr, err := NewAddressFromString(string(text))
	if err != nil {
		return errors.WithStack(err)
	}
	*a = addr
	return nil
}

func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Address) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(a.UnmarshalText([]byte(s)))
}

// Value implements driver.Valuer, addresses are persisted as raw bytes.
func (a Address) Value() (driver.Value, error) {
	return a[:], nil
}
